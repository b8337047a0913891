package deckgen

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrInvalidSlide      = errors.New("invalid slide")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrSerialization     = errors.New("deck serialization failed")
	ErrPrintRender       = errors.New("print document rendering failed")

	// Visual template errors.
	ErrInvalidTemplate = errors.New("invalid template")
	ErrTemplateFile    = errors.New("failed to load template file")

	// Browser errors, print-pdf only.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
