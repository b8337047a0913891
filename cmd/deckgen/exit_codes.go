package main

import (
	"context"
	"errors"
	"os"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/hints"
)

// Exit codes for the deckgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every build succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, input document or template
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors (print-pdf only)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, deckgen.ErrBrowserConnect) ||
		errors.Is(err, deckgen.ErrPageCreate) ||
		errors.Is(err, deckgen.ErrPageLoad) ||
		errors.Is(err, deckgen.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, deckgen.ErrUnsupportedFormat) ||
		errors.Is(err, deckgen.ErrInvalidSlide) ||
		errors.Is(err, deckgen.ErrFieldTooLong) ||
		errors.Is(err, deckgen.ErrInvalidTemplate) ||
		errors.Is(err, deckgen.ErrTemplateFile) ||
		errors.Is(err, deckgen.ErrInvalidAssetPath) ||
		errors.Is(err, deckgen.ErrStyleNotFound) ||
		errors.Is(err, deckgen.ErrTemplateNotFound) ||
		errors.Is(err, ErrParseInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownTemplate) ||
		errors.Is(err, ErrOutputNotDir) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
// Config and template hints need context the error lacks; runBuild attaches
// those where the error is created.
func hintFor(err error) string {
	switch {
	case errors.Is(err, deckgen.ErrBrowserConnect),
		errors.Is(err, deckgen.ErrPageCreate):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrParseInput):
		return hints.ForInputDocument()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
