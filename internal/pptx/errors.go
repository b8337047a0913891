package pptx

import "errors"

var (
	ErrNilDeck         = errors.New("deck is nil")
	ErrNoSlides        = errors.New("deck has no slides")
	ErrInvalidGeometry = errors.New("invalid block geometry")
	ErrInvalidTheme    = errors.New("invalid deck theme")
	ErrWrite           = errors.New("failed to write deck part")
)
