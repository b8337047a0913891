package printdoc

import "errors"

// Sentinel errors for print rendering.
var (
	ErrTemplateLoad    = errors.New("failed to load print template")
	ErrTemplateParse   = errors.New("failed to parse print template")
	ErrTemplateExecute = errors.New("failed to execute print template")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrNotesConversion = errors.New("speaker notes conversion failed")
)
