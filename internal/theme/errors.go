package theme

import "errors"

var (
	ErrInvalidColor   = errors.New("invalid theme color")
	ErrInvalidFont    = errors.New("invalid theme font")
	ErrInvalidID      = errors.New("invalid template id")
	ErrNoTemplates    = errors.New("template file defines no templates")
	ErrTemplateRead   = errors.New("failed to read template file")
	ErrTemplateDecode = errors.New("failed to decode template file")
)
