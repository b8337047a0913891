package assets

// Names of the built-in assets.
const (
	DefaultStyleName     = "print"
	DocumentTemplateName = "document"
)

// AssetLoader loads stylesheets and templates by name.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}
