package deckgen

import (
	"errors"

	"github.com/alnah/go-deckgen/internal/assets"
)

// Asset names of the print document.
const (
	// DefaultStyle is the base stylesheet of the print document.
	DefaultStyle = assets.DefaultStyleName

	// DocumentTemplate is the html/template source of the print document.
	DocumentTemplate = assets.DocumentTemplateName
)

// AssetLoader loads the print stylesheet and document template by name.
// Implementations may load from filesystem, embedded assets, a database,
// etc.
//
// A replacement document template receives the same data as the built-in
// one; start from a copy of templates/document.html.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html
	// extension). Returns ErrTemplateNotFound if it doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/print.css
//   - templates/document.html
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable
// directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError converts internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return errors.Join(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return errors.Join(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrInvalidAssetName),
		errors.Is(err, assets.ErrPathTraversal):
		return errors.Join(ErrInvalidAssetPath, err)
	}
	return err
}

// publicToInternalAdapter lets a public AssetLoader serve the renderer.
// Public sentinels are mapped back so the internal not-found checks hold.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	content, err := a.pub.LoadStyle(name)
	if errors.Is(err, ErrStyleNotFound) {
		return "", errors.Join(assets.ErrStyleNotFound, err)
	}
	return content, err
}

func (a *publicToInternalAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.pub.LoadTemplate(name)
	if errors.Is(err, ErrTemplateNotFound) {
		return "", errors.Join(assets.ErrTemplateNotFound, err)
	}
	return content, err
}

var (
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = (*publicToInternalAdapter)(nil)
)
