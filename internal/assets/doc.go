// Package assets provides the stylesheet and HTML template of the print
// document. Assets are embedded at compile time and can be overridden from a
// directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// AssetResolver only falls back when the custom directory does not contain
// the asset. Validation and I/O errors from the custom directory are returned
// as is, so a broken override is never silently replaced.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # print.css is the base stylesheet
//	└── templates/
//	    └── {name}.html      # document.html is the page template
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
