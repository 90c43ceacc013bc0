// Package assets provides the stylesheet templates rendered into documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// the EmbeddedLoader only when the template is not found, so a custom
// directory can override a single template and keep the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}.css           # text/template source (e.g., permalinks.css)
//
// # Security
//
// Template names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
