package assets

// PermalinksTemplate names the stylesheet template used by the permalinks stage.
const PermalinksTemplate = "permalinks"

// AssetLoader loads stylesheet templates by name.
// Implementations may load from embedded assets, the filesystem, etc.
type AssetLoader interface {
	// LoadTemplate loads a stylesheet template by name (without .css extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
