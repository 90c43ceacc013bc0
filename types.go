package specmark

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/alnah/go-specmark/internal/pipeline"
)

// MaxSymbolLength caps the permalink symbol, in bytes.
const MaxSymbolLength = 16

// DefaultSymbol is the permalink content used when Permalinks.Symbol is empty.
const DefaultSymbol = pipeline.DefaultPermalinkSymbol

// Input contains conversion parameters. Exactly one of Markdown and HTML
// must be set.
type Input struct {
	Markdown   string      // Markdown source, rendered to a full HTML document
	HTML       string      // HTML document or body fragment
	Permalinks *Permalinks // Permalink options (optional, nil = disabled)
}

// Permalinks configures the heading permalinks stage.
type Permalinks struct {
	Include bool   // master switch
	Symbol  string // link content, HTML entities allowed (default: "§")
	Edge    bool   // place flush against the edge, no spacer
	Hide    bool   // hide until the heading is hovered or focused
}

// Validate checks that permalink settings are valid.
// Returns nil if p is nil (nil means disabled).
func (p *Permalinks) Validate() error {
	if p == nil {
		return nil
	}
	if len(p.Symbol) > MaxSymbolLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidSymbol, len(p.Symbol), MaxSymbolLength)
	}
	if !utf8.ValidString(p.Symbol) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidSymbol)
	}
	return nil
}

// options converts to the stage's option set.
func (p *Permalinks) options() pipeline.PermalinkOptions {
	if p == nil {
		return pipeline.PermalinkOptions{}
	}
	return pipeline.PermalinkOptions{
		Include: p.Include,
		Symbol:  p.Symbol,
		Edge:    p.Edge,
		Hide:    p.Hide,
	}
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML       []byte // Serialized document
	Permalinks int    // Number of permalinks inserted
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	assetPath   string
	stylesheets []string
}

// WithLogger sets the logger used by the converter and its stages.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAssetPath loads templates from basePath, falling back to the embedded
// defaults for any template the directory lacks.
func WithAssetPath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = basePath
	}
}

// WithAssetLoader sets a custom template loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithStylesheets sets the stylesheet hrefs linked from documents generated
// from Markdown. The permalinks stylesheet is inserted before the first one.
func WithStylesheets(hrefs ...string) Option {
	return func(c *Converter) {
		c.cfg.stylesheets = append([]string(nil), hrefs...)
	}
}
