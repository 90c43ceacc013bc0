package specmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-specmark/internal/assets"
	"github.com/alnah/go-specmark/internal/dom"
	"github.com/alnah/go-specmark/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.PermalinkAnnotator   = (*pipeline.Permalinks)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
)

// Converter runs the document pipeline: Markdown to HTML when needed, then
// the permalinks stage over the parsed tree. A Converter is safe for
// sequential reuse; use ConverterPool for parallel work.
type Converter struct {
	cfg               converterConfig
	logger            *slog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	permalinks        *pipeline.Permalinks
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithAssetPath).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger:       slog.New(slog.DiscardHandler),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	templates, err := pipeline.NewTemplates(c.assetLoader)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
		}
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.stylesheets...)
	c.permalinks = pipeline.NewPermalinks(templates, c.logger)

	return c, nil
}

// Convert runs the pipeline and returns the serialized document.
// The context is used for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	htmlContent := input.HTML
	if input.Markdown != "" {
		htmlContent, err = c.markdownToHTML(ctx, input.Markdown)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := dom.Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	inserted := c.permalinks.Annotate(input.Permalinks.options(), doc)

	out, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}

	return &ConvertResult{HTML: []byte(out), Permalinks: inserted}, nil
}

// markdownToHTML preprocesses and converts Markdown to a full document.
func (c *Converter) markdownToHTML(ctx context.Context, markdown string) (string, error) {
	content := c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return htmlContent, nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI and API users have their options validated earlier, at config load or
// request parsing. Both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" && input.HTML == "" {
		return ErrEmptyInput
	}
	if input.Markdown != "" && input.HTML != "" {
		return ErrAmbiguousInput
	}
	return input.Permalinks.Validate()
}
