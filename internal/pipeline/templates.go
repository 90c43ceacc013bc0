package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/alnah/go-specmark/internal/assets"
)

// PermalinksStylesheet is the template key the permalinks stage renders.
const PermalinksStylesheet = "permalinks.css"

// ErrTemplateParse indicates a stylesheet template failed to parse or execute.
var ErrTemplateParse = errors.New("stylesheet template invalid")

// RenderFunc renders a stylesheet fragment from permalink options.
// Implementations must be pure.
type RenderFunc func(PermalinkOptions) string

// Templates maps a template name to its render function.
type Templates map[string]RenderFunc

// NewTemplates loads and parses the built-in stylesheet templates from loader.
// Each template is executed once against zero options so that references to
// unknown fields fail here rather than at render time.
func NewTemplates(loader assets.AssetLoader) (Templates, error) {
	src, err := loader.LoadTemplate(assets.PermalinksTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading %s template: %w", assets.PermalinksTemplate, err)
	}

	render, err := compileStylesheet(PermalinksStylesheet, src)
	if err != nil {
		return nil, err
	}

	return Templates{PermalinksStylesheet: render}, nil
}

// compileStylesheet parses src and returns a RenderFunc bound to it.
func compileStylesheet(name, src string) (RenderFunc, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}

	if err := tmpl.Execute(&bytes.Buffer{}, PermalinkOptions{}); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}

	return func(opts PermalinkOptions) string {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, opts); err != nil {
			return ""
		}
		return buf.String()
	}, nil
}

// sanitizeCSS escapes sequences that could break out of a <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
