package pipeline

import (
	"html"
	"log/slog"

	"github.com/alnah/go-specmark/internal/dom"
)

// DefaultPermalinkSymbol is the link content used when no symbol is configured.
const DefaultPermalinkSymbol = "§"

// Class names that drive permalink placement.
const (
	permalinkClass    = "permalink"
	noLinkClass       = "nolink"
	introductoryClass = "introductory"
)

// nbsp separates the permalink from the heading text unless edge placement is on.
const nbsp = "\u00a0"

// headingTags are the elements that may receive a permalink.
var headingTags = []string{"h2", "h3", "h4", "h5", "h6"}

// Reasons a heading is left without a permalink, used in debug logs.
const (
	skipNoLink       = "nolink"
	skipContainer    = "container-veto"
	skipNoIdentifier = "no-identifier"
	skipAnnotated    = "already-linked"
)

// PermalinkOptions holds the permalink settings of one invocation.
type PermalinkOptions struct {
	Include bool   // includePermalinks: master switch
	Symbol  string // permalinkSymbol: link content ("" = DefaultPermalinkSymbol)
	Edge    bool   // permalinkEdge: no spacer, flush placement
	Hide    bool   // permalinkHide: stylesheet only, hidden until hover
}

// ResolvedSymbol returns the configured symbol or the default.
func (o PermalinkOptions) ResolvedSymbol() string {
	if o.Symbol == "" {
		return DefaultPermalinkSymbol
	}
	return o.Symbol
}

// PermalinkAnnotator defines the contract for the permalinks stage.
type PermalinkAnnotator interface {
	Run(opts PermalinkOptions, doc dom.Tree, done func())
}

// Permalinks appends permalink anchors to headings that carry a stable
// identifier, and injects the stylesheet that positions them.
type Permalinks struct {
	templates Templates
	logger    *slog.Logger
}

// Compile-time interface check.
var _ PermalinkAnnotator = (*Permalinks)(nil)

// NewPermalinks creates the stage. A nil logger discards output.
func NewPermalinks(templates Templates, logger *slog.Logger) *Permalinks {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Permalinks{templates: templates, logger: logger}
}

// Run annotates doc in place and calls done exactly once, after every
// mutation has been applied. It never fails: headings without a usable
// identifier are skipped.
func (p *Permalinks) Run(opts PermalinkOptions, doc dom.Tree, done func()) {
	p.Annotate(opts, doc)
	if done != nil {
		done()
	}
}

// Annotate performs the pass and returns how many permalinks were inserted.
func (p *Permalinks) Annotate(opts PermalinkOptions, doc dom.Tree) int {
	if !opts.Include {
		p.logger.Debug("permalinks disabled")
		return 0
	}
	if doc == nil {
		return 0
	}

	p.injectStylesheet(opts, doc)

	inserted := 0
	for _, heading := range doc.FindAll(headingTags...) {
		id, reason := resolveIdentifier(heading)
		if id == "" {
			p.logger.Debug("permalink skipped",
				"tag", heading.Tag(),
				"id", heading.Attr("id"),
				"reason", reason,
			)
			continue
		}

		appendPermalink(doc, heading, id, opts)
		inserted++
	}

	p.logger.Debug("permalinks inserted", "count", inserted)
	return inserted
}

// injectStylesheet inserts the rendered stylesheet before the first <link>
// in <head>, so author stylesheets that follow can override it. Documents
// without a head link get no stylesheet, and a document that already holds
// the same stylesheet does not get a second copy.
func (p *Permalinks) injectStylesheet(opts PermalinkOptions, doc dom.Tree) {
	render, ok := p.templates[PermalinksStylesheet]
	if !ok {
		p.logger.Debug("permalinks stylesheet skipped", "reason", "no template")
		return
	}

	link := doc.FirstIn("head", "link")
	if link == nil {
		p.logger.Debug("permalinks stylesheet skipped", "reason", "no head link")
		return
	}

	css := sanitizeCSS(render(opts))
	for _, existing := range doc.FindAll("style") {
		if existing.Text() == css {
			p.logger.Debug("permalinks stylesheet skipped", "reason", "already present")
			return
		}
	}

	style := doc.NewElement("style")
	style.AppendText(css)
	link.InsertBefore(style)
}

// resolveIdentifier returns the fragment target for heading, or "" with the
// reason it gets no permalink. Headings annotated by an earlier pass are
// left alone so that running the stage twice changes nothing.
//
// A section or div parent owns the identifier: its introductory/nolink
// classes veto the link, otherwise its id replaces the heading's own, even
// when the parent id is empty.
func resolveIdentifier(heading dom.Node) (id, reason string) {
	if heading.HasClass(noLinkClass) {
		return "", skipNoLink
	}
	if hasPermalink(heading) {
		return "", skipAnnotated
	}

	id = heading.Attr("id")

	if parent := heading.Parent(); parent != nil && isSectioningContainer(parent) {
		if parent.HasClass(introductoryClass) || parent.HasClass(noLinkClass) {
			return "", skipContainer
		}
		id = parent.Attr("id")
	}

	if id == "" {
		return "", skipNoIdentifier
	}
	return id, ""
}

// hasPermalink reports whether heading already carries a permalink from an
// earlier pass.
func hasPermalink(heading dom.Node) bool {
	for _, child := range heading.Children() {
		if child.Tag() == "span" && child.HasClass(permalinkClass) {
			return true
		}
	}
	return false
}

func isSectioningContainer(n dom.Node) bool {
	switch n.Tag() {
	case "section", "div":
		return true
	}
	return false
}

// appendPermalink builds
//
//	<span class="permalink"><a href="#id" aria-label=".." title=".."><span>§</span></a></span>
//
// and appends it to heading, preceded by a non-breaking space unless
// opts.Edge is set.
func appendPermalink(doc dom.Tree, heading dom.Node, id string, opts PermalinkOptions) {
	// Captured before the heading is mutated.
	label := "Permalink for " + heading.Text()

	symbol := doc.NewElement("span")
	symbol.AppendText(html.UnescapeString(opts.ResolvedSymbol()))

	anchor := doc.NewElement("a")
	anchor.SetAttr("href", "#"+id)
	anchor.SetAttr("aria-label", label)
	anchor.SetAttr("title", label)
	anchor.AppendChild(symbol)

	wrapper := doc.NewElement("span")
	wrapper.SetAttr("class", permalinkClass)
	wrapper.AppendChild(anchor)

	if !opts.Edge {
		heading.AppendText(nbsp)
	}
	heading.AppendChild(wrapper)
}
