// Package specmark post-processes HTML documents: it converts Markdown
// sources to HTML and appends permalink anchors to the h2-h6 headings that
// carry a stable identifier.
//
// # Quick Start
//
//	conv, err := specmark.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, specmark.Input{
//	    HTML:       page,
//	    Permalinks: &specmark.Permalinks{Include: true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("page.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
//  1. Markdown preprocessing and conversion via Goldmark (Markdown input only)
//  2. HTML parsing into a tree (full document or body fragment)
//  3. Permalinks: stylesheet before the first head <link>, anchors on headings
//  4. Rendering back to HTML
//
// # Permalink Rules
//
// A heading gets a permalink to its own id unless it has class "nolink".
// When its parent is a <section> or <div>, the parent decides: class
// "introductory" or "nolink" removes the permalink, otherwise the parent's
// id is used instead. Headings left without an id get nothing.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := specmark.NewConverterPool(specmark.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package specmark
