package render

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	stdhtml "html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

//go:embed styles/adr.css
var defaultCSS string

// documentTemplate wraps the rendered fragment in a complete HTML5
// document: title, stylesheet, body, optional mermaid bootstrap.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s%s
</body>
</html>`

// mermaidBootstrap runs the external diagram engine against the blocks
// emitted by the sync mermaid decorator, selected by pre.mermaid.
const mermaidBootstrap = `
<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: false });
await mermaid.run({ querySelector: "pre.mermaid" });
</script>`

// Options configures a single Render call.
type Options struct {
	// Title for the HTML document; empty means "Architecture Decision Record".
	Title string

	// CSS replaces the embedded default stylesheet when non-empty.
	CSS string

	// RewriteImage maps each img[src] to its proxied URL. Nil leaves image
	// URLs untouched.
	RewriteImage func(href string) string
}

// HTML renders decorated markdown to a standalone HTML document.
type HTML struct {
	md goldmark.Markdown
}

// New creates an HTML renderer with GFM extensions and syntax highlighting.
func New() *HTML {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables (front matter output), strikethrough, autolinks
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Decorated content carries inline HTML by contract:
			// <pre class='mermaid'> blocks and <br/> in front matter cells.
			html.WithUnsafe(),
		),
	)
	return &HTML{md: md}
}

// Render converts markdown into a standalone HTML document. Image URLs are
// routed through opts.RewriteImage and a mermaid bootstrap script is
// appended when the document contains diagram blocks.
//
// Goldmark doesn't natively support context, so cancellation uses the
// goroutine + select pattern.
func (h *HTML) Render(ctx context.Context, content string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var fragment string
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		fragment = r.html
	}

	if opts.RewriteImage != nil {
		rewritten, err := RewriteImageURLs(fragment, opts.RewriteImage)
		if err != nil {
			return "", err
		}
		fragment = rewritten
	}

	title := opts.Title
	if title == "" {
		title = "Architecture Decision Record"
	}
	css := opts.CSS
	if css == "" {
		css = defaultCSS
	}

	bootstrap := ""
	if strings.Contains(fragment, "class='mermaid'") || strings.Contains(fragment, `class="mermaid"`) {
		bootstrap = mermaidBootstrap
	}

	return fmt.Sprintf(documentTemplate, stdhtml.EscapeString(title), css, fragment, bootstrap), nil
}
