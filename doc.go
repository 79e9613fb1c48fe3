// Package adr2html fetches Architecture Decision Record (ADR) markdown
// documents, decorates them, and renders the result as HTML.
//
// # Quick Start
//
// Create a Reader around a document source and read an ADR by URL:
//
//	reader := adr2html.NewReader(&adr2html.HTTPSource{})
//	res := reader.Read(ctx, "https://raw.example.com/docs/adr/0001-record-decisions.md")
//	for _, w := range res.Warnings() {
//	    log.Println(w)
//	}
//	fmt.Println(res.Markdown)
//
// The result carries the decorated markdown plus one error per failure
// category (document fetch, backend discovery, decorator pipeline). Each
// category is independent and non-fatal for the others.
//
// # Decorator Pipeline
//
// The core of the package is an ordered pipeline of content decorators.
// Each decorator is a stateless transform over a (base URL, content) pair:
//
//  1. Link rewrite: relative .md links are prefixed with the document base URL
//  2. Embed rewrite: relative image embeds are prefixed the same way
//  3. Front-matter format: YAML front matter becomes a markdown table
//
// Mermaid diagram preprocessing is available in two variants: InlineMermaid
// (synchronous, wraps fences for browser-side rendering) and RenderMermaid
// (asynchronous, renders each fence through an injected DiagramRenderer).
//
// Override the defaults with options:
//
//	reader := adr2html.NewReader(source,
//	    adr2html.WithDecorators(adr2html.RewriteLinks, adr2html.InlineMermaid),
//	    adr2html.WithAsyncDecorators(adr2html.RenderMermaid(renderer)),
//	    adr2html.WithDiscovery(adr2html.StaticDiscovery{"adr": backendURL}),
//	)
//
// Async decorators run first, strictly in order, each output feeding the
// next; sync decorators follow under the same sequential contract.
//
// # Rendering
//
// The render subpackage converts decorated markdown to a standalone HTML
// document via Goldmark (GFM, syntax highlighting) and rewrites image URLs
// through the ADR backend image proxy. Diagram fences emitted by
// InlineMermaid are picked up in the browser via the pre.mermaid selector.
//
// # Browser Requirements
//
// RenderMermaid with ChromeRenderer requires Chrome/Chromium; go-rod
// downloads a managed Chromium on first run. Set ROD_NO_SANDBOX=1 in
// containers and ROD_BROWSER_BIN to use a custom binary.
package adr2html
