package adr2html

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Precompiled patterns for the content decorators.
var (
	// Inline links with a .md target: [text](target.md)
	mdLinkPattern = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()\s]+?)\.(?i:md)\)`)

	// Image embeds, preserving anything after the extension (query/fragment):
	// ![alt](path.png#anchor)
	mdEmbedPattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^()\s]+?)\.((?i:png|jpe?g|gif|webp))([^()\s]*)\)`)

	// Fenced mermaid code blocks.
	mermaidFencePattern = regexp.MustCompile("(?s)```mermaid\n(.*?)\n```")
)

// MermaidSelector is the DOM query selector identifying diagram blocks
// emitted by InlineMermaid, consumed by the browser-side mermaid engine.
const MermaidSelector = "pre.mermaid"

// isAbsoluteURL reports whether target already carries an HTTP(S) scheme.
// RE2 has no negative lookahead, so absolute targets are skipped here
// instead of in the patterns above.
func isAbsoluteURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// RewriteLinks prefixes relative .md link targets with the request base URL.
// Absolute HTTP(S) targets and non-.md links pass through unchanged.
// Not idempotent: re-applying prefixes again.
func RewriteLinks(req Request) (string, error) {
	out := mdLinkPattern.ReplaceAllStringFunc(req.Content, func(match string) string {
		parts := mdLinkPattern.FindStringSubmatch(match)
		if isAbsoluteURL(parts[2]) {
			return match
		}
		return fmt.Sprintf("[%s](%s/%s.md)", parts[1], req.BaseURL, parts[2])
	})
	return out, nil
}

// RewriteEmbeds prefixes relative image embed targets with the request base
// URL, preserving any trailing query or fragment after the extension.
// Absolute HTTP(S) targets pass through unchanged.
func RewriteEmbeds(req Request) (string, error) {
	out := mdEmbedPattern.ReplaceAllStringFunc(req.Content, func(match string) string {
		parts := mdEmbedPattern.FindStringSubmatch(match)
		if isAbsoluteURL(parts[2]) {
			return match
		}
		return fmt.Sprintf("![%s](%s/%s.%s%s)", parts[1], req.BaseURL, parts[2], parts[3], parts[4])
	})
	return out, nil
}

// InlineMermaid replaces each mermaid fence with a <pre class='mermaid'>
// block holding the diagram source verbatim. Actual rendering is deferred to
// an external engine run against MermaidSelector after the document reaches
// the DOM.
func InlineMermaid(req Request) (string, error) {
	out := mermaidFencePattern.ReplaceAllStringFunc(req.Content, func(match string) string {
		source := mermaidFencePattern.FindStringSubmatch(match)[1]
		return "<pre class='mermaid'>\n" + source + "\n</pre>"
	})
	return out, nil
}

// RenderMermaid returns an async decorator that renders each mermaid fence
// through the given renderer and removes rendered fences from the content.
//
// The first render failure abandons every change from the pass: the original
// content is returned unmodified and the failure is swallowed rather than
// surfaced. Partial success is all-or-nothing per invocation.
func RenderMermaid(renderer DiagramRenderer) AsyncDecorator {
	return func(ctx context.Context, req Request) (string, error) {
		matches := mermaidFencePattern.FindAllStringSubmatch(req.Content, -1)
		if len(matches) == 0 {
			return req.Content, nil
		}

		content := req.Content
		for _, m := range matches {
			if _, err := renderer.RenderDiagram(ctx, m[1]); err != nil {
				return req.Content, nil
			}
			content = strings.Replace(content, m[0], "", 1)
		}
		return content, nil
	}
}
