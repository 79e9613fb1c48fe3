package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteImageURLs routes every img[src] in an HTML fragment through the
// given rewrite function. Used to point images at the ADR backend image
// proxy so private SCM hosts resolve with backend credentials.
func RewriteImageURLs(fragment string, rewrite func(href string) string) (string, error) {
	container, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	rewriteImages(container, rewrite)

	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// parseFragment parses an HTML fragment with body context so nodes are not
// wrapped in an <html><body> skeleton, and gathers them in one container
// for uniform traversal.
func parseFragment(fragment string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// rewriteImages traverses the tree and applies rewrite to img src values.
func rewriteImages(n *html.Node, rewrite func(string) string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key == "src" && attr.Val != "" {
				n.Attr[i].Val = rewrite(attr.Val)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImages(c, rewrite)
	}
}
