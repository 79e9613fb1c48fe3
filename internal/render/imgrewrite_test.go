package render

import (
	"strings"
	"testing"
)

func TestRewriteImageURLs(t *testing.T) {
	t.Parallel()

	proxy := func(href string) string { return "proxied:" + href }

	tests := []struct {
		name     string
		fragment string
		contains []string
		absent   []string
	}{
		{
			name:     "img src rewritten",
			fragment: `<p><img src="a.png" alt="a"/></p>`,
			contains: []string{`src="proxied:a.png"`, `alt="a"`},
		},
		{
			name:     "multiple images rewritten",
			fragment: `<img src="a.png"/><img src="b.png"/>`,
			contains: []string{`src="proxied:a.png"`, `src="proxied:b.png"`},
		},
		{
			name:     "anchors untouched",
			fragment: `<a href="a.png">link</a>`,
			contains: []string{`href="a.png"`},
			absent:   []string{"proxied:"},
		},
		{
			name:     "empty src untouched",
			fragment: `<img src="" alt="x"/>`,
			absent:   []string{"proxied:"},
		},
		{
			name:     "text content untouched",
			fragment: `<p>src="a.png"</p>`,
			absent:   []string{"proxied:"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteImageURLs(tt.fragment, proxy)
			if err != nil {
				t.Fatalf("RewriteImageURLs() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in %q", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("unexpected %q in %q", bad, got)
				}
			}
		})
	}
}

func TestRewriteImageURLsNoBodyWrapper(t *testing.T) {
	t.Parallel()

	got, err := RewriteImageURLs(`<p>hello</p>`, func(h string) string { return h })
	if err != nil {
		t.Fatalf("RewriteImageURLs() error = %v", err)
	}
	if strings.Contains(got, "<body") || strings.Contains(got, "<html") {
		t.Errorf("fragment wrapped in document skeleton: %q", got)
	}
}
