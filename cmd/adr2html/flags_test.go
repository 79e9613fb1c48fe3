package main

import (
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"adr2html", "doc.md"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if f.location != "doc.md" {
			t.Errorf("location = %q, want %q", f.location, "doc.md")
		}
		if f.format != "" || f.mermaid != "" || f.quiet || f.verbose {
			t.Errorf("unexpected non-zero defaults: %+v", f)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{
			"adr2html",
			"--config", "team",
			"--entity", "catalog-info.yaml",
			"--output", "out.html",
			"--format", "html",
			"--mermaid", "inline",
			"--plugin-id", "adr-backend",
			"--discovery-url", "http://disc/api",
			"--backend-url", "http://backend/api/adr",
			"--header", "Authorization: token abc",
			"--timeout", "45s",
			"--quiet",
			"https://x/y/0001-a.md",
		})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}

		if f.config != "team" || f.entity != "catalog-info.yaml" || f.output != "out.html" || f.format != "html" {
			t.Errorf("basic flags = %+v", f)
		}
		if f.mermaid != "inline" || f.pluginID != "adr-backend" {
			t.Errorf("pipeline flags = %+v", f)
		}
		if f.discoveryURL != "http://disc/api" || f.backendURL != "http://backend/api/adr" {
			t.Errorf("discovery flags = %+v", f)
		}
		if len(f.headers) != 1 || f.headers[0] != "Authorization: token abc" {
			t.Errorf("headers = %v", f.headers)
		}
		if f.timeout != 45*time.Second {
			t.Errorf("timeout = %v, want 45s", f.timeout)
		}
		if !f.quiet {
			t.Error("quiet not set")
		}
		if f.location != "https://x/y/0001-a.md" {
			t.Errorf("location = %q", f.location)
		}
	})

	t.Run("no location allowed at parse time", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"adr2html", "--version"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if f.location != "" {
			t.Errorf("location = %q, want empty", f.location)
		}
	})

	t.Run("two locations rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"adr2html", "a.md", "b.md"}); err == nil {
			t.Error("parseFlags() expected error for extra argument")
		}
	})

	t.Run("unknown flag rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"adr2html", "--nope"}); err == nil {
			t.Error("parseFlags() expected error for unknown flag")
		}
	})
}

func TestParseHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      []string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "colon form",
			in:   []string{"Authorization: token abc"},
			want: map[string]string{"Authorization": "token abc"},
		},
		{
			name: "equals form",
			in:   []string{"X-Api-Key=secret"},
			want: map[string]string{"X-Api-Key": "secret"},
		},
		{
			name: "multiple headers",
			in:   []string{"A: 1", "B: 2"},
			want: map[string]string{"A": "1", "B": "2"},
		},
		{name: "empty list", in: nil, want: nil},
		{name: "missing separator", in: []string{"nope"}, wantErr: true},
		{name: "empty key", in: []string{": value"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseHeaders(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("parseHeaders() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHeaders() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseHeaders() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("header %q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}
