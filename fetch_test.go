package adr2html

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPSourceReadADR(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/docs/adr/0001-use-go.md":
			if r.Header.Get("Authorization") != "" {
				w.Header().Set("X-Saw-Auth", "yes")
			}
			_, _ = w.Write([]byte("# Use Go"))
		case "/missing.md":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	t.Run("fetches document body", func(t *testing.T) {
		t.Parallel()

		source := &HTTPSource{}
		got, err := source.ReadADR(context.Background(), server.URL+"/docs/adr/0001-use-go.md")
		if err != nil {
			t.Fatalf("ReadADR() error = %v", err)
		}
		if got != "# Use Go" {
			t.Errorf("ReadADR() = %q, want %q", got, "# Use Go")
		}
	})

	t.Run("not found is an error", func(t *testing.T) {
		t.Parallel()

		source := &HTTPSource{}
		_, err := source.ReadADR(context.Background(), server.URL+"/missing.md")
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("error = %v, want ErrUnexpectedStatus", err)
		}
	})

	t.Run("server error is an error", func(t *testing.T) {
		t.Parallel()

		source := &HTTPSource{}
		_, err := source.ReadADR(context.Background(), server.URL+"/other")
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("error = %v, want ErrUnexpectedStatus", err)
		}
	})

	t.Run("empty location is an error", func(t *testing.T) {
		t.Parallel()

		source := &HTTPSource{}
		_, err := source.ReadADR(context.Background(), "")
		if !errors.Is(err, ErrEmptyLocation) {
			t.Errorf("error = %v, want ErrEmptyLocation", err)
		}
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		source := &HTTPSource{}
		_, err := source.ReadADR(ctx, server.URL+"/docs/adr/0001-use-go.md")
		if err == nil {
			t.Error("ReadADR() expected error for cancelled context")
		}
	})
}

func TestHTTPSourceSendsHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	source := &HTTPSource{Headers: map[string]string{"Authorization": "token abc"}}
	if _, err := source.ReadADR(context.Background(), server.URL); err != nil {
		t.Fatalf("ReadADR() error = %v", err)
	}
	if gotAuth != "token abc" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "token abc")
	}
}

func TestFileSourceReadADR(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "0001-use-go.md")
	if err := os.WriteFile(path, []byte("# Use Go"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("reads file content", func(t *testing.T) {
		t.Parallel()

		got, err := FileSource{}.ReadADR(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadADR() error = %v", err)
		}
		if got != "# Use Go" {
			t.Errorf("ReadADR() = %q, want %q", got, "# Use Go")
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := FileSource{}.ReadADR(context.Background(), filepath.Join(dir, "nope.md"))
		if err == nil {
			t.Error("ReadADR() expected error for missing file")
		}
	})

	t.Run("empty path is an error", func(t *testing.T) {
		t.Parallel()

		_, err := FileSource{}.ReadADR(context.Background(), "")
		if !errors.Is(err, ErrEmptyLocation) {
			t.Errorf("error = %v, want ErrEmptyLocation", err)
		}
	})
}
