package adr2html

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// maxDocumentSize caps a fetched document body (4MB) to prevent memory
// exhaustion from a misbehaving source.
const maxDocumentSize = 4 << 20

// DocumentSource abstracts where raw ADR content comes from.
type DocumentSource interface {
	ReadADR(ctx context.Context, locationURL string) (string, error)
}

// HTTPSource fetches ADR documents over HTTP(S).
type HTTPSource struct {
	// Client is the HTTP client to use; nil means http.DefaultClient.
	Client *http.Client

	// Headers are added to every request, e.g. authorization tokens for
	// private SCM hosts.
	Headers map[string]string
}

// ReadADR fetches the document at locationURL. Non-2xx responses are errors;
// the body is size-capped at maxDocumentSize.
func (s *HTTPSource) ReadADR(ctx context.Context, locationURL string) (string, error) {
	if locationURL == "" {
		return "", ErrEmptyLocation
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locationURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	for key, value := range s.Headers {
		req.Header.Set(key, value)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), nil
}

// FileSource reads ADR documents from the local filesystem. Useful for
// previewing ADRs before they are pushed.
type FileSource struct{}

// ReadADR reads the file at path.
func (FileSource) ReadADR(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrEmptyLocation
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", err
	}
	return string(data), nil
}
