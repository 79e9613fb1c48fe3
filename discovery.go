package adr2html

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// BackendDiscovery resolves the base URL of a backend plugin, used here to
// route image URLs through the ADR backend proxy.
type BackendDiscovery interface {
	BaseURL(ctx context.Context, pluginID string) (string, error)
}

// StaticDiscovery maps plugin IDs to fixed base URLs. Suitable when the
// backend topology is known at configuration time.
type StaticDiscovery map[string]string

// BaseURL returns the configured base URL for pluginID.
func (d StaticDiscovery) BaseURL(ctx context.Context, pluginID string) (string, error) {
	base, ok := d[pluginID]
	if !ok || base == "" {
		return "", fmt.Errorf("%w: %q", ErrNoBackendBaseURL, pluginID)
	}
	return base, nil
}

// HTTPDiscovery queries a discovery endpoint for plugin base URLs with a
// GET on {Endpoint}/{pluginID}. The endpoint may answer with plain text or
// a {"baseUrl": "..."} JSON object.
type HTTPDiscovery struct {
	Endpoint string
	Client   *http.Client
}

// maxDiscoveryResponse caps a discovery response body (64KB); base URLs are
// tiny and anything larger indicates a misrouted request.
const maxDiscoveryResponse = 64 << 10

// BaseURL resolves pluginID against the discovery endpoint.
func (d *HTTPDiscovery) BaseURL(ctx context.Context, pluginID string) (string, error) {
	if d.Endpoint == "" {
		return "", ErrEmptyDiscoveryURL
	}

	lookupURL := strings.TrimSuffix(d.Endpoint, "/") + "/" + pluginID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	client := d.Client
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

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDiscoveryResponse))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	base := strings.TrimSpace(string(data))
	if strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "application/json") {
		var payload struct {
			BaseURL string `json:"baseUrl"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return "", fmt.Errorf("decoding discovery response: %w", err)
		}
		base = payload.BaseURL
	}

	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrNoBackendBaseURL, pluginID)
	}
	return base, nil
}
