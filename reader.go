package adr2html

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Reader fetches an ADR document, runs the decorator pipeline, and reports
// each failure category independently. A Reader is safe for concurrent use
// as long as its source and discovery are.
type Reader struct {
	cfg        readerConfig
	source     DocumentSource
	discovery  BackendDiscovery
	decorators []Decorator
	asyncList  []AsyncDecorator
}

// NewReader creates a Reader around the given document source with the
// default sync decorators and no async decorators. Use options to customize
// behavior (e.g., WithDecorators, WithDiscovery, WithTimeout).
func NewReader(source DocumentSource, opts ...Option) *Reader {
	r := &Reader{
		cfg:        readerConfig{timeout: defaultTimeout, pluginID: DefaultPluginID},
		source:     source,
		decorators: DefaultDecorators(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Result holds the outcome of a single read pass. The three error fields
// correspond to the independently tracked failure categories: none of them
// aborts the others, and each maps to its own warning.
type Result struct {
	// Markdown is the decorated content, or the raw fetched content when the
	// decorator pipeline failed. Empty when the fetch itself failed.
	Markdown string

	// BackendBaseURL is the discovered ADR backend base URL, used to build
	// proxied image URLs. Empty when discovery was disabled or failed.
	BackendBaseURL string

	FetchErr     error
	DiscoveryErr error
	DecorateErr  error

	location string
}

// Warnings returns one human-readable message per recorded failure.
func (res *Result) Warnings() []string {
	var warnings []string
	for _, err := range []error{res.FetchErr, res.DiscoveryErr, res.DecorateErr} {
		if err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return warnings
}

// ProxyImageURL maps an image href to a URL served through the ADR backend
// image proxy. Relative hrefs resolve against the document location first.
// Without a discovered backend base URL the href passes through unchanged.
func (res *Result) ProxyImageURL(href string) string {
	if res.BackendBaseURL == "" || href == "" {
		return href
	}
	target := href
	if !isAbsoluteURL(href) {
		target = parentURL(res.location) + "/" + strings.TrimPrefix(href, "./")
	}
	return res.BackendBaseURL + "/image?url=" + url.QueryEscape(target)
}

// Read fetches the document at locationURL and runs the decorator pipeline.
// Fetch and backend discovery are issued concurrently; they are independent
// requests with independent failures. Decorators then run strictly
// sequentially, async list first, each output feeding the next.
//
// Read never returns an error: failures are recorded per category on the
// Result so callers can surface each as a separate warning.
func (r *Reader) Read(ctx context.Context, locationURL string) *Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	res := &Result{location: locationURL}

	var wg sync.WaitGroup
	var raw string

	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := r.source.ReadADR(ctx, locationURL)
		if err != nil {
			res.FetchErr = fmt.Errorf("%w: %v", ErrFetch, err)
			return
		}
		raw = data
	}()

	if r.discovery != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			base, err := r.discovery.BaseURL(ctx, r.cfg.pluginID)
			if err != nil {
				res.DiscoveryErr = fmt.Errorf("%w: %v", ErrDiscovery, err)
				return
			}
			res.BackendBaseURL = strings.TrimSuffix(base, "/")
		}()
	}

	wg.Wait()

	if res.FetchErr != nil {
		return res
	}

	// Keep the raw content available even if a decorator fails.
	res.Markdown = raw

	decorated, err := r.decorate(ctx, Request{BaseURL: parentURL(locationURL), Content: raw})
	if err != nil {
		res.DecorateErr = fmt.Errorf("%w: %v", ErrDecorate, err)
		return res
	}
	res.Markdown = decorated

	return res
}

// decorate runs the async then sync decorator lists. Execution is strictly
// sequential: each decorator's output is the next decorator's input, so no
// parallelism is possible. The first error aborts the remaining pipeline.
func (r *Reader) decorate(ctx context.Context, req Request) (string, error) {
	for _, d := range r.asyncList {
		content, err := d(ctx, req)
		if err != nil {
			return "", err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		req.Content = content
	}

	for _, d := range r.decorators {
		content, err := d(req)
		if err != nil {
			return "", err
		}
		req.Content = content
	}

	return req.Content, nil
}

// parentURL drops the final path segment of a location URL, yielding the
// base URL used to rewrite relative links and embeds.
func parentURL(locationURL string) string {
	idx := strings.LastIndex(locationURL, "/")
	if idx < 0 {
		return locationURL
	}
	return locationURL[:idx]
}
