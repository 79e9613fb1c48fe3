package adr2html

import (
	"context"
	"time"
)

// Request is the input to every decorator: the document base URL used for
// rewriting relative targets, plus the current markdown content.
type Request struct {
	BaseURL string
	Content string
}

// Decorator is a stateless, synchronous content transform.
type Decorator func(req Request) (string, error)

// AsyncDecorator is a content transform with suspension points (network
// calls, external rendering). Async decorators run before sync ones.
type AsyncDecorator func(ctx context.Context, req Request) (string, error)

// DefaultDecorators returns the default sync pipeline: link rewrite, embed
// rewrite, front-matter formatting, in that order. The default async
// pipeline is empty.
func DefaultDecorators() []Decorator {
	return []Decorator{RewriteLinks, RewriteEmbeds, FormatFrontmatter}
}

// DefaultPluginID identifies the ADR backend in discovery lookups.
const DefaultPluginID = "adr"

// defaultTimeout bounds a single Read pass when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Reader.
type Option func(*Reader)

// readerConfig holds internal configuration for Reader.
type readerConfig struct {
	timeout  time.Duration
	pluginID string
}

// WithTimeout sets the per-read timeout covering fetch, discovery, and the
// decorator pipeline. Panics if d <= 0 (programmer error, similar to
// time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("adr2html: WithTimeout duration must be positive")
	}
	return func(r *Reader) {
		r.cfg.timeout = d
	}
}

// WithDecorators replaces the default sync decorator list. Order is
// preserved: each decorator's output feeds the next.
func WithDecorators(decorators ...Decorator) Option {
	return func(r *Reader) {
		r.decorators = decorators
	}
}

// WithAsyncDecorators sets the async decorator list, run before the sync
// list under the same sequential contract.
func WithAsyncDecorators(decorators ...AsyncDecorator) Option {
	return func(r *Reader) {
		r.asyncList = decorators
	}
}

// WithDiscovery enables backend base URL discovery, used to build proxied
// image URLs. Without it, Result.ProxyImageURL passes hrefs through.
func WithDiscovery(d BackendDiscovery) Option {
	return func(r *Reader) {
		r.discovery = d
	}
}

// WithPluginID overrides the plugin ID used for discovery lookups.
func WithPluginID(id string) Option {
	return func(r *Reader) {
		r.cfg.pluginID = id
	}
}
