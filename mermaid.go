package adr2html

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DiagramRenderer abstracts the external diagram engine so the async
// mermaid decorator stays independent of any particular implementation.
type DiagramRenderer interface {
	// RenderDiagram renders one mermaid source to SVG.
	RenderDiagram(ctx context.Context, source string) (string, error)
	Close() error
}

// Compile-time interface check.
var _ DiagramRenderer = (*ChromeRenderer)(nil)

// mermaidScriptURL is the engine loaded into the headless browser page.
const mermaidScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// renderDiagramJS renders a single diagram and returns its SVG markup.
const renderDiagramJS = `async (src) => {
	mermaid.initialize({ startOnLoad: false, securityLevel: "strict" });
	const id = "adr-" + Math.random().toString(36).slice(2);
	const { svg } = await mermaid.render(id, src);
	return svg;
}`

// ChromeRenderer renders mermaid sources to SVG using headless Chrome via
// go-rod. The browser is launched lazily on first use and reused across
// diagrams. Safe for concurrent use; renders are serialized on one page.
type ChromeRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// NewChromeRenderer creates a ChromeRenderer. A non-positive timeout falls
// back to the package default.
func NewChromeRenderer(timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ChromeRenderer{timeout: timeout}
}

// ensurePage lazily launches the browser and prepares a page with the
// mermaid engine loaded. Caller must hold r.mu.
func (r *ChromeRenderer) ensurePage() error {
	if r.page != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.AddScriptTag(mermaidScriptURL, ""); err != nil {
		_ = browser.Close()
		return fmt.Errorf("%w: loading mermaid engine: %v", ErrDiagramRender, err)
	}

	r.browser = browser
	r.page = page
	return nil
}

// RenderDiagram renders one mermaid source to SVG markup.
func (r *ChromeRenderer) RenderDiagram(ctx context.Context, source string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensurePage(); err != nil {
		return "", err
	}

	page := r.page.Context(ctx).Timeout(r.timeout)
	obj, err := page.Eval(renderDiagramJS, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	svg := obj.Value.Str()
	if !strings.Contains(svg, "<svg") {
		return "", fmt.Errorf("%w: engine returned no svg", ErrDiagramRender)
	}
	return svg, nil
}

// Close releases the headless browser.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	r.page = nil
	return err
}
