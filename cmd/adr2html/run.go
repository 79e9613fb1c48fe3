package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/charmbracelet/glamour"

	adr2html "github.com/adrkit/go-adr2html"
	"github.com/adrkit/go-adr2html/internal/fileutil"
	"github.com/adrkit/go-adr2html/internal/render"
)

// ErrNoLocation indicates the positional argument is missing.
var ErrNoLocation = errors.New("missing location argument (ADR URL or file path)")

// termWordWrap is the line width for terminal output.
const termWordWrap = 100

// run executes one fetch-decorate-render pass and writes the result.
func run(flags *cliFlags, out io.Writer, errOut io.Writer) error {
	if flags.location == "" {
		return ErrNoLocation
	}

	location := flags.location
	if flags.entity != "" {
		resolved, err := resolveEntityLocation(flags.entity, flags.location)
		if err != nil {
			return err
		}
		location = resolved
	}

	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	mergeFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	headers, err := parseHeaders(flags.headers)
	if err != nil {
		return err
	}
	for key, value := range headers {
		if cfg.Source.Headers == nil {
			cfg.Source.Headers = map[string]string{}
		}
		cfg.Source.Headers[key] = value
	}

	source, err := buildSource(location, cfg)
	if err != nil {
		return err
	}

	opts, cleanup := buildReaderOptions(cfg, flags)
	defer cleanup()

	reader := adr2html.NewReader(source, opts...)

	if flags.verbose {
		fmt.Fprintf(errOut, "Reading %s\n", location)
	}

	res := reader.Read(context.Background(), location)

	if !flags.quiet {
		for _, warning := range res.Warnings() {
			fmt.Fprintln(errOut, "warning: "+warning)
		}
	}
	if res.FetchErr != nil {
		return res.FetchErr
	}

	output, err := formatOutput(context.Background(), res, location, cfg)
	if err != nil {
		return err
	}

	return writeOutput(out, flags.output, output)
}

// mergeFlags overlays non-zero flag values onto the config.
func mergeFlags(cfg *Config, flags *cliFlags) {
	if flags.format != "" {
		cfg.Render.Format = flags.format
	}
	if flags.mermaid != "" {
		cfg.Mermaid.Mode = flags.mermaid
	}
	if flags.discoveryURL != "" {
		cfg.Discovery.Endpoint = flags.discoveryURL
	}
	if flags.pluginID != "" {
		cfg.Discovery.PluginID = flags.pluginID
	}
	if flags.backendURL != "" {
		if cfg.Discovery.BaseURLs == nil {
			cfg.Discovery.BaseURLs = map[string]string{}
		}
		cfg.Discovery.BaseURLs[pluginID(cfg)] = flags.backendURL
	}
	if flags.timeout > 0 {
		cfg.Source.TimeoutSeconds = int(flags.timeout / time.Second)
	}
}

// pluginID returns the effective plugin ID for discovery lookups.
func pluginID(cfg *Config) string {
	if cfg.Discovery.PluginID != "" {
		return cfg.Discovery.PluginID
	}
	return adr2html.DefaultPluginID
}

// buildSource picks a document source for the location: HTTP for URLs,
// local filesystem otherwise.
func buildSource(location string, cfg *Config) (adr2html.DocumentSource, error) {
	if fileutil.IsURL(location) {
		return &adr2html.HTTPSource{Headers: cfg.Source.Headers}, nil
	}
	if !fileutil.FileExists(location) {
		return nil, fmt.Errorf("no such file: %s", location)
	}
	return adr2html.FileSource{}, nil
}

// buildReaderOptions assembles Reader options from config: timeout,
// discovery, and the decorator lists implied by the mermaid mode. The
// returned cleanup releases the headless browser when one was started.
func buildReaderOptions(cfg *Config, flags *cliFlags) ([]adr2html.Option, func()) {
	opts := []adr2html.Option{adr2html.WithPluginID(pluginID(cfg))}
	cleanup := func() {}

	if cfg.Source.TimeoutSeconds > 0 {
		opts = append(opts, adr2html.WithTimeout(time.Duration(cfg.Source.TimeoutSeconds)*time.Second))
	}

	if base := cfg.Discovery.BaseURLs[pluginID(cfg)]; base != "" {
		opts = append(opts, adr2html.WithDiscovery(adr2html.StaticDiscovery(cfg.Discovery.BaseURLs)))
	} else if cfg.Discovery.Endpoint != "" {
		opts = append(opts, adr2html.WithDiscovery(&adr2html.HTTPDiscovery{Endpoint: cfg.Discovery.Endpoint}))
	}

	switch cfg.Mermaid.Mode {
	case MermaidInline:
		decorators := append(adr2html.DefaultDecorators(), adr2html.InlineMermaid)
		opts = append(opts, adr2html.WithDecorators(decorators...))
	case MermaidRender:
		renderer := adr2html.NewChromeRenderer(flags.timeout)
		cleanup = func() { _ = renderer.Close() }
		opts = append(opts, adr2html.WithAsyncDecorators(adr2html.RenderMermaid(renderer)))
	}

	return opts, cleanup
}

// formatOutput renders the decorated markdown in the configured format.
func formatOutput(ctx context.Context, res *adr2html.Result, location string, cfg *Config) (string, error) {
	switch cfg.Render.Format {
	case FormatMarkdown:
		return res.Markdown, nil

	case FormatTerm:
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(termWordWrap),
		)
		if err != nil {
			return "", fmt.Errorf("creating terminal renderer: %w", err)
		}
		return renderer.Render(res.Markdown)

	case FormatHTML:
		opts := render.Options{Title: documentTitle(location)}
		if cfg.Render.Style != "" {
			css, err := os.ReadFile(cfg.Render.Style) // #nosec G304 -- user-provided path
			if err != nil {
				return "", fmt.Errorf("loading style %q: %w", cfg.Render.Style, err)
			}
			opts.CSS = string(css)
		}
		if res.BackendBaseURL != "" {
			opts.RewriteImage = res.ProxyImageURL
		}
		return render.New().Render(ctx, res.Markdown, opts)
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Render.Format)
}

// documentTitle derives an HTML title from a MADR filename, falling back to
// the bare filename.
func documentTitle(location string) string {
	name := path.Base(location)
	if adr2html.IsADRFile(name) {
		return adr2html.TitleFromFilename(name)
	}
	return name
}

// writeOutput writes content to the output file, or out when no file is
// configured.
func writeOutput(out io.Writer, outputPath, content string) error {
	if outputPath == "" {
		_, err := io.WriteString(out, content)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
