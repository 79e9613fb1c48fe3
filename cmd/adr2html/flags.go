package main

import (
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command line options.
type cliFlags struct {
	config       string
	entity       string
	output       string
	format       string
	mermaid      string
	pluginID     string
	discoveryURL string
	backendURL   string
	headers      []string
	timeout      time.Duration
	quiet        bool
	verbose      bool
	version      bool

	// location is the positional argument: an ADR URL or local file path,
	// or an ADR file name under the entity's ADR location when --entity is
	// set.
	location string
}

// parseFlags parses command line arguments (including the program name at
// args[0]) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("adr2html", flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "config file path or name")
	fs.StringVarP(&f.entity, "entity", "e", "", "catalog descriptor file; the location argument then names an ADR file under its ADR location")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: md, html, or term")
	fs.StringVar(&f.mermaid, "mermaid", "", "mermaid handling: off, inline, or render")
	fs.StringVar(&f.pluginID, "plugin-id", "", "plugin ID for backend discovery")
	fs.StringVar(&f.discoveryURL, "discovery-url", "", "backend discovery endpoint")
	fs.StringVar(&f.backendURL, "backend-url", "", "fixed ADR backend base URL (skips discovery)")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, "extra request header, \"Key: Value\" (repeatable)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-read timeout (default 30s)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose progress output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: adr2html [flags] <url-or-file>\n\nFlags:\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return nil, fmt.Errorf("expected one location argument, got %d", len(rest))
	}
	if len(rest) == 1 {
		f.location = rest[0]
	}

	return f, nil
}

// parseHeaders splits repeated --header values into a map. Accepts
// "Key: Value" and "Key=Value" forms.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, ok := splitHeader(h)
		if !ok {
			return nil, fmt.Errorf("invalid header %q (want \"Key: Value\")", h)
		}
		headers[key] = value
	}
	return headers, nil
}

func splitHeader(h string) (key, value string, ok bool) {
	for _, sep := range []string{":", "="} {
		if k, v, found := strings.Cut(h, sep); found && strings.TrimSpace(k) != "" {
			return strings.TrimSpace(k), strings.TrimSpace(v), true
		}
	}
	return "", "", false
}
