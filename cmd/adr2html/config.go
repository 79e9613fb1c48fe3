package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrkit/go-adr2html/internal/fileutil"
	"github.com/adrkit/go-adr2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidFormat  = errors.New("invalid output format")
	ErrInvalidMermaid = errors.New("invalid mermaid mode")
)

// Output format values.
const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatTerm     = "term"
)

// Mermaid handling modes.
const (
	MermaidOff    = "off"
	MermaidInline = "inline"
	MermaidRender = "render"
)

// Config holds file-based configuration. Flags override config values.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Render    RenderConfig    `yaml:"render"`
	Mermaid   MermaidConfig   `yaml:"mermaid"`
}

// SourceConfig configures document fetching.
type SourceConfig struct {
	Headers        map[string]string `yaml:"headers"`        // extra request headers
	TimeoutSeconds int               `yaml:"timeoutSeconds"` // 0 = library default
}

// DiscoveryConfig configures backend base URL discovery.
type DiscoveryConfig struct {
	Endpoint string            `yaml:"endpoint"` // discovery service endpoint
	PluginID string            `yaml:"pluginId"` // defaults to "adr"
	BaseURLs map[string]string `yaml:"baseUrls"` // static pluginID -> base URL map
}

// RenderConfig configures output rendering.
type RenderConfig struct {
	Format string `yaml:"format"` // "md", "html", "term"
	Style  string `yaml:"style"`  // CSS file path for html output (empty = built-in)
}

// MermaidConfig configures diagram fence handling.
type MermaidConfig struct {
	Mode string `yaml:"mode"` // "off", "inline", "render"
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Render:  RenderConfig{Format: FormatMarkdown},
		Mermaid: MermaidConfig{Mode: MermaidOff},
	}
}

// Validate checks enumerated config values.
func (c *Config) Validate() error {
	switch c.Render.Format {
	case FormatMarkdown, FormatHTML, FormatTerm:
	default:
		return fmt.Errorf("%w: %q (must be md, html, or term)", ErrInvalidFormat, c.Render.Format)
	}
	switch c.Mermaid.Mode {
	case MermaidOff, MermaidInline, MermaidRender:
	default:
		return fmt.Errorf("%w: %q (must be off, inline, or render)", ErrInvalidMermaid, c.Mermaid.Mode)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is treated as a file path; otherwise
// it names a file under the user config directory (adr2html/<name>.yaml).
// Returns an error if the file is not found — no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		configPath = filepath.Join(dir, "adr2html", nameOrPath+".yaml")
	}

	if !fileutil.FileExists(configPath) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
