package adr2html

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/adrkit/go-adr2html/internal/dateutil"
)

// MADR filename convention: a four-digit serial, a dash, a title, ".md".
var (
	adrFilePattern  = regexp.MustCompile(`^\d{4}-.+\.md$`)
	adrTitlePattern = regexp.MustCompile(`^\d{4}-`)
	firstHeading    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// IsADRFile reports whether name follows the MADR filename convention
// (e.g. 0001-record-architecture-decisions.md).
func IsADRFile(name string) bool {
	return adrFilePattern.MatchString(name)
}

// TitleFromFilename derives a human-readable title from a MADR filename:
// the serial prefix and .md suffix are stripped and dashes become spaces.
func TitleFromFilename(name string) string {
	title := adrTitlePattern.ReplaceAllString(name, "")
	title = strings.TrimSuffix(title, ".md")
	return strings.ReplaceAll(title, "-", " ")
}

// MADR holds the metadata of a single decision record.
type MADR struct {
	Title  string
	Status string
	Date   string // normalized to YYYY-MM-DD when parseable
}

// madrAttributes mirrors the front matter keys a MADR document may carry.
type madrAttributes struct {
	Title  string `yaml:"title"`
	Status string `yaml:"status"`
	Date   any    `yaml:"date"`
}

// ParseMADR extracts title, status, and date from a decision record.
// Front matter attributes win; a missing title falls back to the first
// level-one heading of the body.
func ParseMADR(content string) (MADR, error) {
	var attrs madrAttributes
	body, err := frontmatter.Parse(strings.NewReader(content), &attrs, yamlFormat)
	if err != nil {
		return MADR{}, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}

	record := MADR{
		Title:  attrs.Title,
		Status: attrs.Status,
	}

	if attrs.Date != nil {
		raw := fmt.Sprintf("%v", attrs.Date)
		if normalized, err := dateutil.Normalize(raw); err == nil {
			record.Date = normalized
		} else {
			record.Date = raw
		}
	}

	if record.Title == "" {
		if m := firstHeading.FindStringSubmatch(string(body)); m != nil {
			record.Title = strings.TrimSpace(m[1])
		}
	}

	return record, nil
}
