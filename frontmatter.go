package adr2html

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// yamlFormat binds the front matter splitter to the same YAML library used
// for configuration, decoding attributes into an ordered MapSlice so table
// columns keep document order. An empty block decodes to no attributes.
var yamlFormat = frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yaml.Unmarshal(data, v)
})

// FormatFrontmatter extracts a document's YAML front matter and, when
// attributes are present, prepends them to the stripped body as a markdown
// table: one header row of keys, a dashed separator, one value row.
// Embedded newlines in values become <br/> so the table stays on one row.
// Without attributes the body passes through, front matter still removed.
func FormatFrontmatter(req Request) (string, error) {
	var attrs yaml.MapSlice
	body, err := frontmatter.Parse(strings.NewReader(req.Content), &attrs, yamlFormat)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	if len(attrs) == 0 {
		return string(body), nil
	}
	return attributeTable(attrs) + "\n\n" + string(body), nil
}

// attributeTable renders front matter attributes as a single-value-row
// markdown table.
func attributeTable(attrs yaml.MapSlice) string {
	var header, separator, values strings.Builder
	for _, item := range attrs {
		header.WriteString("|")
		header.WriteString(fmt.Sprintf("%v", item.Key))
		separator.WriteString("|---")
		values.WriteString("|")
		values.WriteString(formatAttribute(item.Value))
	}
	header.WriteString("|")
	separator.WriteString("|")
	values.WriteString("|")
	return header.String() + "\n" + separator.String() + "\n" + values.String()
}

// formatAttribute stringifies a front matter value for a table cell.
// Lists join with commas; embedded newlines become <br/> markup.
func formatAttribute(value any) string {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = fmt.Sprintf("%v", elem)
		}
		s = strings.Join(parts, ",")
	case nil:
		s = ""
	default:
		s = fmt.Sprintf("%v", v)
	}
	return strings.ReplaceAll(s, "\n", "<br/>")
}
