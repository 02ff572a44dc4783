package output

import (
	"strings"

	"github.com/pkg/errors"
)

// Format is an output rendering of a scraped page.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatRaw      Format = "raw"

	// FormatAll is the keyword that expands to every concrete format.
	FormatAll = "all"
)

// All returns every concrete output format.
func All() []Format {
	return []Format{FormatMarkdown, FormatJSON, FormatHTML, FormatRaw}
}

// Ext returns the filename suffix for the format.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatHTML:
		return ".html"
	case FormatRaw:
		return "_raw.json"
	default:
		return ""
	}
}

// ParseFormats normalizes a list of format names: names are lowercased,
// trimmed and de-duplicated, and "all" (or an empty list) expands to every
// format. Unknown names are rejected, so callers can validate requested
// formats before any page is fetched.
func ParseFormats(names []string) ([]Format, error) {
	formats := make([]Format, 0, len(names))
	seen := make(map[Format]bool)
	all := false

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == FormatAll {
			all = true
			continue
		}

		format := Format(name)
		switch format {
		case FormatMarkdown, FormatJSON, FormatHTML, FormatRaw:
		default:
			return nil, errors.Errorf("unknown output format: %q (valid formats: markdown, json, html, raw, all)", name)
		}

		if seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}

	if all || len(formats) == 0 {
		return All(), nil
	}

	return formats, nil
}
