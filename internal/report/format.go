package report

import (
	"fmt"
	"strings"
)

// Format is an output format for generated reports.
type Format string

// Supported formats.
const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatText:
		return ".txt"
	default:
		return ""
	}
}

// ParseFormat parses a format name. "markdown" and "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseFormats parses a list of format names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	formats := make([]Format, 0, len(names))
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}
