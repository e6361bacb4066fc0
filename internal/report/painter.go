package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Painter is the set of primitives report builders compose documents from.
//
// Primitives never fail: absent values are passed in as placeholders and
// drawn as-is. Only exporting the finished document can return an error.
type Painter interface {
	// Open starts a new document and paints the title banner with a
	// generation timestamp.
	Open(title string)

	// SectionHeader paints a heading band.
	SectionHeader(text string)

	// KeyValue writes a label/value pair on one line.
	KeyValue(label, value string)

	// KeyValues writes a label with two side-by-side values. The right value
	// is omitted when empty.
	KeyValues(label, left, right string)

	// Table paints a header row followed by the data rows. Every row is
	// fitted to len(headers): short rows are padded with empty cells and
	// cells beyond the header count are dropped.
	Table(headers []string, rows [][]string)

	// List paints one bulleted line per item.
	List(items []string)

	// WriteTo serialises the document.
	io.WriterTo

	// Save finalizes the document and writes it to filename.
	Save(filename string) error

	// Format identifies the output format of the painter.
	Format() Format
}

// Metadata describes one generated document.
type Metadata struct {
	// ReportID uniquely identifies the document in the history ledger.
	ReportID string

	// Subject is a one-line description embedded where the format allows.
	Subject string
}

// Settings holds the presentation options shared by all painters.
type Settings struct {
	Layout      Layout
	Theme       Theme
	Institution string
	Author      string

	// Clock returns the generation timestamp. Defaults to time.Now.
	Clock func() time.Time

	// Color enables ANSI colour in TextPainter output.
	Color bool
}

// DefaultSettings returns A4 layout with the default theme.
func DefaultSettings() Settings {
	return Settings{
		Layout: A4Layout(),
		Theme:  DefaultTheme(),
		Clock:  time.Now,
	}
}

func (s Settings) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Factory creates a fresh painter for one document.
type Factory func(meta Metadata) Painter

// NewFactory returns a Factory producing painters of the given format.
func NewFactory(format Format, settings Settings) (Factory, error) {
	switch format {
	case FormatPDF:
		return func(meta Metadata) Painter {
			return NewPDFPainter(WithSettings(settings), WithMetadata(meta))
		}, nil
	case FormatMarkdown:
		return func(meta Metadata) Painter {
			return NewMarkdownPainter(settings, meta)
		}, nil
	case FormatJSON:
		return func(meta Metadata) Painter {
			return NewJSONPainter(settings, meta, WithPrettyPrint())
		}, nil
	case FormatText:
		return func(_ Metadata) Painter {
			return NewTextPainter(settings)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// timestampLayout is used for the "Generated on" line of every format.
const timestampLayout = "2006-01-02 15:04:05"

// generatedOn returns the banner subtitle.
func generatedOn(t time.Time) string {
	return "Generated on: " + t.Format(timestampLayout)
}

// saveFile writes the document produced by w to path.
// Parent directories are created as needed. The file is created with 0600
// permissions because reports carry personal academic data.
func saveFile(path string, w io.WriterTo) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Output path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeString writes s to w and reports the count as int64.
func writeString(w io.Writer, s string) (int64, error) {
	n, err := io.WriteString(w, s)
	return int64(n), err
}

// cell returns row[i], or the empty string for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// padRow returns row padded or cut to exactly n cells.
func padRow(row []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = cell(row, i)
	}
	return out
}

// oneLine collapses newlines so that a cell never spans several lines.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
