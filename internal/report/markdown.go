package report

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"
)

// MarkdownPainter renders reports as GitHub-flavoured Markdown.
//
// Consecutive key/value lines are gathered into a two or three column
// table that is emitted when the next primitive starts or the document is
// exported.
type MarkdownPainter struct {
	settings Settings
	meta     Metadata
	md       *markdown.Markdown

	kvRows [][]string
	kvWide bool

	finalized bool
}

// NewMarkdownPainter creates a MarkdownPainter.
func NewMarkdownPainter(settings Settings, meta Metadata) *MarkdownPainter {
	return &MarkdownPainter{
		settings: settings,
		meta:     meta,
	}
}

// Format returns FormatMarkdown.
func (p *MarkdownPainter) Format() Format {
	return FormatMarkdown
}

// Open starts the document with a level-one heading.
func (p *MarkdownPainter) Open(title string) {
	p.md = markdown.NewMarkdown(io.Discard)
	p.kvRows = nil
	p.kvWide = false
	p.finalized = false

	p.md.H1(title)
	p.md.PlainText("")
	p.md.PlainText("_" + generatedOn(p.settings.now()) + "_")
	if p.settings.Institution != "" {
		p.md.PlainText("")
		p.md.PlainTextf("**%s**", p.settings.Institution)
	}
	p.md.PlainText("")
}

func (p *MarkdownPainter) ensureOpen() {
	if p.md == nil {
		p.Open("")
	}
}

// SectionHeader writes a level-two heading.
func (p *MarkdownPainter) SectionHeader(text string) {
	p.ensureOpen()
	p.flushKeyValues()
	p.md.H2(text)
	p.md.PlainText("")
}

// KeyValue queues a two-column field row.
func (p *MarkdownPainter) KeyValue(label, value string) {
	p.KeyValues(label, value, "")
}

// KeyValues queues a field row with one or two values.
func (p *MarkdownPainter) KeyValues(label, left, right string) {
	p.ensureOpen()
	if right != "" {
		p.kvWide = true
	}
	p.kvRows = append(p.kvRows, []string{escapeCell(label), escapeCell(left), escapeCell(right)})
}

// flushKeyValues emits the queued field rows as one table.
func (p *MarkdownPainter) flushKeyValues() {
	if len(p.kvRows) == 0 {
		return
	}

	header := []string{"Field", "Value"}
	if p.kvWide {
		header = append(header, "Value")
	}
	rows := make([][]string, 0, len(p.kvRows))
	for _, r := range p.kvRows {
		rows = append(rows, r[:len(header)])
	}

	p.md.Table(markdown.TableSet{Header: header, Rows: rows})
	p.md.PlainText("")

	p.kvRows = nil
	p.kvWide = false
}

// Table writes a Markdown table.
func (p *MarkdownPainter) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	p.ensureOpen()
	p.flushKeyValues()

	hs := make([]string, len(headers))
	for i, h := range headers {
		hs[i] = escapeCell(h)
	}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := padRow(row, len(headers))
		for i := range cells {
			cells[i] = escapeCell(cells[i])
		}
		body = append(body, cells)
	}

	p.md.Table(markdown.TableSet{Header: hs, Rows: body})
	p.md.PlainText("")
}

// List writes a bullet list.
func (p *MarkdownPainter) List(items []string) {
	p.ensureOpen()
	p.flushKeyValues()
	if len(items) == 0 {
		return
	}
	p.md.BulletList(items...)
	p.md.PlainText("")
}

// finalize flushes pending rows and appends the footer exactly once.
func (p *MarkdownPainter) finalize() {
	if p.finalized {
		return
	}
	p.flushKeyValues()
	p.md.HorizontalRule()
	p.md.PlainText("")
	if p.meta.ReportID != "" {
		p.md.PlainTextf("Report ID: `%s`", p.meta.ReportID)
	}
	p.finalized = true
}

// WriteTo writes the Markdown document to w.
func (p *MarkdownPainter) WriteTo(w io.Writer) (int64, error) {
	if p.md == nil {
		return 0, ErrNotOpened
	}
	p.finalize()
	return writeString(w, p.md.String())
}

// Save writes the Markdown document to filename.
func (p *MarkdownPainter) Save(filename string) error {
	if p.md == nil {
		return ErrNotOpened
	}
	return saveFile(filename, p)
}

// escapeCell keeps table cells on one line and escapes column separators.
func escapeCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}
