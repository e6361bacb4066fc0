package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// ruleWidth is the width of the horizontal rules in text output.
const ruleWidth = 70

// TextPainter renders reports as plain text for terminal display.
// ANSI colour is used for headings only when Settings.Color is set.
type TextPainter struct {
	settings Settings
	sb       strings.Builder
	opened   bool

	title   *color.Color
	section *color.Color
	label   *color.Color
}

// NewTextPainter creates a TextPainter.
func NewTextPainter(settings Settings) *TextPainter {
	p := &TextPainter{
		settings: settings,
		title:    color.New(color.FgHiWhite, color.Bold),
		section:  color.New(color.FgCyan, color.Bold),
		label:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.title, p.section, p.label} {
		if settings.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Format returns FormatText.
func (p *TextPainter) Format() Format {
	return FormatText
}

// Open writes the title block.
func (p *TextPainter) Open(title string) {
	p.sb.Reset()
	p.opened = true

	p.sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	p.sb.WriteString(p.title.Sprint(centerText(strings.ToUpper(title), ruleWidth)) + "\n")
	p.sb.WriteString(centerText(generatedOn(p.settings.now()), ruleWidth) + "\n")
	if p.settings.Institution != "" {
		p.sb.WriteString(centerText(p.settings.Institution, ruleWidth) + "\n")
	}
	p.sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
}

func (p *TextPainter) ensureOpen() {
	if !p.opened {
		p.Open("")
	}
}

// SectionHeader writes an underlined heading.
func (p *TextPainter) SectionHeader(text string) {
	p.ensureOpen()
	p.sb.WriteString("\n" + p.section.Sprint(strings.ToUpper(text)) + "\n")
	p.sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
}

// KeyValue writes an aligned label/value line.
func (p *TextPainter) KeyValue(label, value string) {
	p.KeyValues(label, value, "")
}

// KeyValues writes a label with one or two aligned values.
func (p *TextPainter) KeyValues(label, left, right string) {
	p.ensureOpen()
	name := p.label.Sprint(fmt.Sprintf("%-24s", label+":"))
	if right == "" {
		fmt.Fprintf(&p.sb, "%s %s\n", name, left)
		return
	}
	fmt.Fprintf(&p.sb, "%s %-22s %s\n", name, left, right)
}

// Table renders a bordered table.
func (p *TextPainter) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	p.ensureOpen()

	hs := make([]any, len(headers))
	for i, h := range headers {
		hs[i] = h
	}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, padRow(row, len(headers)))
	}

	table := tablewriter.NewWriter(&p.sb)
	table.Header(hs...)
	if err := table.Bulk(body); err != nil {
		p.fallbackTable(headers, body)
		return
	}
	if err := table.Render(); err != nil {
		p.fallbackTable(headers, body)
	}
}

// fallbackTable writes tab-separated rows when the table renderer fails.
func (p *TextPainter) fallbackTable(headers []string, rows [][]string) {
	p.sb.WriteString(strings.Join(headers, "\t") + "\n")
	for _, row := range rows {
		p.sb.WriteString(strings.Join(row, "\t") + "\n")
	}
}

// List writes one bulleted line per item.
func (p *TextPainter) List(items []string) {
	p.ensureOpen()
	for _, item := range items {
		p.sb.WriteString("  " + bullet + " " + item + "\n")
	}
}

// String returns the text rendered so far.
func (p *TextPainter) String() string {
	return p.sb.String()
}

// WriteTo writes the text document to w.
func (p *TextPainter) WriteTo(w io.Writer) (int64, error) {
	if !p.opened {
		return 0, ErrNotOpened
	}
	return writeString(w, p.sb.String())
}

// Save writes the text document to filename.
func (p *TextPainter) Save(filename string) error {
	if !p.opened {
		return ErrNotOpened
	}
	return saveFile(filename, p)
}

// centerText pads s with leading spaces to centre it within width.
func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
