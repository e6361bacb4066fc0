package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONPainter renders reports as a structured JSON document for tool
// integration. Each section collects the fields, tables and list items
// painted under it.
type JSONPainter struct {
	settings Settings
	doc      *Document

	indent       bool
	indentPrefix string
	indentString string
}

// Document is the JSON form of a report.
type Document struct {
	ReportID    string     `json:"report_id,omitempty"`
	Title       string     `json:"title"`
	GeneratedAt time.Time  `json:"generated_at"`
	Institution string     `json:"institution,omitempty"`
	Sections    []*Section `json:"sections"`
}

// Section is one titled part of a Document.
type Section struct {
	Title  string   `json:"title"`
	Fields []Field  `json:"fields,omitempty"`
	Tables []Table  `json:"tables,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// Field is a labelled value. Right is set for side-by-side comparisons.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Right string `json:"right,omitempty"`
}

// Table is a header row with data rows.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// JSONPainterOption configures a JSONPainter.
type JSONPainterOption func(*JSONPainter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONPainterOption {
	return func(p *JSONPainter) {
		p.indent = true
		p.indentPrefix = prefix
		p.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONPainterOption {
	return WithIndent("", "  ")
}

// NewJSONPainter creates a JSONPainter. Output is compact unless an indent
// option is given.
func NewJSONPainter(settings Settings, meta Metadata, opts ...JSONPainterOption) *JSONPainter {
	p := &JSONPainter{settings: settings}
	for _, opt := range opts {
		opt(p)
	}
	p.doc = &Document{ReportID: meta.ReportID}
	return p
}

// Format returns FormatJSON.
func (p *JSONPainter) Format() Format {
	return FormatJSON
}

// Document returns the document built so far.
func (p *JSONPainter) Document() *Document {
	return p.doc
}

// Open resets the document and sets its title.
func (p *JSONPainter) Open(title string) {
	p.doc = &Document{
		ReportID:    p.doc.ReportID,
		Title:       title,
		GeneratedAt: p.settings.now().UTC().Truncate(time.Second),
		Institution: p.settings.Institution,
		Sections:    []*Section{},
	}
}

// current returns the section under construction, creating an untitled one
// if none was started.
func (p *JSONPainter) current() *Section {
	if p.doc.Sections == nil {
		p.Open("")
	}
	if len(p.doc.Sections) == 0 {
		p.doc.Sections = append(p.doc.Sections, &Section{})
	}
	return p.doc.Sections[len(p.doc.Sections)-1]
}

// SectionHeader starts a new section.
func (p *JSONPainter) SectionHeader(text string) {
	if p.doc.Sections == nil {
		p.Open("")
	}
	p.doc.Sections = append(p.doc.Sections, &Section{Title: text})
}

// KeyValue adds a field to the current section.
func (p *JSONPainter) KeyValue(label, value string) {
	p.KeyValues(label, value, "")
}

// KeyValues adds a two-valued field to the current section.
func (p *JSONPainter) KeyValues(label, left, right string) {
	s := p.current()
	s.Fields = append(s.Fields, Field{Label: label, Value: left, Right: right})
}

// Table adds a table to the current section.
func (p *JSONPainter) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	t := Table{
		Headers: append([]string(nil), headers...),
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, padRow(row, len(headers)))
	}
	s := p.current()
	s.Tables = append(s.Tables, t)
}

// List adds items to the current section.
func (p *JSONPainter) List(items []string) {
	s := p.current()
	s.Items = append(s.Items, items...)
}

// WriteTo marshals the document to w followed by a newline.
func (p *JSONPainter) WriteTo(w io.Writer) (int64, error) {
	if p.doc.Sections == nil {
		return 0, ErrNotOpened
	}

	var data []byte
	var err error
	if p.indent {
		data, err = json.MarshalIndent(p.doc, p.indentPrefix, p.indentString)
	} else {
		data, err = json.Marshal(p.doc)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	n, err := w.Write(data)
	return int64(n), err
}

// Save writes the JSON document to filename.
func (p *JSONPainter) Save(filename string) error {
	if p.doc.Sections == nil {
		return ErrNotOpened
	}
	return saveFile(filename, p)
}
