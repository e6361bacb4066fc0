package report

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Canvas is the subset of the fpdf drawing API used by PDFPainter.
// *fpdf.Fpdf satisfies it.
type Canvas interface {
	AddPage()
	SetTitle(title string, isUTF8 bool)
	SetFillColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetFont(family, style string, size float64)
	Rect(x, y, w, h float64, style string)
	Text(x, y float64, text string)
	GetStringWidth(s string) float64
	Output(w io.Writer) error
}

// CanvasFactory creates the canvas for a new document.
type CanvasFactory func(layout Layout, meta Metadata, created time.Time) Canvas

// creator is written into the PDF Creator field.
const creator = "reportcard"

// newFPDFCanvas creates an fpdf document for the layout.
// Automatic page breaks are disabled: PDFPainter paginates itself.
func newFPDFCanvas(layout Layout, meta Metadata, created time.Time) Canvas {
	pdf := fpdf.New("P", "mm", layout.PageSize, "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, layout.Margin)
	pdf.SetCreator(creator, true)
	pdf.SetCreationDate(created)
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if meta.ReportID != "" {
		pdf.SetKeywords("report-id:"+meta.ReportID, true)
	}
	return pdf
}

// PDFPainter draws reports onto PDF pages.
//
// It keeps a vertical cursor y (millimetres from the top edge). Every
// primitive reserves the space it needs with EnsureSpace, draws at the
// cursor, then advances it. A PDFPainter must not be shared between
// goroutines.
type PDFPainter struct {
	settings  Settings
	meta      Metadata
	newCanvas CanvasFactory

	canvas Canvas
	y      float64
	pages  int
}

// PDFOption configures a PDFPainter.
type PDFOption func(*PDFPainter)

// WithSettings sets layout, theme, author and clock.
func WithSettings(s Settings) PDFOption {
	return func(p *PDFPainter) {
		p.settings = s
	}
}

// WithMetadata sets the document metadata.
func WithMetadata(meta Metadata) PDFOption {
	return func(p *PDFPainter) {
		p.meta = meta
	}
}

// WithCanvasFactory replaces the fpdf canvas, typically with a recorder in tests.
func WithCanvasFactory(f CanvasFactory) PDFOption {
	return func(p *PDFPainter) {
		p.newCanvas = f
	}
}

// NewPDFPainter creates a PDFPainter with default A4 settings.
func NewPDFPainter(opts ...PDFOption) *PDFPainter {
	p := &PDFPainter{
		settings:  DefaultSettings(),
		newCanvas: newFPDFCanvas,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format returns FormatPDF.
func (p *PDFPainter) Format() Format {
	return FormatPDF
}

// Y returns the current cursor position.
func (p *PDFPainter) Y() float64 {
	return p.y
}

// Pages returns the number of pages started so far.
func (p *PDFPainter) Pages() int {
	return p.pages
}

// Open starts a new document and paints the banner: a full-width filled band
// with the centred title and the generation timestamp below it. The cursor is
// placed under the banner.
func (p *PDFPainter) Open(title string) {
	l := p.settings.Layout
	created := p.settings.now()

	p.canvas = p.newCanvas(l, p.meta, created)
	p.pages = 0
	if p.settings.Author != "" || p.settings.Institution != "" {
		p.setAuthor()
	}
	p.canvas.SetTitle(title, true)
	p.addPage()

	p.fill(p.settings.Theme.Banner)
	p.canvas.Rect(0, 0, l.PageWidth, l.BannerHeight, "F")

	p.textColor(white)
	p.canvas.SetFont(l.FontFamily, "B", titleFontSize)
	p.centered(title, bannerTitleY)

	p.canvas.SetFont(l.FontFamily, "", subtitleFontSize)
	p.centered(generatedOn(created), bannerSubtitleY)

	p.textColor(black)
	p.y = l.BannerHeight + bannerGap
}

// setAuthor records the author in the document information when the canvas
// supports it.
func (p *PDFPainter) setAuthor() {
	type authorSetter interface {
		SetAuthor(author string, isUTF8 bool)
	}
	a, ok := p.canvas.(authorSetter)
	if !ok {
		return
	}
	author := p.settings.Author
	if author == "" {
		author = p.settings.Institution
	}
	a.SetAuthor(author, true)
}

// ensureOpen opens an untitled document if Open was never called.
func (p *PDFPainter) ensureOpen() {
	if p.canvas == nil {
		p.Open("")
	}
}

func (p *PDFPainter) addPage() {
	p.canvas.AddPage()
	p.pages++
}

// EnsureSpace starts a new page when a block of the given height would run
// past the printable area, resetting the cursor to the top margin. Otherwise
// the cursor is left unchanged.
func (p *PDFPainter) EnsureSpace(required float64) {
	p.ensureOpen()
	l := p.settings.Layout
	if p.y+required > l.PrintableBottom() {
		p.addPage()
		p.y = l.Margin
	}
}

// SectionHeader paints a filled band across the content width with the
// heading in bold white.
func (p *PDFPainter) SectionHeader(text string) {
	p.EnsureSpace(sectionReserve)
	l := p.settings.Layout

	p.fill(p.settings.Theme.Section)
	p.canvas.Rect(l.Margin, p.y, l.ContentWidth(), sectionBand, "F")

	p.textColor(white)
	p.canvas.SetFont(l.FontFamily, "B", sectionFontSize)
	p.text(l.Margin+sectionTextInset, p.y+sectionBaseline, text)

	p.y += sectionAdvance
	p.textColor(black)
	p.canvas.SetFont(l.FontFamily, "", sectionFontSize)
}

// KeyValue writes "label:" in bold followed by the value at a fixed offset.
func (p *PDFPainter) KeyValue(label, value string) {
	p.KeyValues(label, value, "")
}

// KeyValues writes a label and two values; the right value sits at a fixed
// right-hand offset and is skipped when empty.
func (p *PDFPainter) KeyValues(label, left, right string) {
	p.EnsureSpace(lineReserve)
	l := p.settings.Layout

	p.canvas.SetFont(l.FontFamily, "B", labelFontSize)
	p.text(l.Margin, p.y, label+":")

	p.canvas.SetFont(l.FontFamily, "", labelFontSize)
	p.text(l.Margin+valueOffset, p.y, left)
	if right != "" {
		p.text(l.Margin+rightValueOffset, p.y, right)
	}

	p.y += lineHeight
}

// Table paints a table with equal column widths. The header row is filled
// with the section colour; data rows are striped on even indices and each
// gets its own border. Space is checked before every row, so a table may
// continue on the next page.
func (p *PDFPainter) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	p.EnsureSpace(tableReserve)
	l := p.settings.Layout
	width := l.ContentWidth()
	colWidth := width / float64(len(headers))

	p.fill(p.settings.Theme.Section)
	p.draw(p.settings.Theme.Border)
	p.canvas.Rect(l.Margin, p.y, width, rowHeight, "FD")
	p.textColor(white)
	p.canvas.SetFont(l.FontFamily, "B", headerFontSize)
	p.paintCells(headers, colWidth)
	p.y += rowHeight

	p.textColor(black)
	p.canvas.SetFont(l.FontFamily, "", rowFontSize)
	for idx, row := range rows {
		p.EnsureSpace(rowReserve)

		if idx%2 == 0 {
			p.fill(p.settings.Theme.Stripe)
			p.canvas.Rect(l.Margin, p.y, width, rowHeight, "F")
		}
		p.paintCells(padRow(row, len(headers)), colWidth)
		p.canvas.Rect(l.Margin, p.y, width, rowHeight, "D")

		p.y += rowHeight
	}

	p.y += tableGap
}

// paintCells writes one row of cell text at the cursor.
func (p *PDFPainter) paintCells(cells []string, colWidth float64) {
	l := p.settings.Layout
	for i, c := range cells {
		x := l.Margin + float64(i)*colWidth + cellInset
		p.text(x, p.y+cellBaseline, p.clip(oneLine(c), colWidth-2*cellInset))
	}
}

// List paints each item on its own line behind a bullet.
func (p *PDFPainter) List(items []string) {
	p.EnsureSpace(float64(len(items)) * listLineHeight)
	l := p.settings.Layout

	p.canvas.SetFont(l.FontFamily, "", listFontSize)
	for _, item := range items {
		p.EnsureSpace(listLineHeight)
		p.text(l.Margin+listIndent, p.y, bullet+" "+item)
		p.y += listLineHeight
	}
}

// WriteTo writes the PDF document to w.
func (p *PDFPainter) WriteTo(w io.Writer) (int64, error) {
	if p.canvas == nil {
		return 0, ErrNotOpened
	}
	cw := &countingWriter{w: w}
	err := p.canvas.Output(cw)
	return cw.n, err
}

// Save writes the PDF document to filename.
func (p *PDFPainter) Save(filename string) error {
	if p.canvas == nil {
		return ErrNotOpened
	}
	return saveFile(filename, p)
}

// text draws UTF-8 text transcoded for the core fonts.
func (p *PDFPainter) text(x, y float64, s string) {
	p.canvas.Text(x, y, toWinAnsi(s))
}

// centered draws text horizontally centred on the page.
func (p *PDFPainter) centered(s string, y float64) {
	encoded := toWinAnsi(s)
	x := (p.settings.Layout.PageWidth - p.canvas.GetStringWidth(encoded)) / 2
	p.canvas.Text(x, y, encoded)
}

// clip shortens s with an ellipsis until it fits into width.
func (p *PDFPainter) clip(s string, width float64) string {
	if p.canvas.GetStringWidth(toWinAnsi(s)) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if p.canvas.GetStringWidth(toWinAnsi(candidate)) <= width {
			return candidate
		}
	}
	return ""
}

func (p *PDFPainter) fill(c Color) {
	p.canvas.SetFillColor(c.R, c.G, c.B)
}

func (p *PDFPainter) draw(c Color) {
	p.canvas.SetDrawColor(c.R, c.G, c.B)
}

func (p *PDFPainter) textColor(c Color) {
	p.canvas.SetTextColor(c.R, c.G, c.B)
}
