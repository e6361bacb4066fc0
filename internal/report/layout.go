package report

import "strings"

// Layout holds page geometry in millimetres.
type Layout struct {
	// PageSize is the fpdf page size name ("A4" or "Letter").
	PageSize string

	PageWidth  float64
	PageHeight float64

	// Margin applies to the left, right and bottom edges, and is the top
	// position of the cursor after a page break.
	Margin float64

	// BannerHeight is the height of the title band on the first page.
	BannerHeight float64

	// FontFamily is the core font used for all text.
	FontFamily string
}

// Vertical metrics of the primitives.
const (
	bannerTitleY     = 20.0
	bannerSubtitleY  = 30.0
	bannerGap        = 10.0
	sectionReserve   = 15.0
	sectionBand      = 8.0
	sectionAdvance   = 12.0
	sectionTextInset = 3.0
	sectionBaseline  = 6.0
	lineReserve      = 8.0
	lineHeight       = 7.0
	valueOffset      = 50.0
	rightValueOffset = 130.0
	tableReserve     = 30.0
	rowHeight        = 7.0
	rowReserve       = 8.0
	cellInset        = 2.0
	cellBaseline     = 5.0
	tableGap         = 5.0
	listLineHeight   = 6.0
	listIndent       = 5.0
)

// Font sizes in points.
const (
	titleFontSize    = 24.0
	subtitleFontSize = 10.0
	sectionFontSize  = 13.0
	labelFontSize    = 11.0
	headerFontSize   = 10.0
	rowFontSize      = 9.0
	listFontSize     = 10.0
)

// A4Layout returns the default A4 portrait layout.
func A4Layout() Layout {
	return Layout{
		PageSize:     "A4",
		PageWidth:    210,
		PageHeight:   297,
		Margin:       15,
		BannerHeight: 35,
		FontFamily:   "Helvetica",
	}
}

// LetterLayout returns a US Letter portrait layout.
func LetterLayout() Layout {
	l := A4Layout()
	l.PageSize = "Letter"
	l.PageWidth = 215.9
	l.PageHeight = 279.4
	return l
}

// LayoutFor returns the layout for a page size name.
func LayoutFor(pageSize string) (Layout, error) {
	switch strings.ToLower(pageSize) {
	case "", "a4":
		return A4Layout(), nil
	case "letter":
		return LetterLayout(), nil
	default:
		return Layout{}, ErrUnknownPageSize
	}
}

// ContentWidth is the page width between the side margins.
func (l Layout) ContentWidth() float64 {
	return l.PageWidth - 2*l.Margin
}

// PrintableBottom is the lowest y position content may reach.
func (l Layout) PrintableBottom() float64 {
	return l.PageHeight - l.Margin
}

// Color is an RGB triple with components in 0..255.
type Color struct {
	R, G, B int
}

// Theme holds the colours of the PDF painter.
type Theme struct {
	Banner  Color
	Section Color
	Stripe  Color
	Border  Color
}

// DefaultTheme returns the blue banner theme.
func DefaultTheme() Theme {
	return Theme{
		Banner:  Color{41, 128, 185},
		Section: Color{52, 152, 219},
		Stripe:  Color{240, 240, 240},
		Border:  Color{0, 0, 0},
	}
}

var (
	white = Color{255, 255, 255}
	black = Color{0, 0, 0}
)
