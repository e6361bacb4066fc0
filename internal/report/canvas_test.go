package report

import (
	"io"
	"time"
)

// call is one recorded canvas operation.
type call struct {
	op    string
	x, y  float64
	w, h  float64
	style string
	text  string
	fill  Color
}

// recordingCanvas records drawing operations instead of producing a PDF.
type recordingCanvas struct {
	calls []call
	fill  Color
	pages int
	title string
	out   string
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{out: "%PDF-recorded"}
}

// factory returns a CanvasFactory that always hands out c.
func (c *recordingCanvas) factory() CanvasFactory {
	return func(Layout, Metadata, time.Time) Canvas {
		return c
	}
}

func (c *recordingCanvas) AddPage() {
	c.pages++
	c.calls = append(c.calls, call{op: "AddPage"})
}

func (c *recordingCanvas) SetTitle(title string, _ bool) {
	c.title = title
}

func (c *recordingCanvas) SetFillColor(r, g, b int) {
	c.fill = Color{R: r, G: g, B: b}
}

func (c *recordingCanvas) SetTextColor(int, int, int) {}

func (c *recordingCanvas) SetDrawColor(int, int, int) {}

func (c *recordingCanvas) SetFont(string, string, float64) {}

func (c *recordingCanvas) Rect(x, y, w, h float64, style string) {
	c.calls = append(c.calls, call{op: "Rect", x: x, y: y, w: w, h: h, style: style, fill: c.fill})
}

func (c *recordingCanvas) Text(x, y float64, text string) {
	c.calls = append(c.calls, call{op: "Text", x: x, y: y, text: text})
}

// GetStringWidth pretends every byte is 2mm wide.
func (c *recordingCanvas) GetStringWidth(s string) float64 {
	return float64(len(s)) * 2
}

func (c *recordingCanvas) Output(w io.Writer) error {
	_, err := io.WriteString(w, c.out)
	return err
}

// rects returns the recorded rectangles drawn with the given style.
func (c *recordingCanvas) rects(style string) []call {
	var out []call
	for _, cl := range c.calls {
		if cl.op == "Rect" && cl.style == style {
			out = append(out, cl)
		}
	}
	return out
}

// texts returns the recorded text strings in drawing order.
func (c *recordingCanvas) texts() []string {
	var out []string
	for _, cl := range c.calls {
		if cl.op == "Text" {
			out = append(out, cl.text)
		}
	}
	return out
}

// fixedClock returns a clock frozen at 2024-03-01 09:30:00 UTC.
func fixedClock() func() time.Time {
	t := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Clock = fixedClock()
	return s
}
