// Package report paints academic reports.
//
// A Painter exposes the drawing primitives a report is composed of: a title
// banner, section headers, key/value rows, tables and bulleted lists. Each
// painter keeps its own vertical cursor and is owned by exactly one build.
//
// Available painters:
//   - PDFPainter: A4/Letter pages drawn through github.com/go-pdf/fpdf
//   - MarkdownPainter: GitHub Flavored Markdown for sharing and diffs
//   - JSONPainter: a structured document for tool integration
//   - TextPainter: plain text with ASCII tables for terminal preview
//
// The Builder composes the primitives into the individual student report and
// the two-student comparison report, then exports the document.
package report
