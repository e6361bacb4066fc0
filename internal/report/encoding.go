package report

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// bullet prefixes list items.
const bullet = "•"

// toWinAnsi transcodes UTF-8 text to Windows-1252, the encoding of the
// standard PDF core fonts. Runes outside the code page become '?'.
func toWinAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			sb.WriteByte(byte(r))
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
