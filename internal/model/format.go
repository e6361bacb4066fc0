package model

import (
	"fmt"
	"strconv"
)

// Placeholder is rendered wherever a value is absent.
const Placeholder = "-"

// FormatMark renders a raw mark with no trailing zeros, e.g. "45" or "45.5".
func FormatMark(m *float64) string {
	if m == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*m, 'f', -1, 64)
}

// FormatPercent renders a percentage with two decimals and a percent sign.
func FormatPercent(p *float64) string {
	if p == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.2f%%", *p)
}

// FormatFixed renders v with the given number of decimals. Negative zero is
// printed without its sign so that equal values show as "0.00".
func FormatFixed(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if len(s) > 1 && s[0] == '-' {
		for _, c := range s[1:] {
			if c != '0' && c != '.' {
				return s
			}
		}
		return s[1:]
	}
	return s
}
