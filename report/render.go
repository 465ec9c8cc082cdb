// Package report renders analysis results for the terminal.
//
// Every report function is a pure renderer: it receives already-extracted
// records or computed aggregates and writes to stdout. Commands own the
// database and the extraction; nothing here queries SQLite.
package report

import (
	"strings"

	"github.com/pterm/pterm"
)

const headerWidth = 60

// Header prints a top-level report banner.
func Header(title string) {
	rule := strings.Repeat("=", headerWidth)
	pterm.Println(pterm.Gray(rule))
	pterm.Println(pterm.LightCyan(strings.ToUpper(title)))
	pterm.Println(pterm.Gray(rule))
}

// Section prints a secondary divider within a report.
func Section(title string) {
	pterm.Println()
	pterm.Println(pterm.LightWhite(title))
	pterm.Println(pterm.Gray(strings.Repeat("-", 40)))
}

// bar renders a proportional histogram bar. maxWidth caps the widest bar;
// zero counts render empty rather than a stub.
func bar(count, max, maxWidth int) string {
	if count <= 0 || max <= 0 {
		return ""
	}
	width := count * maxWidth / max
	if width == 0 {
		width = 1
	}
	return pterm.LightGreen(strings.Repeat("█", width))
}

// truncate shortens s to max runes for fixed-width table columns.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func maxValue(m map[string]int) int {
	max := 0
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}
