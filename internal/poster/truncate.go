package poster

import (
	"golang.org/x/text/width"
)

// Truncate shortens s to at most budget visible characters, appending
// marker when anything was cut. Budgets count characters, not bytes, so
// CJK titles truncate at the same visual point as Latin ones.
func Truncate(s string, budget int, marker string) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + marker
}

// DisplayCells returns the approximate display width of s in half-width
// character cells. East Asian wide and fullwidth runes occupy two cells.
func DisplayCells(s string) int {
	cells := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cells += 2
		default:
			cells++
		}
	}
	return cells
}

// FitCells tightens a label to at most cells display cells, appending
// marker when anything was cut. Used where a character budget alone can
// still overflow a narrow pixel area, as a fullwidth character is twice
// as wide as a Latin one.
func FitCells(s string, cells int, marker string) string {
	if DisplayCells(s) <= cells {
		return s
	}
	runes := []rune(s)
	used := 0
	for i, r := range runes {
		w := 1
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w = 2
		}
		if used+w > cells {
			return string(runes[:i]) + marker
		}
		used += w
	}
	return s
}
