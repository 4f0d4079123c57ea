// Package resolver turns raw playback names into classified series: it
// folds episode names to series names, looks each series up in the catalog
// and assigns the tv or anime category.
package resolver

import "strings"

// seriesSeparator splits an episode name like
// "Series Name - S01E02 - Episode Title" from its series prefix.
const seriesSeparator = " - "

// ExtractSeriesName returns the series portion of an episode name. Names
// without a separator pass through trimmed, so the function is idempotent.
func ExtractSeriesName(itemName string) string {
	if name, _, found := strings.Cut(itemName, seriesSeparator); found {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(itemName)
}
