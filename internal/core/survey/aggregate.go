package survey

import (
	"cmp"
	"maps"
	"slices"
)

// TopN is the length of every truncated ranking
const TopN = 10

// Count is one ranked value
type Count struct {
	Label string `json:"label" example:"JavaScript"`
	Count int    `json:"count" example:"500"`
}

// countryDisplayNames shortens the two longest country names for bar labels. Only the
// truncated ranking uses it; the map keeps full names so they match geographic names
var countryDisplayNames = map[string]string{
	"United States of America":                             "USA",
	"United Kingdom of Great Britain and Northern Ireland": "UK",
}

// CountryDisplayNames returns a copy of the bar label replacements for country names
func CountryDisplayNames() map[string]string { return maps.Clone(countryDisplayNames) }

// Query describes one aggregate over a View
type Query struct {
	Column Column
	Split  bool              // explode ";" lists before counting
	Limit  int               // 0 keeps every value
	Remap  map[string]string // display labels applied after truncation
}

// Aggregate counts, ranks, truncates and relabels in that order
func Aggregate(v View, q Query) []Count {
	out := Top(Frequencies(v, q.Column, q.Split), q.Limit)
	if len(q.Remap) > 0 {
		out = Remap(out, q.Remap)
	}
	return out
}

// Frequencies counts every value of col over v, highest count first. Ties keep the order
// in which values were first seen. Missing cells are skipped, not counted as "".
// Employment only counts the items the view's employment filter accepted
func Frequencies(v View, col Column, split bool) []Count {
	var pairs []Pair
	if col == ColEmployment && split {
		pairs = make([]Pair, 0, v.Len())
		for _, i := range v.rows {
			for _, tok := range v.employmentTokens(i) {
				pairs = append(pairs, Pair{Row: i, Value: tok})
			}
		}
	} else {
		pairs = Explode(v, col, split)
	}

	pos := map[string]int{}
	out := []Count{}
	for _, p := range pairs {
		if i, ok := pos[p.Value]; ok {
			out[i].Count++
			continue
		}
		pos[p.Value] = len(out)
		out = append(out, Count{Label: p.Value, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b Count) int { return cmp.Compare(b.Count, a.Count) })
	return out
}

// Top returns the first n counts. n <= 0 keeps everything
func Top(counts []Count, n int) []Count {
	if n <= 0 || len(counts) <= n {
		return counts
	}
	return counts[:n:n]
}

// Remap returns a copy of counts with labels replaced through names
func Remap(counts []Count, names map[string]string) []Count {
	out := make([]Count, len(counts))
	for i, c := range counts {
		if to, ok := names[c.Label]; ok {
			c.Label = to
		}
		out[i] = c
	}
	return out
}

// Total sums the counts
func Total(counts []Count) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}
