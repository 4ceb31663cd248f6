package survey

import "strings"

// Split breaks a multi valued cell into its items. Blank items and missing markers are
// dropped, and an item repeated inside one cell is kept once so each (record, value) pair
// is counted at most once
func Split(cell string) []string {
	if isMissing(cell) {
		return nil
	}
	parts := strings.Split(cell, Separator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if isMissing(p) || contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Explode returns the (record, value) pairs of a column over v in record order.
// When split is false each non missing cell is one value
func Explode(v View, col Column, split bool) []Pair {
	out := make([]Pair, 0, v.Len())
	v.Each(func(i int, r *Record) {
		cell := r.Field(col)
		if !split {
			if !isMissing(cell) {
				out = append(out, Pair{Row: i, Value: cell})
			}
			return
		}
		for _, tok := range Split(cell) {
			out = append(out, Pair{Row: i, Value: tok})
		}
	})
	return out
}

// Pair is one exploded row: the index of the source record and one of its values
type Pair struct {
	Row   int
	Value string
}

// contains is a linear scan, cells rarely hold more than a couple dozen items
func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
