package survey

import (
	"slices"
	"strings"

	"devsurvey/internal/platform/logger"
)

// Years slider bounds offered to the filter UI
const (
	YearsMin = 0
	YearsMax = 50
)

// Vocabulary is the set of options offered by each filter control
type Vocabulary struct {
	Ages       []string `json:"ages"`
	EdLevels   []string `json:"ed_levels"`
	Employment []string `json:"employment"`
	DevStatus  []string `json:"dev_status"`
	Years      Range    `json:"years"`
}

// Range is an inclusive years of coding interval
type Range struct {
	Min float64 `json:"min" validate:"min=0,max=50" example:"0"`
	Max float64 `json:"max" validate:"min=0,max=50,gtefield=Min" example:"50"`
}

// Contains reports whether y falls inside the range, bounds included
func (r Range) Contains(y float64) bool { return y >= r.Min && y <= r.Max }

// underAgePrefix is what the relocated age bracket is expected to start with
const underAgePrefix = "Under"

func deriveVocabulary(t *Table) Vocabulary {
	ages := distinct(t.records, func(r *Record) string { return r.Age })
	slices.Sort(ages)
	ages = relocateLast(ages)

	levels := distinct(t.records, func(r *Record) string { return r.EdLevel })
	slices.Sort(levels)

	var employment []string
	seen := map[string]struct{}{}
	for _, toks := range t.employment {
		for _, tok := range toks {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			employment = append(employment, tok)
		}
	}
	slices.Sort(employment)

	// developer status keeps file order
	branches := distinct(t.records, func(r *Record) string { return r.MainBranch })

	return Vocabulary{
		Ages:       nonNil(ages),
		EdLevels:   nonNil(levels),
		Employment: nonNil(employment),
		DevStatus:  nonNil(branches),
		Years:      Range{Min: YearsMin, Max: YearsMax},
	}
}

// relocateLast moves the last label to the front. The "Under 18 years old" bracket sorts
// after every "NN-NN years old" label but belongs first. This is positional: a reworded
// bracket would be misplaced, so a label that does not look like the under age bracket
// is logged rather than guessed at
func relocateLast(ages []string) []string {
	if len(ages) < 2 {
		return ages
	}
	last := ages[len(ages)-1]
	if !strings.HasPrefix(last, underAgePrefix) {
		logger.Named("survey").Warn().
			Str("label", last).
			Msg("age bracket moved to front does not look like the under age bracket")
	}
	out := make([]string, 0, len(ages))
	out = append(out, last)
	return append(out, ages[:len(ages)-1]...)
}

// distinct returns the non missing values of get in first seen order
func distinct(recs []Record, get func(*Record) string) []string {
	var out []string
	seen := map[string]struct{}{}
	for i := range recs {
		v := get(&recs[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func (v Vocabulary) clone() Vocabulary {
	return Vocabulary{
		Ages:       slices.Clone(v.Ages),
		EdLevels:   slices.Clone(v.EdLevels),
		Employment: slices.Clone(v.Employment),
		DevStatus:  slices.Clone(v.DevStatus),
		Years:      v.Years,
	}
}
