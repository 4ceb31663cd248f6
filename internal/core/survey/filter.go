package survey

import (
	"math"
	"slices"

	perr "devsurvey/internal/platform/errors"
)

// FilterSpec is the conjunction of filter controls. A nil list accepts every value, an
// empty non nil list accepts none. A nil Years accepts the full slider range
type FilterSpec struct {
	Ages       []string `json:"ages"       validate:"omitempty,dive,required" example:"25-34 years old"`
	EdLevels   []string `json:"ed_levels"  validate:"omitempty,dive,required" example:"Some college/university study without earning a degree"`
	Employment []string `json:"employment" validate:"omitempty,dive,required" example:"Employed, full-time"`
	DevStatus  []string `json:"dev_status" validate:"omitempty,dive,required" example:"I am a developer by profession"`
	Years      *Range   `json:"years"`
}

// AcceptAll is the spec every control starts from
func AcceptAll() FilterSpec { return FilterSpec{} }

// Defaults returns the spec with every control set explicitly to the full vocabulary,
// the shape a freshly loaded dashboard shows
func Defaults(v Vocabulary) FilterSpec {
	years := v.Years
	return FilterSpec{
		Ages:       slices.Clone(v.Ages),
		EdLevels:   slices.Clone(v.EdLevels),
		Employment: slices.Clone(v.Employment),
		DevStatus:  slices.Clone(v.DevStatus),
		Years:      &years,
	}
}

// Check rejects values the vocabulary does not offer and years outside the slider
func (s FilterSpec) Check(v Vocabulary) error {
	if err := unknown("ages", s.Ages, v.Ages); err != nil {
		return err
	}
	if err := unknown("ed_levels", s.EdLevels, v.EdLevels); err != nil {
		return err
	}
	if err := unknown("employment", s.Employment, v.Employment); err != nil {
		return err
	}
	if err := unknown("dev_status", s.DevStatus, v.DevStatus); err != nil {
		return err
	}
	if s.Years != nil {
		y := *s.Years
		if math.IsNaN(y.Min) || math.IsNaN(y.Max) || y.Min > y.Max || y.Min < v.Years.Min || y.Max > v.Years.Max {
			return perr.WithField(
				perr.InvalidArgf("years must satisfy %g <= min <= max <= %g", v.Years.Min, v.Years.Max),
				"years",
			)
		}
	}
	return nil
}

func unknown(field string, got, allowed []string) error {
	for _, g := range got {
		if !slices.Contains(allowed, g) {
			return perr.WithField(perr.InvalidArgf("%s: unknown value %q", field, g), field)
		}
	}
	return nil
}

// YearsRange resolves the years control, falling back to the slider bounds
func (s FilterSpec) YearsRange() Range {
	if s.Years == nil {
		return Range{Min: YearsMin, Max: YearsMax}
	}
	return *s.Years
}

// set is a membership test where nil means everything
type set map[string]struct{}

func newSet(xs []string) set {
	if xs == nil {
		return nil
	}
	s := make(set, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}

// has never matches a missing value, even when everything is accepted
func (s set) has(v string) bool {
	if v == "" {
		return false
	}
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// View is a filtered, read only window over a Table. It holds record indices in table
// order and never copies or mutates records
type View struct {
	t          *Table
	rows       []int
	employment set
}

// Filter applies spec to t. A record passes when its Age, EdLevel and MainBranch are
// accepted, at least one of its Employment items is accepted and its YearsCode is a number
// inside the range. Zero matches is an empty View, not an error
func Filter(t *Table, spec FilterSpec) View {
	ages := newSet(spec.Ages)
	levels := newSet(spec.EdLevels)
	employment := newSet(spec.Employment)
	branches := newSet(spec.DevStatus)
	years := spec.YearsRange()

	rows := make([]int, 0, len(t.records))
	for i := range t.records {
		r := &t.records[i]
		if !ages.has(r.Age) || !levels.has(r.EdLevel) || !branches.has(r.MainBranch) {
			continue
		}
		if !r.YearsCode.Valid || !years.Contains(r.YearsCode.Value) {
			continue
		}
		if !anyAccepted(employment, t.employment[i]) {
			continue
		}
		rows = append(rows, i)
	}
	return View{t: t, rows: rows, employment: employment}
}

func anyAccepted(s set, toks []string) bool {
	for _, tok := range toks {
		if s.has(tok) {
			return true
		}
	}
	return false
}

// Len returns the number of records in the view
func (v View) Len() int { return len(v.rows) }

// Table returns the table the view reads from
func (v View) Table() *Table { return v.t }

// Rows returns a copy of the record indices in the view
func (v View) Rows() []int { return slices.Clone(v.rows) }

// Each calls fn for every record in the view in table order
func (v View) Each(fn func(i int, r *Record)) {
	for _, i := range v.rows {
		fn(i, &v.t.records[i])
	}
}

// employmentTokens returns the accepted Employment items of record i, the same rows the
// employment filter let through
func (v View) employmentTokens(i int) []string {
	toks := v.t.employment[i]
	if v.employment == nil {
		return toks
	}
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if v.employment.has(tok) {
			out = append(out, tok)
		}
	}
	return out
}
