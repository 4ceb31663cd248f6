// Package survey holds the developer survey table and the filter and aggregate pipeline
// run over it. The table is loaded once and shared read-only; every operation here is a
// pure function of (table, FilterSpec, tab)
package survey

import (
	"strings"

	perr "devsurvey/internal/platform/errors"
)

// Column names a field of the survey file
type Column string

// Columns the loader requires. Names match the header of the source file exactly
const (
	ColAge        Column = "Age"
	ColEdLevel    Column = "EdLevel"
	ColEmployment Column = "Employment"
	ColMainBranch Column = "MainBranch"
	ColYearsCode  Column = "YearsCode"
	ColCountry    Column = "Country"

	ColLanguageHave Column = "LanguageHaveWorkedWith"
	ColLanguageWant Column = "LanguageWantToWorkWith"
	ColDatabaseHave Column = "DatabaseHaveWorkedWith"
	ColDatabaseWant Column = "DatabaseWantToWorkWith"
	ColWebframeHave Column = "WebframeHaveWorkedWith"
	ColWebframeWant Column = "WebframeWantToWorkWith"
	ColCollabHave   Column = "NEWCollabToolsHaveWorkedWith"
	ColCollabWant   Column = "NEWCollabToolsWantToWorkWith"
)

// Separator joins the items of a multi valued cell
const Separator = ";"

// Columns lists every required column in file order
var Columns = []Column{
	ColAge, ColEdLevel, ColEmployment, ColMainBranch, ColYearsCode, ColCountry,
	ColLanguageHave, ColLanguageWant,
	ColDatabaseHave, ColDatabaseWant,
	ColWebframeHave, ColWebframeWant,
	ColCollabHave, ColCollabWant,
}

// ParseColumn resolves a column by name, case sensitive like the file header
func ParseColumn(s string) (Column, error) {
	s = strings.TrimSpace(s)
	for _, c := range Columns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown column %q", s), "column")
}

// Multi reports whether the column holds a ";" joined list
func (c Column) Multi() bool {
	switch c {
	case ColEmployment,
		ColLanguageHave, ColLanguageWant,
		ColDatabaseHave, ColDatabaseWant,
		ColWebframeHave, ColWebframeWant,
		ColCollabHave, ColCollabWant:
		return true
	default:
		return false
	}
}

// Categorical reports whether the column can be counted. YearsCode is numeric and is only
// ever used as a range filter
func (c Column) Categorical() bool { return c != ColYearsCode && c != "" }

// Years is a parsed YearsCode cell. Valid is false for missing or non numeric cells
type Years struct {
	Value float64
	Valid bool
}

// Record is one survey response. Missing cells are stored as ""
type Record struct {
	Age        string
	EdLevel    string
	Employment string
	MainBranch string
	YearsCode  Years
	Country    string

	LanguageHave string
	LanguageWant string
	DatabaseHave string
	DatabaseWant string
	WebframeHave string
	WebframeWant string
	CollabHave   string
	CollabWant   string
}

// Field returns the raw cell for a categorical column
func (r *Record) Field(c Column) string {
	switch c {
	case ColAge:
		return r.Age
	case ColEdLevel:
		return r.EdLevel
	case ColEmployment:
		return r.Employment
	case ColMainBranch:
		return r.MainBranch
	case ColCountry:
		return r.Country
	case ColLanguageHave:
		return r.LanguageHave
	case ColLanguageWant:
		return r.LanguageWant
	case ColDatabaseHave:
		return r.DatabaseHave
	case ColDatabaseWant:
		return r.DatabaseWant
	case ColWebframeHave:
		return r.WebframeHave
	case ColWebframeWant:
		return r.WebframeWant
	case ColCollabHave:
		return r.CollabHave
	case ColCollabWant:
		return r.CollabWant
	default:
		return ""
	}
}

// set stores a cell on the matching field. YearsCode is handled by the loader
func (r *Record) set(c Column, v string) {
	switch c {
	case ColAge:
		r.Age = v
	case ColEdLevel:
		r.EdLevel = v
	case ColEmployment:
		r.Employment = v
	case ColMainBranch:
		r.MainBranch = v
	case ColCountry:
		r.Country = v
	case ColLanguageHave:
		r.LanguageHave = v
	case ColLanguageWant:
		r.LanguageWant = v
	case ColDatabaseHave:
		r.DatabaseHave = v
	case ColDatabaseWant:
		r.DatabaseWant = v
	case ColWebframeHave:
		r.WebframeHave = v
	case ColWebframeWant:
		r.WebframeWant = v
	case ColCollabHave:
		r.CollabHave = v
	case ColCollabWant:
		r.CollabWant = v
	}
}

// missingMarkers are cell values read as missing, on top of the empty string.
// Mirrors the NA markers the survey exports use
var missingMarkers = map[string]struct{}{
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"#N/A": {},
	"<NA>": {},
	"None": {},
}

// isMissing reports whether an already trimmed cell is a missing value
func isMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := missingMarkers[s]
	return ok
}

// headerIndex maps each required column to its position in header and fails with the
// full list of absent columns
func headerIndex(header []string) (map[Column]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make(map[Column]int, len(Columns))
	var missing []string
	for _, c := range Columns {
		i, ok := pos[string(c)]
		if !ok {
			missing = append(missing, string(c))
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, perr.Newf(perr.ErrorCodeValidation, "survey file missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
