package cmd

import (
	"github.com/spf13/pflag"

	"devsurvey/internal/core/survey"
)

// filterFlags maps the dashboard filter controls onto flags. A list flag that is never
// given accepts everything; values are repeatable and may contain commas
type filterFlags struct {
	fs *pflag.FlagSet

	ages       []string
	edLevels   []string
	employment []string
	devStatus  []string
	yearsMin   float64
	yearsMax   float64
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringArrayVar(&f.ages, "age", nil, "accepted age bracket (repeatable)")
	fs.StringArrayVar(&f.edLevels, "ed-level", nil, "accepted education level (repeatable)")
	fs.StringArrayVar(&f.employment, "employment", nil, "accepted employment item (repeatable)")
	fs.StringArrayVar(&f.devStatus, "dev-status", nil, "accepted developer status (repeatable)")
	fs.Float64Var(&f.yearsMin, "years-min", survey.YearsMin, "lowest years of coding")
	fs.Float64Var(&f.yearsMax, "years-max", survey.YearsMax, "highest years of coding")
}

// spec builds the FilterSpec the flags describe
func (f *filterFlags) spec() survey.FilterSpec {
	var s survey.FilterSpec
	if f.changed("age") {
		s.Ages = nonNil(f.ages)
	}
	if f.changed("ed-level") {
		s.EdLevels = nonNil(f.edLevels)
	}
	if f.changed("employment") {
		s.Employment = nonNil(f.employment)
	}
	if f.changed("dev-status") {
		s.DevStatus = nonNil(f.devStatus)
	}
	s.Years = &survey.Range{Min: f.yearsMin, Max: f.yearsMax}
	return s
}

func (f *filterFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
