// Package modkit provides module wiring and the deps every module receives
package modkit

import (
	"devsurvey/internal/core/survey"
	"devsurvey/internal/platform/config"
	"devsurvey/internal/platform/logger"
	"devsurvey/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Survey  *survey.Table
	Metrics *metrics.Metrics
}

// Loaded reports whether a survey table is wired
func (d Deps) Loaded() bool { return d.Survey != nil }
