package module

import (
	"devsurvey/internal/services/api/survey/domain"
)

// Ports is what the survey module offers other modules
type Ports struct {
	Service domain.ServicePort
	Dataset domain.DatasetPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
