package modkit

import "devsurvey/internal/modkit/module"

// Module is the surface API modules implement, see module.Module
type Module = module.Module
