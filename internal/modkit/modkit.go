package modkit

import (
	phttp "inputdash/internal/platform/net/http"
)

// Module is what api.Mount wires: routes under a prefix plus a port set
// other modules can look up by name
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
