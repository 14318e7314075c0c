// Package module defines the minimal module contract and a bootstrap port registry
package module

import (
	phttp "inputdash/internal/platform/net/http"
)

// Module is implemented by every API module; it mirrors modkit.Module without importing it
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
