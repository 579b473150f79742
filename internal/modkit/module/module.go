// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "gracewell/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// it lives apart from modkit so service packages can depend on it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
