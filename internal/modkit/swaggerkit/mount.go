// Package swaggerkit mounts the swagger ui and the served openapi document
package swaggerkit

import (
	"net/http"

	phttp "gracewell/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount registers /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON("/api/v1"))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
