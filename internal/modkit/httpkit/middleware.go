package httpkit

import (
	"net/http"
	"time"

	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/platform/net/middleware"
)

// CommonStack is the baseline api middleware slice plus access logging and cors
func CommonStack(timeout time.Duration, cors middleware.CORSOptions, slow time.Duration) []func(http.Handler) http.Handler {
	mw := middleware.Defaults(timeout)
	mw = append(mw,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: slow}),
		middleware.CORS(cors),
		middleware.StripSlashes(),
	)
	return mw
}

// Auth wires the auth middleware to the platform error envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	if port, ok := p.(*Port); ok && port == nil {
		p = nil
	}
	return middleware.Auth(p, phttp.WriteError)
}
