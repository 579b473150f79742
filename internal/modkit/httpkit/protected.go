package httpkit

import "gracewell/internal/platform/net/middleware"

// Protected groups routes under bearer auth
// a nil port leaves the group open, which is how local dev runs
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
