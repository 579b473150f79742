// Package httpkit re-exports the platform http helpers modules mount handlers with
// modules use this package instead of importing internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "gracewell/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope
	// Page is the pagination metadata type
	Page = phttp.Page
	// Response is the HTTP response type
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Status returns a data envelope with an explicit status
func Status(status int, data any) Response { return phttp.Status(status, data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with items and pagination
func List(items any, total, limit, offset int) Response {
	return phttp.List(items, Page{Total: total, Limit: limit, Offset: offset})
}

// JSON binds and validates T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}
