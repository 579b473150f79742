package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "gracewell/internal/platform/errors"
	pnet "gracewell/internal/platform/net"
	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func TestPort_Parse(t *testing.T) {
	t.Parallel()

	p := StaticTokens(map[string]string{"cron": "s3cret", "admin": "  "})
	cases := []struct {
		name   string
		header string
		caller string
		ok     bool
	}{
		{"missing", "", "", false},
		{"wrong scheme", "Basic s3cret", "", false},
		{"bare bearer", "Bearer   ", "", false},
		{"bad token", "Bearer nope", "", false},
		{"blank secret never matches", "Bearer   x", "", false},
		{"lowercase scheme", "bearer s3cret", "cron", true},
		{"padded", "  Bearer   s3cret ", "cron", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			caller, err := p.Parse(r)
			if tc.ok != (err == nil) || caller != tc.caller {
				t.Fatalf("Parse = %q, %v", caller, err)
			}
			if err != nil && !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
				t.Fatalf("want unauthorized, got %v", err)
			}
		})
	}
}

func TestProtected_WritesEnvelope(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Protected(r, StaticTokens(map[string]string{"cron": "tok"}), func(gr Router) {
		GetJSON(gr, "/whoami", func(r *http.Request) (any, error) {
			return pnet.Caller(r.Context()), nil
		})
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Code != perr.ErrorCodeUnauthorized {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"data":"cron"`) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestProtected_NilPortIsOpen(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	var p *Port
	Protected(phttp.AdaptChi(mux), p, func(gr Router) {
		GetJSON(gr, "/open", func(*http.Request) (any, error) { return "ok", nil })
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

type echoIn struct {
	Content string `json:"content" validate:"required,nonblank"`
}

func TestMountAPIV1_WithStack(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	stack := CommonStack(time.Second, middleware.CORSOptions{}, time.Second)
	MountAPIV1(phttp.AdaptChi(mux), stack, func(api Router) {
		PostJSON(api, "/echo", func(_ *http.Request, in echoIn) (any, error) {
			if in.Content == "refuse" {
				return Status(http.StatusUnprocessableEntity, map[string]bool{"ok": false}), nil
			}
			return Created(in), nil
		})
	})

	cases := []struct {
		body   string
		status int
	}{
		{`{"content":"grace"}`, http.StatusCreated},
		{`{"content":"refuse"}`, http.StatusUnprocessableEntity},
		{`{"content":"   "}`, http.StatusBadRequest},
		{`{"content":"x","extra":1}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d (%s)", tc.body, rec.Code, tc.status, rec.Body.String())
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("request id header missing")
		}
	}
}
