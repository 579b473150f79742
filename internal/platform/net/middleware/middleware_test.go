package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "gracewell/internal/platform/errors"
	pnet "gracewell/internal/platform/net"
	"gracewell/internal/platform/net/middleware"
)

func chain(h http.Handler, mws ...middleware.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestDefaults_RequestIDAndRecover(t *testing.T) {
	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		panic("boom")
	}), middleware.Defaults(time.Second)...)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-panic")
	h.ServeHTTP(rec, req)

	if seen != "rid-panic" {
		t.Fatalf("handler saw request id %q", seen)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "rid-panic" {
		t.Fatalf("request id not mirrored")
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if body["request_id"] != "rid-panic" || body["code"] != float64(perr.ErrorCodePanic) {
		t.Fatalf("unexpected panic body %v", body)
	}
}

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func TestAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pnet.Caller(r.Context())))
	})
	fail := func(w http.ResponseWriter, _ *http.Request, err error) {
		http.Error(w, err.Error(), perr.HTTPStatus(err))
	}

	cases := []struct {
		name   string
		port   middleware.AuthPort
		status int
		body   string
	}{
		{"nil port", nil, 200, ""},
		{"accepted", portFunc(func(*http.Request) (string, error) { return "cron", nil }), 200, "cron"},
		{"refused", portFunc(func(*http.Request) (string, error) {
			return "", perr.Unauthorizedf("bad token")
		}), 401, "bad token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			middleware.Auth(tc.port, fail)(ok).ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
			if rec.Code != tc.status || !strings.Contains(rec.Body.String(), tc.body) {
				t.Fatalf("got %d %q, want %d %q", rec.Code, rec.Body.String(), tc.status, tc.body)
			}
		})
	}
}

func TestAccessLog_PassesStatusThrough(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/tea", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Fatalf("unexpected %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://gracewell.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(204) }))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/moderation/check", nil)
	req.Header.Set("Origin", "https://gracewell.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://gracewell.example" {
		t.Fatalf("allow origin = %q", got)
	}
}
