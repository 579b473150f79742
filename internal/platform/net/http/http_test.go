package http_test

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gracewell/internal/platform/config"
	perr "gracewell/internal/platform/errors"
	pnet "gracewell/internal/platform/net"
	phttp "gracewell/internal/platform/net/http"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func newRouter() phttp.Router {
	r := phttp.NewServer(config.New().Prefix("TEST_HTTP_")).Router()
	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			next.ServeHTTP(w, req.WithContext(pnet.WithRequest(req.Context(), "rid-1")))
		})
	})
	return r
}

func TestEnvelopes(t *testing.T) {
	r := newRouter()
	r.Route("/v1", func(v phttp.Router) {
		phttp.PostJSON(v, "/echo", func(_ *stdhttp.Request, in echoIn) (any, error) {
			return map[string]string{"hello": in.Name}, nil
		})
		phttp.GetJSON(v, "/missing", func(*stdhttp.Request) (any, error) {
			return nil, perr.NotFoundf("draft not found")
		})
		phttp.GetJSON(v, "/rejected", func(*stdhttp.Request) (any, error) {
			return phttp.Status(stdhttp.StatusUnprocessableEntity, map[string]bool{"approved": false}), nil
		})
		v.Delete("/gone", phttp.Handle(func(*stdhttp.Request) phttp.Response { return phttp.NoContent() }))
	})

	cases := []struct {
		name, method, path, body string
		status                   int
		wantErr                  string
		wantData                 string
	}{
		{"ok", "POST", "/v1/echo", `{"name":"Ruth"}`, 200, "", `"hello":"Ruth"`},
		{"validation", "POST", "/v1/echo", `{}`, 400, "name is a required field", ""},
		{"not found", "GET", "/v1/missing", "", 404, "draft not found", ""},
		{"explicit status", "GET", "/v1/rejected", "", 422, "", `"approved":false`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			r.Mux().ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			env := decode(t, rec)
			if env.StatusCode != tc.status || env.RequestID != "rid-1" {
				t.Fatalf("envelope %+v", env)
			}
			if env.Error != tc.wantErr {
				t.Fatalf("error = %q, want %q", env.Error, tc.wantErr)
			}
			if tc.wantData != "" && !strings.Contains(rec.Body.String(), tc.wantData) {
				t.Fatalf("body %s missing %s", rec.Body.String(), tc.wantData)
			}
		})
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("DELETE", "/v1/gone", nil))
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestList(t *testing.T) {
	r := newRouter()
	r.Get("/items", phttp.Handle(func(*stdhttp.Request) phttp.Response {
		return phttp.List([]string{"a", "b"}, phttp.Page{Total: 2, Limit: 20})
	}))
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/items", nil))
	if !strings.Contains(rec.Body.String(), `"items":["a","b"]`) || !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Fatalf("unexpected list body %s", rec.Body.String())
	}
}

func TestMountProfiler(t *testing.T) {
	on := newRouter()
	phttp.MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected pprof index, got %d", rec.Code)
	}

	off := newRouter()
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec.Code)
	}
}

func TestNewServer_Addr(t *testing.T) {
	t.Setenv("TEST_SRV_PORT", ":4100")
	if got := phttp.NewServer(config.New().Prefix("TEST_SRV_")).Addr(); got != ":4100" {
		t.Fatalf("Addr = %q", got)
	}
}
