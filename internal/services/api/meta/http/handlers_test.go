package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gracewell/internal/modkit/repokit"
	phttp "gracewell/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func get(t *testing.T, d Deps, path string, out any) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("%s status = %d body %s", path, rec.Code, rec.Body.String())
	}
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("data: %v", err)
	}
}

func fixed() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

func TestHealth(t *testing.T) {
	t.Parallel()
	var got HealthResponse
	get(t, Deps{ServiceName: "gracewell-api", DisplayName: "Holistic Wellness API", StartedAt: fixed().Add(-time.Hour), Now: fixed}, "/health", &got)
	want := HealthResponse{
		Status:    "healthy",
		Service:   "Holistic Wellness API",
		Version:   "dev",
		Started:   "2026-10-17T08:30:00Z",
		Timestamp: "2026-10-17T09:30:00Z",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		pingers map[string]repokit.Pinger
		status  string
		failed  []string
	}{
		{"stateless", nil, "ok", nil},
		{"all up", map[string]repokit.Pinger{"pg": up, "nats": up}, "ok", nil},
		{"one down", map[string]repokit.Pinger{"pg": up, "clickhouse": down}, "degraded", []string{"clickhouse"}},
		{"all down", map[string]repokit.Pinger{"pg": down}, "fail", []string{"pg"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got ReadyResponse
			get(t, Deps{Pingers: tc.pingers, Now: fixed}, "/ready", &got)
			if got.Status != tc.status || len(got.Checks) != len(tc.pingers) {
				t.Fatalf("ready = %+v, want %s", got, tc.status)
			}
			var failed []string
			for _, c := range got.Checks {
				if c.Status == "fail" {
					failed = append(failed, c.Name)
				}
			}
			if diff := cmp.Diff(tc.failed, failed); diff != "" {
				t.Fatalf("failed checks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	var got map[string]string
	get(t, Deps{ServiceName: "gracewell-api"}, "/version", &got)
	if got["service"] != "gracewell-api" || got["version"] != "dev" {
		t.Fatalf("version = %v", got)
	}
}
