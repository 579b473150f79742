package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modreg "gracewell/internal/modkit/module"
	"gracewell/internal/platform/config"
	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/services/api/docs"
	"gracewell/internal/services/moderation/domain"
	modmod "gracewell/internal/services/moderation/module"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

type cleanClassifier struct{}

func (cleanClassifier) Classify(context.Context, string) (domain.Classification, error) {
	return domain.Classification{}, nil
}

type approver struct{}

func (approver) Complete(context.Context, domain.Completion) (string, error) {
	return "APPROVED", nil
}

func mount(t *testing.T) *chi.Mux {
	t.Helper()
	modreg.Reset()
	t.Cleanup(modreg.Reset)
	t.Setenv("CORE_API_ADMIN_TOKEN", "admin-secret")

	mux := chi.NewRouter()
	mods := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		EnableSwagger: true,
		Moderation:    &modmod.Remote{Classifier: cleanClassifier{}, Completer: approver{}},
	})
	if len(mods) != 3 {
		t.Fatalf("mounted %d modules", len(mods))
	}
	return mux
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMount_Routes(t *testing.T) {
	h := mount(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
	}{
		{"health", "GET", "/api/v1/meta/health", "", "", 200},
		{"ready without backends", "GET", "/api/v1/meta/ready", "", "", 200},
		{"version", "GET", "/api/v1/meta/version", "", "", 200},
		{"check", "POST", "/api/v1/moderation/check", `{"content":"Rest and pray","section":"community"}`, "", 200},
		{"check invalid", "POST", "/api/v1/moderation/check", `{"section":"community"}`, "", 400},
		{"audits need a token", "POST", "/api/v1/moderation/audits", `{}`, "", 401},
		{"audits without postgres", "POST", "/api/v1/moderation/audits", `{}`, "admin-secret", 503},
		{"weekly refuses without a cron secret", "POST", "/api/v1/content/weekly", "", "anything", 401},
		{"drafts without postgres", "POST", "/api/v1/content/drafts", `{}`, "admin-secret", 503},
		{"unknown", "GET", "/api/v1/nope", "", "", 404},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(h, tc.method, tc.path, tc.body, tc.token)
			if rec.Code != tc.status {
				t.Fatalf("%s %s = %d, want %d body %s", tc.method, tc.path, rec.Code, tc.status, rec.Body.String())
			}
		})
	}
}

func TestMount_CheckEnvelope(t *testing.T) {
	h := mount(t)
	rec := do(h, "POST", "/api/v1/moderation/check", `{"content":"Trust the Lord and keep your faith steady in prayer.","section":"community"}`, "")

	var env struct {
		StatusCode int           `json:"status_code"`
		Data       domain.Result `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != 200 || !env.Data.IsApproved || len(env.Data.FlaggedReasons) != 0 {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestMount_SwaggerDocument(t *testing.T) {
	h := mount(t)
	rec := do(h, "GET", "/api/docs/doc.json", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.OpenAPI != "3.0.3" {
		t.Fatalf("openapi = %q", spec.OpenAPI)
	}
	for _, p := range []string{"/moderation/check", "/moderation/audits", "/content/generate", "/content/weekly", "/content/drafts", "/meta/health"} {
		if _, ok := spec.Paths[p]; !ok {
			t.Fatalf("document missing %s", p)
		}
	}
}

// the committed document must describe exactly the routes mounted under /api/v1
func TestDocument_MatchesMountedRoutes(t *testing.T) {
	mux := mount(t)

	mounted := map[string]bool{}
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if p, ok := strings.CutPrefix(route, "/api/v1"); ok {
			mounted[strings.ToLower(method)+" "+strings.TrimSuffix(p, "/")] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("decode committed document: %v", err)
	}
	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[method+" "+path] = true
		}
	}

	if diff := cmp.Diff(documented, mounted); diff != "" {
		t.Fatalf("document and routes disagree (-documented +mounted):\n%s", diff)
	}
}
