package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gracewell/internal/modkit/httpkit"
	perr "gracewell/internal/platform/errors"
	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/services/generate/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeGen struct {
	out    domain.Generated
	err    error
	weekly int
}

func (f *fakeGen) Generate(context.Context, domain.GenerateInput) (domain.Generated, error) {
	return f.out, f.err
}

func (f *fakeGen) RunWeekly(context.Context, domain.WeeklyOptions) (domain.WeeklyReport, error) {
	f.weekly++
	return domain.WeeklyReport{Week: "weekly:2026-W42", Results: []domain.WeeklyItem{}}, nil
}

type fakeReview struct {
	published uuid.UUID
	q         domain.DraftQuery
}

func (f *fakeReview) ListDrafts(_ context.Context, q domain.DraftQuery) ([]domain.Draft, int, error) {
	f.q = q
	return nil, 0, nil
}

func (f *fakeReview) Publish(_ context.Context, id uuid.UUID) (domain.Draft, error) {
	if id == uuid.Nil {
		return domain.Draft{}, perr.NotFoundf("draft not found")
	}
	f.published = id
	return domain.Draft{ID: id, IsPublished: true}, nil
}

func serve(t *testing.T, gen *fakeGen, rev *fakeReview, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), gen, rev, Auth{
		Cron:  httpkit.StaticTokens(map[string]string{"cron": "cron-s3cret"}),
		Admin: httpkit.StaticTokens(map[string]string{"admin": "admin-s3cret"}),
	})
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("body %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		gen    *fakeGen
		body   string
		status int
	}{
		{"approved", &fakeGen{out: domain.Generated{Approved: true, Content: "Pray"}}, `{"section":"nutrition"}`, 200},
		{"rejected", &fakeGen{out: domain.Generated{FlaggedReasons: []string{"x"}, RetryRecommended: true}}, `{"section":"nutrition"}`, 422},
		{"model down", &fakeGen{err: perr.Unavailablef("content generation not configured")}, `{"section":"nutrition"}`, 503},
		{"blank section", &fakeGen{}, `{"section":"  "}`, 400},
		{"unknown field", &fakeGen{}, `{"section":"nutrition","tone":"loud"}`, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec, env := serve(t, tc.gen, &fakeReview{}, "/generate", tc.body, "")
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status == 422 {
				data, _ := env["data"].(map[string]any)
				if data["retry_recommended"] != true || data["approved"] != false {
					t.Fatalf("rejection payload %v", data)
				}
			}
		})
	}
}

func TestWeekly_CronOnly(t *testing.T) {
	t.Parallel()
	gen := &fakeGen{}
	for token, want := range map[string]int{"": 401, "admin-s3cret": 401, "cron-s3cret": 200} {
		rec, _ := serve(t, gen, &fakeReview{}, "/weekly", "", token)
		if rec.Code != want {
			t.Fatalf("token %q: status %d, want %d", token, rec.Code, want)
		}
	}
	if gen.weekly != 1 {
		t.Fatalf("weekly ran %d times", gen.weekly)
	}
}

func TestDrafts(t *testing.T) {
	t.Parallel()
	rev := &fakeReview{}
	rec, env := serve(t, &fakeGen{}, rev, "/drafts", `{"section":"exercise","published":false}`, "admin-s3cret")
	if rec.Code != 200 {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if rev.q.Section != "exercise" || rev.q.Published == nil || *rev.q.Published || rev.q.Limit != domain.DefaultPageSize {
		t.Fatalf("query = %+v", rev.q)
	}
	data, _ := env["data"].(map[string]any)
	if items, ok := data["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("items should be an empty array, got %v", data["items"])
	}

	if rec, _ := serve(t, &fakeGen{}, rev, "/drafts", `{}`, "cron-s3cret"); rec.Code != 401 {
		t.Fatalf("cron secret must not open the review queue, got %d", rec.Code)
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()
	rev := &fakeReview{}
	id := uuid.New()

	rec, _ := serve(t, &fakeGen{}, rev, "/drafts/"+id.String()+"/publish", "", "admin-s3cret")
	if rec.Code != 200 || rev.published != id {
		t.Fatalf("status %d published %v", rec.Code, rev.published)
	}

	rec, env := serve(t, &fakeGen{}, rev, "/drafts/not-a-uuid/publish", "", "admin-s3cret")
	if rec.Code != 400 || env["field"] != "id" {
		t.Fatalf("bad id: %d %v", rec.Code, env)
	}

	rec, _ = serve(t, &fakeGen{}, rev, "/drafts/"+uuid.Nil.String()+"/publish", "", "admin-s3cret")
	if rec.Code != 404 {
		t.Fatalf("missing draft status = %d", rec.Code)
	}
}
