package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/config"
	"github.com/oksasatya/careerconnect-api/internal/container"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/memory"
	"github.com/oksasatya/careerconnect-api/pkg/helpers"
	"github.com/oksasatya/careerconnect-api/pkg/validation"
)

const testSecret = "test-secret"

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

type api struct {
	t *testing.T
	h http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	v, err := helpers.NewTokenVerifier(testSecret, "", "", "")
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := memory.NewStore()

	e := NewEngine(Deps{
		Config:   &config.Config{RateLimitEnabled: false, DebugMetricsEnabled: true, NotificationsLimit: 20},
		Logger:   logger,
		Verifier: v,
		Repos: container.Repositories{
			Profiles:     store.Profiles(),
			Internships:  store.Internships(),
			Applications: store.Applications(),
		},
	})
	return &api{t: t, h: e}
}

func token(t *testing.T, subject string) string {
	t.Helper()
	raw, err := helpers.IssueDevToken(testSecret, subject, subject+"@example.com", "", "", time.Hour)
	require.NoError(t, err)
	return raw
}

func (a *api) do(method, path, tok string, body any) (int, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if len(raw) == 0 {
		return v
	}
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestApplicationLifecycle(t *testing.T) {
	a := newAPI(t)
	rec, cand, other := token(t, "rec-1"), token(t, "cand-1"), token(t, "rec-2")

	code, _ := a.do(http.MethodPost, "/api/auth/register", rec, map[string]any{"name": "Ravi", "role": "recruiter", "company": "Acme"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.do(http.MethodPost, "/api/auth/register", other, map[string]any{"name": "Mina", "role": "recruiter", "company": "Globex"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.do(http.MethodPost, "/api/auth/register", cand, map[string]any{"name": "Asha", "role": "candidate"})
	require.Equal(t, http.StatusCreated, code)

	code, env := a.do(http.MethodPost, "/api/auth/register", cand, map[string]any{"name": "Again", "role": "candidate"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Code)

	// candidates cannot post
	code, _ = a.do(http.MethodPost, "/api/internships", cand, map[string]any{"title": "Nope"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPost, "/api/internships", rec, map[string]any{"title": "Go Intern", "location": "Remote"})
	require.Equal(t, http.StatusCreated, code)
	posting := decode[map[string]any](t, env.Data)
	internshipID := posting["id"].(string)
	assert.Equal(t, "Acme", posting["company"])

	code, env = a.do(http.MethodGet, "/api/internships", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	code, env = a.do(http.MethodPost, "/api/candidate/apply", cand, map[string]any{"internshipId": internshipID})
	require.Equal(t, http.StatusCreated, code)
	appID := decode[map[string]any](t, env.Data)["id"].(string)

	code, env = a.do(http.MethodPost, "/api/candidate/apply", cand, map[string]any{"internshipId": internshipID})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Code)

	code, env = a.do(http.MethodPost, "/api/candidate/apply", cand, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)

	// applicants are scoped to the owning recruiter
	code, env = a.do(http.MethodGet, "/api/recruiter/applicants/"+internshipID, other, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]map[string]any](t, env.Data))
	code, _ = a.do(http.MethodPatch, "/api/recruiter/applications/"+appID+"/status", other, map[string]any{"status": "Shortlisted"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodGet, "/api/recruiter/applicants/"+internshipID, rec, nil)
	require.Equal(t, http.StatusOK, code)
	applicants := decode[[]map[string]any](t, env.Data)
	require.Len(t, applicants, 1)

	code, _ = a.do(http.MethodPatch, "/api/recruiter/applications/"+appID+"/status", rec, map[string]any{"status": "Promoted"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodPatch, "/api/recruiter/applications/"+appID+"/status", rec, map[string]any{"status": "Shortlisted"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Application status updated to Shortlisted", env.Message)
	assert.Equal(t, true, env.Meta["changed"])

	code, env = a.do(http.MethodGet, "/api/candidate/notifications", cand, nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[[]map[string]any](t, env.Data)
	require.Len(t, notes, 1)
	assert.Equal(t, "Your application for 'Go Intern' was Shortlisted.", notes[0]["message"])
	assert.Equal(t, false, notes[0]["read"])

	noteID := notes[0]["id"].(string)
	code, _ = a.do(http.MethodPatch, "/api/candidate/notifications/"+noteID+"/read", cand, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = a.do(http.MethodPatch, "/api/candidate/notifications/"+noteID+"/read", cand, nil)
	assert.Equal(t, http.StatusOK, code, "marking read twice is fine")

	code, env = a.do(http.MethodGet, "/api/candidate/notifications", cand, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, decode[[]map[string]any](t, env.Data)[0]["read"])

	code, env = a.do(http.MethodGet, "/api/recruiter/dashboard/stats", rec, nil)
	require.Equal(t, http.StatusOK, code)
	stats := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, stats["totalPostedJobs"])
	assert.EqualValues(t, 1, stats["totalShortlisted"])

	code, env = a.do(http.MethodGet, "/api/data/categories", "", nil)
	require.Equal(t, http.StatusOK, code)
	cats := decode[[]map[string]any](t, env.Data)
	require.Len(t, cats, 1)
	assert.Equal(t, "Go", cats[0]["title"])
}

func TestAuthGates(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/profile/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Code)

	code, _ = a.do(http.MethodGet, "/api/profile/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// verified but never registered
	code, _ = a.do(http.MethodGet, "/api/profile/me", token(t, "stranger"), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = a.do(http.MethodGet, "/api/internships/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestHealthAndDebug(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
}
