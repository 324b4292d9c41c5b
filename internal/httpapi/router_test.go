package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigmate/marketplace-service/internal/application"
	"gigmate/marketplace-service/internal/auth"
	"gigmate/marketplace-service/internal/httpapi"
	"gigmate/marketplace-service/internal/metrics"
	"gigmate/marketplace-service/internal/model"
	"gigmate/marketplace-service/internal/notify"
	"gigmate/marketplace-service/internal/otp"
	"gigmate/marketplace-service/internal/store"
)

const testSecret = "router-test-secret"

type testEnv struct {
	t       *testing.T
	handler http.Handler
	store   *store.Memory

	employerTok string
	employeeTok string
	adminTok    string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	met := metrics.New()
	svc := application.New(mem, otp.NewManager(otp.NewMemoryCodeStore(), time.Minute), notify.NopPublisher{}, met, 72*time.Hour)
	env := &testEnv{
		t:     t,
		store: mem,
		handler: httpapi.NewRouter(httpapi.Dependencies{
			Service:  svc,
			Verifier: auth.NewVerifier(testSecret),
			Metrics:  met,
		}),
	}
	env.employerTok = env.token("employer-1", model.RoleEmployer)
	env.employeeTok = env.token("employee-1", model.RoleEmployee)
	env.adminTok = env.token("admin-1", model.RoleAdmin)
	return env
}

func (e *testEnv) token(id string, role model.Role) string {
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: string(role),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(e.t, err)
	return s
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) decode(rec *httptest.ResponseRecorder) map[string]any {
	e.t.Helper()
	var m map[string]any
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &m), "body: %s", rec.Body.String())
	return m
}

func (e *testEnv) errorCode(rec *httptest.ResponseRecorder) string {
	e.t.Helper()
	body := e.decode(rec)
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

// postJob creates a job over the API and returns its ID.
func (e *testEnv) postJob() string {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/v1/jobs", e.employerTok, map[string]string{
		"title":       "Saturday market stall",
		"payAmount":   "350.00",
		"payCurrency": "USD",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return e.decode(rec)["id"].(string)
}

// applyTo applies as the test employee and returns the application ID.
func (e *testEnv) applyTo(jobID string) string {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", e.employeeTok, nil)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return e.decode(rec)["id"].(string)
}

// driveToAccepted walks select + accept over the API.
func (e *testEnv) driveToAccepted(appID string) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/v1/applications/"+appID+"/select", e.employerTok, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/accept", e.employeeTok, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
}

func appStatus(t *testing.T, body map[string]any) string {
	t.Helper()
	app, ok := body["application"].(map[string]any)
	require.True(t, ok, "response has no application: %v", body)
	s, _ := app["status"].(string)
	return s
}

// ── Auth and role gates ────────────────────────────────────────────────────

func TestAuthRequired(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodGet, "/v1/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", e.errorCode(rec))

	rec = e.do(http.MethodGet, "/v1/jobs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(http.MethodGet, "/v1/jobs", e.employeeTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleGates(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/v1/jobs", e.employeeTok, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", e.errorCode(rec))

	rec = e.do(http.MethodGet, "/v1/applications", e.employerTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(http.MethodGet, "/v1/admin/approvals", e.employeeTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ── Happy path ─────────────────────────────────────────────────────────────

func TestLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	appID := e.applyTo(jobID)

	rec := e.do(http.MethodGet, "/v1/jobs/"+jobID+"/applications", e.employerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := e.decode(rec)["items"].([]any)
	require.Len(t, items, 1)

	e.driveToAccepted(appID)

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/start-code", e.employerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	startCode := e.decode(rec)["code"].(string)
	require.Len(t, startCode, 6)

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/start", e.employeeTok, map[string]string{"code": startCode})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "WORK_IN_PROGRESS", appStatus(t, e.decode(rec)))

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/completion-code", e.employeeTok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	completionCode := e.decode(rec)["code"].(string)

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/complete", e.employerTok, map[string]string{"code": completionCode})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "COMPLETED", appStatus(t, e.decode(rec)))

	rec = e.do(http.MethodGet, "/v1/jobs/"+jobID, e.employeeTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, e.decode(rec)["open"], "completed work closes the posting")

	rec = e.do(http.MethodGet, "/v1/applications/summary", e.employeeTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, e.decode(rec)["completed"])

	rec = e.do(http.MethodGet, "/v1/applications/"+appID+"/events", e.employeeTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, e.decode(rec)["items"])

	rec = e.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statuschange_decisions_total")
	assert.Contains(t, rec.Body.String(), "otp_redemptions_total")
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

// ── Error mapping ──────────────────────────────────────────────────────────

func TestGenericChangeStatusCodes(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	appID := e.applyTo(jobID)

	// Skipping selection is a lifecycle violation.
	rec := e.do(http.MethodPost, "/v1/applications/"+appID+"/status", e.employeeTok, map[string]string{"requestedStatus": "ACCEPTED"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_STATUS_CHANGE", e.errorCode(rec))

	// An unknown status never reaches the rules engine.
	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/status", e.employeeTok, map[string]string{"requestedStatus": "NOPE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", e.errorCode(rec))

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/status", e.employeeTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A valid forward move is applied directly.
	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/status", e.employerTok, map[string]string{"requestedStatus": "SELECTED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ALLOWED", e.decode(rec)["outcome"])
}

func TestWrongCodeIsForbidden(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	appID := e.applyTo(jobID)
	e.driveToAccepted(appID)

	rec := e.do(http.MethodPost, "/v1/applications/"+appID+"/start-code", e.employerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	code := e.decode(rec)["code"].(string)
	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	rec = e.do(http.MethodPost, "/v1/applications/"+appID+"/start", e.employeeTok, map[string]string{"code": wrong})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "CODE_INVALID", e.errorCode(rec))
}

func TestDuplicateApplyConflicts(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	e.applyTo(jobID)

	rec := e.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", e.employeeTok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", e.errorCode(rec))
}

func TestUnknownResources(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodGet, "/v1/applications/does-not-exist", e.employeeTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", e.errorCode(rec))

	rec = e.do(http.MethodGet, "/v1/jobs/does-not-exist", e.employeeTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStrangerCannotReadApplication(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	appID := e.applyTo(jobID)

	stranger := e.token("employee-2", model.RoleEmployee)
	rec := e.do(http.MethodGet, "/v1/applications/"+appID, stranger, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ── Review queue over HTTP ─────────────────────────────────────────────────

func TestApprovalFlowOverHTTP(t *testing.T) {
	e := newEnv(t)
	jobID := e.postJob()
	appID := e.applyTo(jobID)
	e.driveToAccepted(appID)

	// Declining a locked application queues a review request.
	rec := e.do(http.MethodPost, "/v1/applications/"+appID+"/decline", e.employeeTok, nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	body := e.decode(rec)
	assert.Equal(t, "REQUIRES_ADMIN_APPROVAL", body["outcome"])
	approval := body["approval"].(map[string]any)
	approvalID := approval["id"].(string)

	rec = e.do(http.MethodGet, "/v1/admin/approvals", e.adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, e.decode(rec)["items"].([]any), 1)

	rec = e.do(http.MethodPost, "/v1/admin/approvals/"+approvalID+"/approve", e.adminTok, map[string]string{"note": "verified by phone"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "DECLINED", appStatus(t, e.decode(rec)))

	// The queue drains and the request cannot be decided twice.
	rec = e.do(http.MethodGet, "/v1/admin/approvals", e.adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, e.decode(rec)["items"])

	rec = e.do(http.MethodPost, "/v1/admin/approvals/"+approvalID+"/deny", e.adminTok, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", e.errorCode(rec))
}
