package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"rcm-workflow/internal/client"
	"rcm-workflow/internal/ingest"
	"rcm-workflow/internal/match"
	"rcm-workflow/internal/model"
	"rcm-workflow/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, backendURL string) *match.Engine {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))
	e := match.NewEngine(nil)
	e.Seed()
	Init(e, ingest.NewOrchestrator(), client.New(backendURL), nil)
	return e
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestUploadFileAccepted(t *testing.T) {
	setup(t, "")

	csv := "Claim.ID,Claim.MemberID\nCLM-1,784-1\n"
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/uploads?filename=eligibility.csv",
		strings.NewReader(csv))
	rec := httptest.NewRecorder()
	UploadFile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var outcome model.UploadOutcome
	decodeJSON(t, rec, &outcome)
	assert.Equal(t, model.UploadAccepted, outcome.Status)
	assert.Equal(t, 1, outcome.RecordCount)
	assert.Equal(t, "eligibility.csv", outcome.FileName)

	// The outcome was persisted and is retrievable by id.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+outcome.ID, nil)
	rec = httptest.NewRecorder()
	GetUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored model.UploadOutcome
	decodeJSON(t, rec, &stored)
	assert.Equal(t, outcome.ID, stored.ID)
	require.Len(t, stored.Records, 1)
}

func TestUploadFileMultipart(t *testing.T) {
	setup(t, "")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "batch.json")
	require.NoError(t, err)
	fw.Write([]byte(`[{"Claim": {"ID": "CLM-1", "MemberID": "784-1"}}]`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stages/check-eligibility/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	UploadFile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var outcome model.UploadOutcome
	decodeJSON(t, rec, &outcome)
	assert.Equal(t, "batch.json", outcome.FileName)
	assert.Equal(t, model.UploadAccepted, outcome.Status)
}

func TestUploadFileRejectedShape(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/uploads?filename=bad.csv",
		strings.NewReader("Claim.ID\nCLM-1\n"))
	rec := httptest.NewRecorder()
	UploadFile(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var outcome model.UploadOutcome
	decodeJSON(t, rec, &outcome)
	assert.Equal(t, model.UploadRejectedShape, outcome.Status)
	assert.Empty(t, outcome.Records)
}

func TestUploadFileUnknownStage(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/not-a-stage/uploads", strings.NewReader("x"))
	rec := httptest.NewRecorder()
	UploadFile(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitUploadFlow(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stages/check-eligibility/process", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"matched": true})
	}))
	defer backend.Close()
	setup(t, backend.URL)

	// Stage an accepted upload first.
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/uploads?filename=e.csv",
		strings.NewReader("Claim.ID,Claim.MemberID\nCLM-1,784-1\n"))
	rec := httptest.NewRecorder()
	UploadFile(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var outcome model.UploadOutcome
	decodeJSON(t, rec, &outcome)

	// Submit it.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/"+outcome.ID+"/submit", nil)
	rec = httptest.NewRecorder()
	SubmitUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.SubmissionResult
	decodeJSON(t, rec, &result)
	assert.Equal(t, outcome.ID, result.UploadID)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	// The submission shows up in history.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+outcome.ID+"/submissions", nil)
	rec = httptest.NewRecorder()
	GetUploadSubmissions(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var history struct {
		Count int `json:"count"`
	}
	decodeJSON(t, rec, &history)
	assert.Equal(t, 1, history.Count)
}

func TestSubmitRejectedUploadConflict(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/uploads?filename=bad.csv",
		strings.NewReader("Claim.ID\nCLM-1\n"))
	rec := httptest.NewRecorder()
	UploadFile(rec, req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var outcome model.UploadOutcome
	decodeJSON(t, rec, &outcome)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/"+outcome.ID+"/submit", nil)
	rec = httptest.NewRecorder()
	SubmitUpload(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProcessStageSingleMatch(t *testing.T) {
	setup(t, "")

	payload := `{"Claim": {"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"}}`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/process", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	ProcessStage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ID=CLM-ELG-0001||MemberID=784-1987-1234567-1",
		rec.Header().Get("X-Sim-Incoming-Composite"))

	var result model.StageResult
	decodeJSON(t, rec, &result)
	assert.True(t, result.Matched)
	assert.Equal(t, "Eligible", result.Result["outcome_label"])
}

func TestProcessStageSingleUnmatched(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/process",
		strings.NewReader(`{"Claim": {"ID": "CLM-NOPE", "MemberID": "784-0"}}`))
	rec := httptest.NewRecorder()
	ProcessStage(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]interface{}
	decodeJSON(t, rec, &body)
	assert.Equal(t, "Invalid Credential.", body["message"])
}

func TestProcessStageArray(t *testing.T) {
	setup(t, "")

	payload := `[
		{"Claim": {"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"}},
		{"Claim": {"ID": "CLM-NOPE", "MemberID": "784-0"}}
	]`
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/process", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	ProcessStage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []model.StageResult `json:"results"`
		Count   int                 `json:"count"`
		Matched int                 `json:"matched"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 1, body.Matched)
	assert.True(t, body.Results[0].Matched)
	assert.False(t, body.Results[1].Matched)
}

func TestProcessStageCSVBody(t *testing.T) {
	setup(t, "")

	csv := "Claim.ID,Claim.MemberID\nCLM-ELG-0001,784-1987-1234567-1\n"
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/check-eligibility/process", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	ProcessStage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result model.StageResult
	decodeJSON(t, rec, &result)
	assert.True(t, result.Matched)
}

func TestListStages(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stages", nil)
	rec := httptest.NewRecorder()
	ListStages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Stages []map[string]interface{} `json:"stages"`
		Count  int                      `json:"count"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, 10, body.Count)
	assert.Equal(t, "check-eligibility", body.Stages[0]["id"])
	assert.Equal(t, "Eligibility Check", body.Stages[0]["label"])
}

func TestRuleAdminFlow(t *testing.T) {
	setup(t, "")

	// Create
	create := `{
		"stage": "reconciliation",
		"outcome": {"status": "RECON_RECONCILED", "settlement_amount": 55.0},
		"reference_example": {"Reconciliation": {"ReconID": "RECON-ADMIN-1"}},
		"priority": 10
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/rules", strings.NewReader(create))
	rec := httptest.NewRecorder()
	CreateRule(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var rule model.Rule
	decodeJSON(t, rec, &rule)
	assert.Equal(t, model.StageReconciliation, rule.Stage)
	assert.Equal(t, 10, rule.Priority)

	// The new rule is live for processing.
	req = httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/reconciliation/process",
		strings.NewReader(`{"Reconciliation": {"ReconID": "RECON-ADMIN-1"}}`))
	rec = httptest.NewRecorder()
	ProcessStage(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Get
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules/"+rule.ID, nil)
	rec = httptest.NewRecorder()
	GetRule(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete, then the match disappears.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/rules/"+rule.ID, nil)
	rec = httptest.NewRecorder()
	DeleteRule(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost,
		"/api/v1/stages/reconciliation/process",
		strings.NewReader(`{"Reconciliation": {"ReconID": "RECON-ADMIN-1"}}`))
	rec = httptest.NewRecorder()
	ProcessStage(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUniqueIndex(t *testing.T) {
	setup(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/unique-index", nil)
	rec := httptest.NewRecorder()
	GetUniqueIndex(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var idx map[string]map[string]string
	decodeJSON(t, rec, &idx)
	assert.Contains(t, idx, "check-eligibility")
	assert.Contains(t, idx["check-eligibility"], "ID=CLM-ELG-0001||MemberID=784-1987-1234567-1")
}
