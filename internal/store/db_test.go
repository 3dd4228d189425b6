package store

import (
	"path/filepath"
	"testing"
	"time"

	"rcm-workflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDB(dbPath))
}

func TestUploadRoundTrip(t *testing.T) {
	initTestDB(t)

	outcome := &model.UploadOutcome{
		ID:       "UPL-test000001",
		Stage:    model.StageCheckEligibility,
		FileName: "eligibility.csv",
		Status:   model.UploadAccepted,
		Records: []model.CanonicalRecord{
			{"Claim": map[string]interface{}{"ID": "CLM-1", "MemberID": "784-1"}},
			{"Claim": map[string]interface{}{"ID": "CLM-2", "MemberID": "784-2"}},
		},
		RecordCount: 2,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, SaveUpload(outcome))

	got, err := GetUpload("UPL-test000001")
	require.NoError(t, err)
	assert.Equal(t, outcome.Stage, got.Stage)
	assert.Equal(t, outcome.FileName, got.FileName)
	assert.Equal(t, outcome.Status, got.Status)
	assert.Equal(t, 2, got.RecordCount)
	require.Len(t, got.Records, 2)

	claim, ok := got.Records[0]["Claim"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CLM-1", claim["ID"])
	assert.Equal(t, "784-1", claim["MemberID"])
	assert.WithinDuration(t, outcome.CreatedAt, got.CreatedAt, time.Second)
}

func TestRejectedUploadHasNoPayload(t *testing.T) {
	initTestDB(t)

	outcome := &model.UploadOutcome{
		ID:        "UPL-test000002",
		Stage:     model.StagePriorAuthorization,
		FileName:  "broken.json",
		Status:    model.UploadRejectedParse,
		Reason:    "file could not be parsed",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, SaveUpload(outcome))

	got, err := GetUpload("UPL-test000002")
	require.NoError(t, err)
	assert.Equal(t, model.UploadRejectedParse, got.Status)
	assert.Equal(t, "file could not be parsed", got.Reason)
	assert.Empty(t, got.Records)
}

func TestGetUploadNotFound(t *testing.T) {
	initTestDB(t)
	_, err := GetUpload("UPL-missing")
	assert.Error(t, err)
}

func TestListUploadsNewestFirst(t *testing.T) {
	initTestDB(t)

	base := time.Now().UTC()
	for i, id := range []string{"UPL-a", "UPL-b", "UPL-c"} {
		require.NoError(t, SaveUpload(&model.UploadOutcome{
			ID:        id,
			Stage:     model.StageReconciliation,
			FileName:  "recon.json",
			Status:    model.UploadAccepted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	uploads, err := ListUploads(2)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "UPL-c", uploads[0]["id"])
	assert.Equal(t, "UPL-b", uploads[1]["id"])
}

func TestSubmissionRoundTrip(t *testing.T) {
	initTestDB(t)

	res := model.SubmissionResult{
		UploadID:    "UPL-sub1",
		Stage:       model.StageClaimsSubmission,
		StatusCode:  200,
		Body:        map[string]interface{}{"matched": true},
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, SaveSubmission(res))

	got, err := GetSubmissions("UPL-sub1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 200, got[0].StatusCode)
	body, ok := got[0].Body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, body["matched"])
}

func TestSaveEvent(t *testing.T) {
	initTestDB(t)

	ev := model.Event{
		Timestamp: time.Now().UTC(),
		Actor:     "gateway",
		Stage:     model.StageCheckEligibility,
		EventType: "unique_lookup_attempt",
		PayloadSummary: map[string]interface{}{
			"incoming_composite": "ID=CLM-1||MemberID=784-1",
		},
		ReferenceIDs: map[string]string{"rule_id": "RULE-x"},
	}
	assert.NoError(t, SaveEvent(ev))
}
