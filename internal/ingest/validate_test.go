package ingest

import (
	"testing"

	"rcm-workflow/internal/model"

	"github.com/stretchr/testify/assert"
)

func eligibilityRecord(id, memberID string) model.CanonicalRecord {
	return model.CanonicalRecord{
		"Claim": map[string]interface{}{"ID": id, "MemberID": memberID},
	}
}

func TestIsReadyEmptyBatchNeverReady(t *testing.T) {
	assert.False(t, IsReady(model.StageCheckEligibility, nil))
	assert.False(t, IsReady(model.StageCheckEligibility, []model.CanonicalRecord{}))
}

func TestIsReadyAllRecordsValid(t *testing.T) {
	records := []model.CanonicalRecord{
		eligibilityRecord("CLM-1", "784-1"),
		eligibilityRecord("CLM-2", "784-2"),
	}
	assert.True(t, IsReady(model.StageCheckEligibility, records))
}

func TestIsReadySingleBadRecordFailsBatch(t *testing.T) {
	records := []model.CanonicalRecord{
		eligibilityRecord("CLM-1", "784-1"),
		eligibilityRecord("CLM-2", "784-2"),
		eligibilityRecord("CLM-3", "784-3"),
		{"Claim": map[string]interface{}{"ID": "CLM-4"}}, // missing MemberID
	}
	assert.False(t, IsReady(model.StageCheckEligibility, records))
}

func TestIsReadyUnknownStage(t *testing.T) {
	records := []model.CanonicalRecord{eligibilityRecord("CLM-1", "784-1")}
	assert.False(t, IsReady(model.StageID("no-such-stage"), records))
}

func TestVariantsCoverAllStages(t *testing.T) {
	for _, stage := range model.AllStages() {
		assert.NotEmpty(t, Variants(stage), "stage %s has no shape variants", stage)
	}
}
