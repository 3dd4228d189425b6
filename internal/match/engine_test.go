package match

import (
	"testing"

	"rcm-workflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildComposite(t *testing.T) {
	payload := m{
		"Claim": m{"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"},
	}
	comp, ok := BuildComposite(model.StageCheckEligibility, payload)
	require.True(t, ok)
	assert.Equal(t, "ID=CLM-ELG-0001||MemberID=784-1987-1234567-1", comp)
}

func TestBuildCompositeTrimsButPreservesCase(t *testing.T) {
	payload := m{
		"Claim": m{"ID": "  clm-elg-0001  ", "MemberID": "784-1987-1234567-1"},
	}
	comp, ok := BuildComposite(model.StageCheckEligibility, payload)
	require.True(t, ok)
	// Exact matching: whitespace trimmed, case kept as-is.
	assert.Equal(t, "ID=clm-elg-0001||MemberID=784-1987-1234567-1", comp)
}

func TestBuildCompositeMissingField(t *testing.T) {
	_, ok := BuildComposite(model.StageCheckEligibility, m{"Claim": m{"ID": "CLM-1"}})
	assert.False(t, ok)
}

func TestBuildCompositeFallsBackToRecursiveSearch(t *testing.T) {
	// Unique fields found anywhere in the payload, not only on the
	// canonical dotted path.
	payload := m{"Envelope": m{"Claim": m{"ID": "CLM-1", "MemberID": "784-1"}}}
	comp, ok := BuildComposite(model.StageCheckEligibility, payload)
	require.True(t, ok)
	assert.Equal(t, "ID=CLM-1||MemberID=784-1", comp)
}

func TestBuildCompositeNumericValue(t *testing.T) {
	payload := m{"Reconciliation": m{"ReconID": 42.0}}
	comp, ok := BuildComposite(model.StageReconciliation, payload)
	require.True(t, ok)
	assert.Equal(t, "ReconID=42", comp)
}

func TestProcessSeededEligibilityMatch(t *testing.T) {
	e := NewEngine(nil)
	require.Greater(t, e.Seed(), 0)

	payload := m{"Claim": m{"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"}}
	result, composite := e.Process(model.StageCheckEligibility, payload)

	require.True(t, result.Matched)
	assert.Equal(t, "ID=CLM-ELG-0001||MemberID=784-1987-1234567-1", composite)
	assert.Equal(t, "Eligible", result.Result["outcome_label"])
	assert.Contains(t, result.Summary, "Eligible")

	// Eligibility is a PHI stage: patient info comes from the reference
	// example even though the incoming payload carried none.
	patient, ok := result.Result["patient"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Aisha Khalid", patient["name"])
}

func TestProcessUnmatchedPayload(t *testing.T) {
	e := NewEngine(nil)
	e.Seed()

	result, composite := e.Process(model.StageCheckEligibility,
		m{"Claim": m{"ID": "CLM-NOPE", "MemberID": "784-0"}})
	assert.False(t, result.Matched)
	assert.Equal(t, "Invalid Credential.", result.Message)
	assert.Equal(t, "ID=CLM-NOPE||MemberID=784-0", composite)
}

func TestProcessMissingUniqueFields(t *testing.T) {
	e := NewEngine(nil)
	e.Seed()

	result, composite := e.Process(model.StageCheckEligibility, m{"Claim": m{"ID": "CLM-1"}})
	assert.False(t, result.Matched)
	assert.Equal(t, "Invalid Credential.", result.Message)
	assert.Empty(t, composite)
}

func TestProcessResultIsACopy(t *testing.T) {
	e := NewEngine(nil)
	e.Seed()

	payload := m{"Claim": m{"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"}}
	first, _ := e.Process(model.StageCheckEligibility, payload)
	require.True(t, first.Matched)
	first.Result["outcome_label"] = "tampered"

	second, _ := e.Process(model.StageCheckEligibility, payload)
	assert.Equal(t, "Eligible", second.Result["outcome_label"])
}

func TestRuleCRUD(t *testing.T) {
	e := NewEngine(nil)

	rule := e.AddRule(model.StageReconciliation,
		m{"status": "RECON_RECONCILED"},
		m{"Reconciliation": m{"ReconID": "RECON-X"}}, 0)
	require.NotNil(t, rule)
	assert.Equal(t, 100, rule.Priority) // default

	got, err := e.GetRule(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, rule.ID, got.ID)

	result, _ := e.Process(model.StageReconciliation, m{"Reconciliation": m{"ReconID": "RECON-X"}})
	assert.True(t, result.Matched)

	// Update re-points the index at the new reference example.
	_, err = e.UpdateRule(rule.ID, model.StageReconciliation,
		m{"status": "RECON_ESCALATED"},
		m{"Reconciliation": m{"ReconID": "RECON-Y"}}, 50)
	require.NoError(t, err)

	result, _ = e.Process(model.StageReconciliation, m{"Reconciliation": m{"ReconID": "RECON-X"}})
	assert.False(t, result.Matched)
	result, _ = e.Process(model.StageReconciliation, m{"Reconciliation": m{"ReconID": "RECON-Y"}})
	require.True(t, result.Matched)
	assert.Equal(t, "RECON_ESCALATED", result.Result["status"])

	require.NoError(t, e.DeleteRule(rule.ID))
	_, err = e.GetRule(rule.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)
	result, _ = e.Process(model.StageReconciliation, m{"Reconciliation": m{"ReconID": "RECON-Y"}})
	assert.False(t, result.Matched)
}

func TestListRulesStageFilter(t *testing.T) {
	e := NewEngine(nil)
	e.Seed()

	all := e.ListRules("")
	eligibility := e.ListRules(model.StageCheckEligibility)
	assert.Greater(t, len(all), len(eligibility))
	for _, r := range eligibility {
		assert.Equal(t, model.StageCheckEligibility, r.Stage)
	}
}

func TestUniqueIndexSnapshot(t *testing.T) {
	e := NewEngine(nil)
	e.Seed()

	idx := e.UniqueIndex()
	for _, stage := range model.AllStages() {
		assert.NotEmpty(t, idx[stage], "stage %s has no indexed rules", stage)
	}

	// Mutating the snapshot must not touch the engine.
	for comp := range idx[model.StageCheckEligibility] {
		delete(idx[model.StageCheckEligibility], comp)
	}
	result, _ := e.Process(model.StageCheckEligibility,
		m{"Claim": m{"ID": "CLM-ELG-0001", "MemberID": "784-1987-1234567-1"}})
	assert.True(t, result.Matched)
}

func TestEventsRecordedOnLookup(t *testing.T) {
	var sunk []model.Event
	e := NewEngine(func(ev model.Event) { sunk = append(sunk, ev) })
	e.Seed()

	e.Process(model.StageCheckEligibility, m{"Claim": m{"ID": "CLM-NOPE", "MemberID": "784-0"}})

	events := e.Events(10)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, "no_match_index_miss", last.EventType)
	assert.NotEmpty(t, sunk)
}
