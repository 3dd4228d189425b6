package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretSummaryPrefersHumanReadable(t *testing.T) {
	got := interpretSummary(m{"human_readable_summary": "All good", "outcome_label": "Eligible"})
	assert.Equal(t, "Summary: All good", got)
}

func TestInterpretSummaryOutcomeAndDescription(t *testing.T) {
	got := interpretSummary(m{"outcome_label": "Eligible", "description": "Member active"})
	assert.Contains(t, got, "Summary: Eligible.")
	assert.Contains(t, got, "Member active")
}

func TestInterpretSummarySettlementCurrency(t *testing.T) {
	got := interpretSummary(m{"settlement_amount": 100.0, "claim_ref_id": "CLM-1"})
	assert.Contains(t, got, "100 Dirham (AED)")
	assert.Contains(t, got, "CLM-1")

	got = interpretSummary(m{"settlement_amount": 80.5})
	assert.Contains(t, got, "80.50 Dirham (AED)")
}

func TestInterpretSummaryRemittance(t *testing.T) {
	got := interpretSummary(m{"paid_amount": 60.0, "remit_id": "RA-1", "claim_ref_id": "CLM-1"})
	assert.Contains(t, got, "60 Dirham (AED)")
	assert.Contains(t, got, "RA-1")
}

func TestInterpretSummaryFallbackIsJSONBrief(t *testing.T) {
	got := interpretSummary(m{"unrecognized": "value"})
	assert.Contains(t, got, "Summary: ")
	assert.Contains(t, got, "unrecognized")
}

func TestGetPathValue(t *testing.T) {
	obj := m{
		"Claim": m{
			"ID":       "CLM-1",
			"Activity": []interface{}{m{"Code": "30520"}},
		},
	}
	assert.Equal(t, "CLM-1", getPathValue(obj, "Claim.ID"))
	assert.Equal(t, "30520", getPathValue(obj, "Claim.Activity.0.Code"))
	assert.Nil(t, getPathValue(obj, "Claim.Activity.5.Code"))
	assert.Nil(t, getPathValue(obj, "Claim.Missing"))

	// Case-insensitive fallback per segment.
	assert.Equal(t, "CLM-1", getPathValue(obj, "claim.id"))
}

func TestFindFirstKey(t *testing.T) {
	obj := m{"Outer": m{"Inner": []interface{}{m{"MemberID": "784-1"}}}}
	assert.Equal(t, "784-1", findFirstKey(obj, "MemberID"))
	assert.Equal(t, "784-1", findFirstKey(obj, "memberid"))
	assert.Nil(t, findFirstKey(obj, "Absent"))
}

func TestExactValue(t *testing.T) {
	s, ok := exactValue(" CLM-1 ")
	assert.True(t, ok)
	assert.Equal(t, "CLM-1", s)

	s, ok = exactValue(150.0)
	assert.True(t, ok)
	assert.Equal(t, "150", s)

	s, ok = exactValue(true)
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	_, ok = exactValue(nil)
	assert.False(t, ok)
	_, ok = exactValue("   ")
	assert.False(t, ok)
}
