package match

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"rcm-workflow/pkg/utils"
)

// interpretSummary produces a deterministic human-readable summary of a
// stage outcome for UI display.
func interpretSummary(result map[string]interface{}) string {
	if hrs, ok := result["human_readable_summary"].(string); ok && hrs != "" {
		return "Summary: " + hrs
	}

	var parts []string

	if label := firstNonNil(result["outcome_label"], result["outcome_code"]); label != nil {
		parts = append(parts, fmt.Sprintf("Summary: %v.", label))
		if desc, ok := result["description"].(string); ok && desc != "" {
			parts = append(parts, desc)
		}
	} else if label := firstNonNil(result["status_label"], result["submission_status"],
		result["doc_status"], result["coding_status"], result["scrub_status"],
		result["resubmission_status"], result["denial_management_status"],
		result["status"], result["prior_auth_id"]); label != nil {
		parts = append(parts, fmt.Sprintf("Summary: %v.", label))
	}

	if patient, ok := result["patient"].(map[string]interface{}); ok {
		var pparts []string
		if name := patient["name"]; name != nil {
			pparts = append(pparts, fmt.Sprintf("Name=%v", name))
		}
		if pid := firstNonNil(patient["patient_id"], patient["member_id"]); pid != nil {
			pparts = append(pparts, fmt.Sprintf("ID=%v", pid))
		}
		if dob := patient["dob"]; dob != nil {
			pparts = append(pparts, fmt.Sprintf("DOB=%v", dob))
		}
		if len(pparts) > 0 {
			parts = append(parts, "Patient: "+strings.Join(pparts, ", ")+".")
		}
	}

	if amt, ok := result["settlement_amount"]; ok {
		parts = append(parts, fmt.Sprintf("Record has been reconciled; total amount received is %s.", formatCurrency(amt)))
		if ref := result["claim_ref_id"]; ref != nil {
			parts = append(parts, fmt.Sprintf("Claim reference: %v.", ref))
		}
	}
	if _, hasPaid := result["paid_amount"]; hasPaid || result["remit_id"] != nil {
		if paid := result["paid_amount"]; paid != nil {
			parts = append(parts, fmt.Sprintf("Payment recorded: %s.", formatCurrency(paid)))
		}
		if rid := result["remit_id"]; rid != nil {
			parts = append(parts, fmt.Sprintf("Remittance ID: %v.", rid))
		}
		if ref := result["claim_ref_id"]; ref != nil {
			parts = append(parts, fmt.Sprintf("Claim reference: %v.", ref))
		}
	}

	if len(parts) == 0 {
		b, err := json.Marshal(result)
		if err != nil {
			return fmt.Sprintf("Summary: %v", result)
		}
		brief := string(b)
		if len(brief) > 800 {
			brief = brief[:800] + "..."
		}
		return "Summary: " + brief
	}

	final := strings.Join(parts, " ")
	if !strings.HasPrefix(strings.ToLower(final), "summary") {
		final = "Summary: " + final
	}
	return final
}

func formatCurrency(amount interface{}) string {
	switch amount.(type) {
	case float64, float32, int, int64:
		f := utils.Numeric(amount)
		if f == math.Trunc(f) {
			return fmt.Sprintf("%d Dirham (AED)", int64(f))
		}
		return fmt.Sprintf("%.2f Dirham (AED)", f)
	default:
		return fmt.Sprintf("%v", amount)
	}
}
