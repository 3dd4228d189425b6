package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rcm-workflow/internal/ingest"
	"rcm-workflow/internal/model"
	"rcm-workflow/internal/store"
)

// ListStages returns the ten workflow stages
// @Summary List workflow stages
// @Description List all workflow stages with their labels, expected fields and accepted ingestion shapes
// @Tags stages
// @Produce json
// @Success 200 {object} map[string]interface{} "Stage catalog"
// @Router /stages [get]
func ListStages(w http.ResponseWriter, r *http.Request) {
	stages := make([]map[string]interface{}, 0, 10)
	for _, s := range model.AllStages() {
		stages = append(stages, map[string]interface{}{
			"id":              s,
			"label":           s.Label(),
			"expected_fields": model.ExpectedFields[s],
			"shapes":          ingest.Variants(s),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stages": stages,
		"count":  len(stages),
	})
}

// ProcessStage matches incoming payloads against the stage's rules
// @Summary Process stage payload
// @Description Match a JSON object, JSON array or raw CSV payload against the stage's seeded rules. Unmatched single payloads return 404 with the invalid-credential response.
// @Tags stages
// @Accept json
// @Produce json
// @Param stage path string true "Workflow stage ID"
// @Success 200 {object} model.StageResult "Match result(s)"
// @Failure 400 {object} map[string]interface{} "Unknown stage or unparseable payload"
// @Failure 404 {object} map[string]interface{} "No rule matched"
// @Router /stages/{stage}/process [post]
func ProcessStage(w http.ResponseWriter, r *http.Request) {
	stage, ok := model.ParseStage(pathSegment(r, 3))
	if !ok {
		http.Error(w, "Unknown stage", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	payloads, err := parseProcessPayload(body, stage)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(payloads) == 1 {
		result, composite := engine.Process(stage, payloads[0])
		if composite != "" {
			w.Header().Set("X-Sim-Incoming-Composite", composite)
		}
		if !result.Matched {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"message": result.Message})
			return
		}
		trackClaim(r.Context(), stage, payloads[0])
		writeJSON(w, http.StatusOK, result)
		return
	}

	results := make([]model.StageResult, 0, len(payloads))
	composites := make([]string, 0, len(payloads))
	matched := 0
	for _, p := range payloads {
		result, composite := engine.Process(stage, p)
		if result.Matched {
			matched++
			trackClaim(r.Context(), stage, p)
		}
		results = append(results, result)
		composites = append(composites, composite)
	}
	w.Header().Set("X-Sim-Incoming-Composites", strings.Join(composites, ";"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stage":   stage,
		"results": results,
		"count":   len(results),
		"matched": matched,
	})
}

// parseProcessPayload decodes a processing request body: a JSON object, a
// JSON array of objects, or raw CSV text transformed with the stage recipe.
func parseProcessPayload(body []byte, stage model.StageID) ([]map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("empty request body")
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(trimmed), &raw); err == nil {
		switch data := raw.(type) {
		case map[string]interface{}:
			return []map[string]interface{}{data}, nil
		case []interface{}:
			payloads := make([]map[string]interface{}, 0, len(data))
			for _, item := range data {
				m, ok := item.(map[string]interface{})
				if !ok {
					return nil, fmt.Errorf("array elements must be objects")
				}
				payloads = append(payloads, m)
			}
			return payloads, nil
		default:
			return nil, fmt.Errorf("payload must be a JSON object or array")
		}
	}

	// Not JSON: treat as CSV and run it through the stage recipe.
	rows, err := ingest.ParseCSV(trimmed)
	if err != nil {
		return nil, fmt.Errorf("payload is neither JSON nor CSV: %v", err)
	}
	payloads := make([]map[string]interface{}, 0, len(rows))
	for i, row := range rows {
		rec := ingest.TransformRow(row, stage)
		if rec == nil {
			return nil, fmt.Errorf("CSV row %d is missing required columns for stage %s", i+1, stage)
		}
		payloads = append(payloads, rec)
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("CSV payload has no data rows")
	}
	return payloads, nil
}

// trackClaim mirrors a matched payload into the optional claim store:
// eligibility creates the claim record, later stages advance it. Tracking
// failures never affect the processing response.
func trackClaim(ctx context.Context, stage model.StageID, payload map[string]interface{}) {
	if claims == nil {
		return
	}

	if stage == model.StageCheckEligibility {
		claim, _ := payload["Claim"].(map[string]interface{})
		id := stringField(claim, "ID")
		if id == "" {
			return
		}
		if _, err := claims.Create(ctx, id, stringField(claim, "MemberID"), id, string(stage), payload); err != nil {
			fmt.Printf("❌ Claim store create failed for %s: %v\n", id, err)
		}
		return
	}

	ref := claimRef(payload)
	if ref == "" {
		return
	}
	_, err := claims.Advance(ctx, ref, string(stage), payload, "processed at "+stage.Label())
	if err != nil && err != store.ErrClaimNotFound {
		fmt.Printf("❌ Claim store advance failed for %s: %v\n", ref, err)
	}
}

// claimRef digs a best-effort claim reference out of a canonical payload.
func claimRef(payload map[string]interface{}) string {
	for _, v := range payload {
		inner, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range []string{"ClaimRefID", "OriginalClaimRefID", "ClaimID", "ID", "ExternalID"} {
			if ref := stringField(inner, key); ref != "" {
				return ref
			}
		}
	}
	return ""
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// GetClaim retrieves one tracked claim record
// @Summary Get tracked claim
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} store.ClaimRecord "Claim record"
// @Failure 404 {object} map[string]interface{} "Claim not found"
// @Router /claims/{id} [get]
func GetClaim(w http.ResponseWriter, r *http.Request) {
	if claims == nil {
		http.Error(w, "Claim store not configured", http.StatusServiceUnavailable)
		return
	}

	claimID := pathSegment(r, 3)
	if claimID == "" {
		http.Error(w, "Claim ID is required", http.StatusBadRequest)
		return
	}

	rec, err := claims.Get(r.Context(), claimID)
	if err == store.ErrClaimNotFound {
		http.Error(w, "Claim not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to retrieve claim", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GET /_healthz
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}
