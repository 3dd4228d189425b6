package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"rcm-workflow/internal/match"
	"rcm-workflow/internal/model"
)

// ruleRequest is the admin create/update payload for a match rule.
type ruleRequest struct {
	Stage            string                 `json:"stage"`
	Outcome          map[string]interface{} `json:"outcome"`
	ReferenceExample map[string]interface{} `json:"reference_example"`
	Priority         int                    `json:"priority"`
}

// CreateRule adds a new match rule
// @Summary Create rule
// @Description Add a match rule for a stage. The rule is indexed when its reference example carries the stage's unique fields.
// @Tags admin
// @Accept json
// @Produce json
// @Param rule body ruleRequest true "Rule definition"
// @Success 201 {object} model.Rule "Created rule"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Router /admin/rules [post]
func CreateRule(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	stage, ok := model.ParseStage(req.Stage)
	if !ok {
		http.Error(w, "Unknown stage", http.StatusBadRequest)
		return
	}
	if len(req.Outcome) == 0 {
		http.Error(w, "Rule outcome is required", http.StatusBadRequest)
		return
	}
	if len(req.ReferenceExample) == 0 {
		http.Error(w, "Rule reference example is required", http.StatusBadRequest)
		return
	}

	rule := engine.AddRule(stage, req.Outcome, req.ReferenceExample, req.Priority)
	writeJSON(w, http.StatusCreated, rule)
}

// ListRules lists match rules
// @Summary List rules
// @Tags admin
// @Produce json
// @Param stage query string false "Filter by stage ID"
// @Success 200 {object} map[string]interface{} "Rules"
// @Router /admin/rules [get]
func ListRules(w http.ResponseWriter, r *http.Request) {
	var stage model.StageID
	if raw := r.URL.Query().Get("stage"); raw != "" {
		s, ok := model.ParseStage(raw)
		if !ok {
			http.Error(w, "Unknown stage", http.StatusBadRequest)
			return
		}
		stage = s
	}

	rules := engine.ListRules(stage)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rules": rules,
		"count": len(rules),
	})
}

// GetRule retrieves one match rule
// @Summary Get rule
// @Tags admin
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} model.Rule "Rule"
// @Failure 404 {object} map[string]interface{} "Rule not found"
// @Router /admin/rules/{id} [get]
func GetRule(w http.ResponseWriter, r *http.Request) {
	ruleID := pathSegment(r, 4)
	if ruleID == "" {
		http.Error(w, "Rule ID is required", http.StatusBadRequest)
		return
	}

	rule, err := engine.GetRule(ruleID)
	if err != nil {
		http.Error(w, "Rule not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// UpdateRule replaces a match rule
// @Summary Update rule
// @Description Replace a rule's stage, outcome, reference example and priority, rebuilding the affected stage indexes
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body ruleRequest true "Rule definition"
// @Success 200 {object} model.Rule "Updated rule"
// @Failure 400 {object} map[string]interface{} "Invalid payload"
// @Failure 404 {object} map[string]interface{} "Rule not found"
// @Router /admin/rules/{id} [put]
func UpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID := pathSegment(r, 4)
	if ruleID == "" {
		http.Error(w, "Rule ID is required", http.StatusBadRequest)
		return
	}

	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	stage, ok := model.ParseStage(req.Stage)
	if !ok {
		http.Error(w, "Unknown stage", http.StatusBadRequest)
		return
	}

	rule, err := engine.UpdateRule(ruleID, stage, req.Outcome, req.ReferenceExample, req.Priority)
	if err == match.ErrRuleNotFound {
		http.Error(w, "Rule not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update rule", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// DeleteRule removes a match rule
// @Summary Delete rule
// @Tags admin
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} map[string]interface{} "Rule deleted"
// @Failure 404 {object} map[string]interface{} "Rule not found"
// @Router /admin/rules/{id} [delete]
func DeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID := pathSegment(r, 4)
	if ruleID == "" {
		http.Error(w, "Rule ID is required", http.StatusBadRequest)
		return
	}

	if err := engine.DeleteRule(ruleID); err != nil {
		http.Error(w, "Rule not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Rule deleted",
		"rule_id": ruleID,
	})
}

// GET /api/v1/admin/unique-index
func GetUniqueIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, engine.UniqueIndex())
}

// GET /api/v1/debug/events
func GetEvents(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events := engine.Events(limit)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
		"limit":  limit,
	})
}
