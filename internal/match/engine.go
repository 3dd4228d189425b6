package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"rcm-workflow/internal/model"

	"github.com/google/uuid"
)

// uniqueFields configures, per stage, which dotted fields make a payload
// uniquely matchable against a seeded rule's reference example.
var uniqueFields = map[model.StageID][]string{
	model.StageCheckEligibility:      {"Claim.ID", "Claim.MemberID"},
	model.StagePriorAuthorization:    {"PriorAuthorizationRequest.RequestID"},
	model.StageClinicalDocumentation: {"ClinicalDocument.ProcedureCode", "ClinicalDocument.ClinicianID"},
	model.StageMedicalCoding:         {"Claim.ID"},
	model.StageClaimsScrubbing:       {"Claim.ExternalID"},
	model.StageClaimsSubmission:      {"ClaimSubmission.ClaimID", "ClaimSubmission.ExternalID"},
	model.StageRemittanceTracking:    {"Remittance.RemitID", "Remittance.ClaimRefID"},
	model.StageDenialManagement:      {"Denial.ClaimRefID"},
	model.StageClaimsResubmission:    {"Resubmission.OriginalClaimRefID"},
	model.StageReconciliation:        {"Reconciliation.ReconID"},
}

// Stages whose responses carry patient identifying info.
var stagesWithPatientInfo = map[model.StageID]bool{
	model.StageCheckEligibility:      true,
	model.StagePriorAuthorization:    true,
	model.StageClinicalDocumentation: true,
	model.StageMedicalCoding:         true,
	model.StageClaimsScrubbing:       true,
	model.StageClaimsSubmission:      true,
	model.StageClaimsResubmission:    true,
}

var ErrRuleNotFound = errors.New("rule not found")

// EventSink receives every audit event the engine records, e.g. for
// persistence. May be nil.
type EventSink func(model.Event)

// Engine is the exact-match claim rule engine: rules are matched by a
// composite key built from each stage's unique fields, trimmed but
// otherwise unnormalized.
type Engine struct {
	mu     sync.RWMutex
	rules  map[string]*model.Rule
	index  map[model.StageID]map[string]string // composite -> rule id
	events []model.Event
	sink   EventSink
}

func NewEngine(sink EventSink) *Engine {
	return &Engine{
		rules: make(map[string]*model.Rule),
		index: make(map[model.StageID]map[string]string),
		sink:  sink,
	}
}

func genID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

// BuildComposite builds the "Short=Val||Short=Val" unique key for a stage
// from any payload. ok=false when a required field is missing or empty.
func BuildComposite(stage model.StageID, obj map[string]interface{}) (string, bool) {
	fields := uniqueFields[stage]
	if len(fields) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		short := f[strings.LastIndex(f, ".")+1:]
		val := getPathValue(obj, f)
		if val == nil {
			val = findFirstKey(obj, short)
		}
		s, ok := exactValue(val)
		if !ok {
			return "", false
		}
		parts = append(parts, short+"="+s)
	}
	return strings.Join(parts, "||"), true
}

func (e *Engine) record(actor string, stage model.StageID, eventType string, summary map[string]interface{}, refs map[string]string) {
	ev := model.Event{
		Timestamp:      time.Now().UTC(),
		Actor:          actor,
		Stage:          stage,
		EventType:      eventType,
		PayloadSummary: summary,
		ReferenceIDs:   refs,
	}
	e.events = append(e.events, ev)
	if e.sink != nil {
		e.sink(ev)
	}
}

// AddRule stores a rule and indexes it when its reference example carries
// the stage's unique fields.
func (e *Engine) AddRule(stage model.StageID, outcome, referenceExample map[string]interface{}, priority int) *model.Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addRuleLocked(stage, outcome, referenceExample, priority)
}

func (e *Engine) addRuleLocked(stage model.StageID, outcome, referenceExample map[string]interface{}, priority int) *model.Rule {
	if priority == 0 {
		priority = 100
	}
	rule := &model.Rule{
		ID:               genID("RULE"),
		Stage:            stage,
		Outcome:          outcome,
		Priority:         priority,
		ReferenceExample: referenceExample,
		CreatedAt:        time.Now().UTC(),
	}
	e.rules[rule.ID] = rule
	e.indexRuleLocked(rule)
	return rule
}

func (e *Engine) indexRuleLocked(rule *model.Rule) {
	comp, ok := BuildComposite(rule.Stage, rule.ReferenceExample)
	if !ok {
		e.record("system", rule.Stage, "seed_rule_skipped_missing_unique_fields",
			map[string]interface{}{"expected_fields": uniqueFields[rule.Stage]},
			map[string]string{"rule_id": rule.ID})
		return
	}
	stageIdx := e.index[rule.Stage]
	if stageIdx == nil {
		stageIdx = make(map[string]string)
		e.index[rule.Stage] = stageIdx
	}
	if existing, collision := stageIdx[comp]; collision && existing != rule.ID {
		e.record("system", rule.Stage, "index_collision",
			map[string]interface{}{"composite": comp, "old_rule": existing, "new_rule": rule.ID},
			map[string]string{"rule_id_old": existing, "rule_id_new": rule.ID})
	}
	stageIdx[comp] = rule.ID
}

func (e *Engine) rebuildIndexLocked(stage model.StageID) {
	e.index[stage] = make(map[string]string)
	ids := make([]string, 0)
	for id, r := range e.rules {
		if r.Stage == stage {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids) // deterministic collision order
	for _, id := range ids {
		e.indexRuleLocked(e.rules[id])
	}
}

// GetRule returns a rule by id.
func (e *Engine) GetRule(id string) (*model.Rule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.rules[id]
	if !ok {
		return nil, ErrRuleNotFound
	}
	return r, nil
}

// ListRules returns all rules, optionally filtered by stage, sorted by id.
func (e *Engine) ListRules(stage model.StageID) []*model.Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*model.Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if stage != "" && r.Stage != stage {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateRule replaces a rule's outcome, reference example and priority and
// rebuilds the stage index.
func (e *Engine) UpdateRule(id string, stage model.StageID, outcome, referenceExample map[string]interface{}, priority int) (*model.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.rules[id]
	if !ok {
		return nil, ErrRuleNotFound
	}
	oldStage := r.Stage
	r.Stage = stage
	r.Outcome = outcome
	r.ReferenceExample = referenceExample
	if priority != 0 {
		r.Priority = priority
	}
	e.rebuildIndexLocked(oldStage)
	if stage != oldStage {
		e.rebuildIndexLocked(stage)
	}
	return r, nil
}

// DeleteRule removes a rule and rebuilds its stage index.
func (e *Engine) DeleteRule(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.rules[id]
	if !ok {
		return ErrRuleNotFound
	}
	delete(e.rules, id)
	e.rebuildIndexLocked(r.Stage)
	return nil
}

// Events returns up to limit most recent audit events.
func (e *Engine) Events(limit int) []model.Event {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if limit <= 0 || limit > len(e.events) {
		limit = len(e.events)
	}
	out := make([]model.Event, limit)
	copy(out, e.events[len(e.events)-limit:])
	return out
}

// UniqueIndex exposes the per-stage composite index for inspection.
func (e *Engine) UniqueIndex() map[model.StageID]map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[model.StageID]map[string]string, len(e.index))
	for stage, m := range e.index {
		cp := make(map[string]string, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[stage] = cp
	}
	return out
}

// Process matches one incoming payload against the stage's unique index.
// Unmatched payloads get the invalid-credential response; matched ones get
// a deep copy of the rule outcome, patient info for PHI stages, and a
// deterministic human-readable summary.
func (e *Engine) Process(stage model.StageID, payload map[string]interface{}) (model.StageResult, string) {
	fields := uniqueFields[stage]
	if len(fields) == 0 {
		e.mu.Lock()
		e.record("gateway", stage, "stage_not_configured_runtime", map[string]interface{}{"stage": stage}, nil)
		e.mu.Unlock()
		return model.StageResult{Matched: false, Message: "Invalid Credential."}, ""
	}

	composite, ok := BuildComposite(stage, payload)
	if !ok {
		e.mu.Lock()
		e.record("gateway", stage, "no_match_missing_fields",
			map[string]interface{}{"expected_fields": fields}, nil)
		e.mu.Unlock()
		return model.StageResult{Matched: false, Message: "Invalid Credential."}, ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ruleID := e.index[stage][composite]
	e.record("gateway", stage, "unique_lookup_attempt",
		map[string]interface{}{"incoming_composite": composite, "found_rule": ruleID != ""}, nil)
	if ruleID == "" {
		e.record("gateway", stage, "no_match_index_miss",
			map[string]interface{}{"incoming_composite": composite}, nil)
		return model.StageResult{Matched: false, Message: "Invalid Credential."}, composite
	}

	rule := e.rules[ruleID]
	e.record("gateway", stage, "match",
		map[string]interface{}{"rule_id": ruleID, "composite": composite},
		map[string]string{"rule_id": ruleID})

	result := deepCopyMap(rule.Outcome)
	if stagesWithPatientInfo[stage] {
		if patient := extractPatientInfo(rule.ReferenceExample); len(patient) > 0 {
			existing, _ := result["patient"].(map[string]interface{})
			if existing == nil {
				existing = make(map[string]interface{})
			}
			for k, v := range patient {
				if _, present := existing[k]; !present {
					existing[k] = v
				}
			}
			result["patient"] = existing
		}
	}
	return model.StageResult{
		Matched: true,
		Stage:   stage,
		Result:  result,
		Summary: interpretSummary(result),
	}, composite
}

// extractPatientInfo digs patient identifying info out of a reference
// example: an explicit Patient node first, then MemberID/Name/DOB fallbacks.
func extractPatientInfo(obj map[string]interface{}) map[string]interface{} {
	patient := make(map[string]interface{})

	node := findFirstKey(obj, "Patient")
	if node == nil {
		node = findFirstKey(obj, "PatientInfo")
	}
	if p, ok := node.(map[string]interface{}); ok {
		patient["patient_id"] = firstNonNil(p["PatientID"], p["PatientId"], p["MemberID"], p["MemberId"], p["ID"])
		patient["name"] = firstNonNil(p["Name"], p["FullName"], p["GivenName"], p["FirstName"])
		patient["dob"] = firstNonNil(p["DOB"], p["DateOfBirth"], p["BirthDate"])
	}
	if patient["patient_id"] == nil {
		if mid := firstNonNil(findFirstKey(obj, "MemberID"), findFirstKey(obj, "MemberId")); mid != nil {
			patient["patient_id"] = mid
			patient["member_id"] = mid
		}
	}
	if patient["name"] == nil {
		patient["name"] = firstNonNil(findFirstKey(obj, "Name"), findFirstKey(obj, "PatientName"), findFirstKey(obj, "FullName"))
	}
	if patient["dob"] == nil {
		patient["dob"] = firstNonNil(findFirstKey(obj, "DOB"), findFirstKey(obj, "DateOfBirth"), findFirstKey(obj, "BirthDate"))
	}
	for k, v := range patient {
		if v == nil {
			delete(patient, k)
		}
	}
	return patient
}

func firstNonNil(vals ...interface{}) interface{} {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(val)
	case []interface{}:
		cp := make([]interface{}, len(val))
		for i, item := range val {
			cp[i] = deepCopyValue(item)
		}
		return cp
	default:
		return v
	}
}
