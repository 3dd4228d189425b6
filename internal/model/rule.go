package model

import "time"

// Rule is one seeded or admin-created match rule for the claim engine.
// An incoming payload matches when its unique-field composite equals the
// composite built from the rule's reference example.
type Rule struct {
	ID               string                 `json:"id"`
	Stage            StageID                `json:"stage"`
	Outcome          map[string]interface{} `json:"outcome"`
	Priority         int                    `json:"priority"`
	ReferenceExample map[string]interface{} `json:"reference_example"`
	CreatedAt        time.Time              `json:"created_at"`
}

// Event is one audit trail entry recorded by the claim engine.
type Event struct {
	Timestamp      time.Time              `json:"timestamp"`
	Actor          string                 `json:"actor"`
	Stage          StageID                `json:"stage"`
	EventType      string                 `json:"event_type"`
	PayloadSummary map[string]interface{} `json:"payload_summary"`
	ReferenceIDs   map[string]string      `json:"reference_ids"`
}

// StageResult is the claim engine's response for one processed record.
type StageResult struct {
	Matched bool                   `json:"matched"`
	Stage   StageID                `json:"stage,omitempty"`
	Result  map[string]interface{} `json:"result,omitempty"`
	Summary string                 `json:"summary,omitempty"`
	Message string                 `json:"message,omitempty"`
}
