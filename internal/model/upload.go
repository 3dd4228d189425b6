package model

import "time"

// CanonicalRecord is a single record expressed in a stage's canonical
// ingestion shape, e.g. {"Claim": {"ID": ..., "MemberID": ...}}.
type CanonicalRecord map[string]interface{}

// RawRow is one parsed CSV data row. Headers preserves file order so that
// tolerant field resolution has a deterministic "first header wins" rule.
type RawRow struct {
	Headers []string          `json:"headers"`
	Values  map[string]string `json:"values"`
}

// Get returns the value for an exact header name.
func (r RawRow) Get(header string) (string, bool) {
	v, ok := r.Values[header]
	return v, ok
}

// UploadStatus is the tri-state verdict of one upload attempt.
type UploadStatus string

const (
	UploadAccepted      UploadStatus = "accepted"
	UploadRejectedShape UploadStatus = "rejected-shape"
	UploadRejectedParse UploadStatus = "rejected-parse"
)

// UploadOutcome is the result of running one file through the ingestion
// pipeline. Replaced wholesale on every new file selection.
type UploadOutcome struct {
	ID          string            `json:"id"`
	Stage       StageID           `json:"stage"`
	FileName    string            `json:"file_name"`
	Status      UploadStatus      `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Records     []CanonicalRecord `json:"records,omitempty"`
	RecordCount int               `json:"record_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Accepted reports whether the staged payload may be submitted.
func (o *UploadOutcome) Accepted() bool {
	return o != nil && o.Status == UploadAccepted
}

// SubmissionResult captures the backend response for a submitted payload.
type SubmissionResult struct {
	UploadID    string      `json:"upload_id"`
	Stage       StageID     `json:"stage"`
	StatusCode  int         `json:"status_code"`
	Body        interface{} `json:"body,omitempty"`
	Error       string      `json:"error,omitempty"`
	SubmittedAt time.Time   `json:"submitted_at"`
}
