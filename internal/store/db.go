package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"rcm-workflow/internal/model"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
)

var db *sql.DB

// Initialize DB connection
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	// Create tables if not exists
	uploadTable := `
	CREATE TABLE IF NOT EXISTS uploads (
		id TEXT PRIMARY KEY,
		stage TEXT,
		file_name TEXT,
		status TEXT,
		reason TEXT,
		record_count INTEGER,
		payload BLOB,
		created_at DATETIME
	);
	`
	submissionTable := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		upload_id TEXT,
		stage TEXT,
		status_code INTEGER,
		body TEXT,
		error_message TEXT,
		submitted_at DATETIME
	);
	`
	eventTable := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		actor TEXT,
		stage TEXT,
		event_type TEXT,
		payload_summary TEXT,
		reference_ids TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{uploadTable, submissionTable, eventTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveUpload stores one upload outcome. The staged payload snapshot is
// encoded with msgpack to keep the blob compact.
func SaveUpload(outcome *model.UploadOutcome) error {
	var payload []byte
	if len(outcome.Records) > 0 {
		var err error
		payload, err = msgpack.Marshal(outcome.Records)
		if err != nil {
			return err
		}
	}
	_, err := db.Exec(
		`INSERT INTO uploads (id, stage, file_name, status, reason, record_count, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.ID, string(outcome.Stage), outcome.FileName, string(outcome.Status),
		outcome.Reason, outcome.RecordCount, payload, outcome.CreatedAt)
	return err
}

// GetUpload fetches one upload outcome, decoding its staged payload.
func GetUpload(id string) (*model.UploadOutcome, error) {
	var (
		outcome model.UploadOutcome
		stage   string
		status  string
		payload []byte
	)
	err := db.QueryRow(
		`SELECT id, stage, file_name, status, reason, record_count, payload, created_at
		 FROM uploads WHERE id = ?`, id).
		Scan(&outcome.ID, &stage, &outcome.FileName, &status, &outcome.Reason,
			&outcome.RecordCount, &payload, &outcome.CreatedAt)
	if err != nil {
		return nil, err
	}
	outcome.Stage = model.StageID(stage)
	outcome.Status = model.UploadStatus(status)
	if len(payload) > 0 {
		if err := msgpack.Unmarshal(payload, &outcome.Records); err != nil {
			return nil, err
		}
	}
	return &outcome, nil
}

// ListUploads returns basic info for recent uploads, newest first.
func ListUploads(limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(
		`SELECT id, stage, file_name, status, reason, record_count, created_at
		 FROM uploads ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []map[string]interface{}
	for rows.Next() {
		var id, stage, fileName, status, reason string
		var recordCount int
		var createdAt time.Time
		if err := rows.Scan(&id, &stage, &fileName, &status, &reason, &recordCount, &createdAt); err != nil {
			return nil, err
		}
		uploads = append(uploads, map[string]interface{}{
			"id":          id,
			"stage":       stage,
			"fileName":    fileName,
			"status":      status,
			"reason":      reason,
			"recordCount": recordCount,
			"createdAt":   createdAt,
		})
	}
	return uploads, rows.Err()
}

// SaveSubmission records the backend response for a submitted payload.
func SaveSubmission(res model.SubmissionResult) error {
	body, err := json.Marshal(res.Body)
	if err != nil {
		body = []byte("null")
	}
	_, err = db.Exec(
		`INSERT INTO submissions (upload_id, stage, status_code, body, error_message, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.UploadID, string(res.Stage), res.StatusCode, string(body), res.Error, res.SubmittedAt)
	return err
}

// GetSubmissions returns submissions for an upload, oldest first.
func GetSubmissions(uploadID string) ([]model.SubmissionResult, error) {
	rows, err := db.Query(
		`SELECT upload_id, stage, status_code, body, error_message, submitted_at
		 FROM submissions WHERE upload_id = ? ORDER BY submitted_at ASC`, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SubmissionResult
	for rows.Next() {
		var res model.SubmissionResult
		var stage, body string
		if err := rows.Scan(&res.UploadID, &stage, &res.StatusCode, &body, &res.Error, &res.SubmittedAt); err != nil {
			return nil, err
		}
		res.Stage = model.StageID(stage)
		if body != "" {
			_ = json.Unmarshal([]byte(body), &res.Body)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// SaveEvent persists one claim engine audit event.
func SaveEvent(ev model.Event) error {
	summary, err := json.Marshal(ev.PayloadSummary)
	if err != nil {
		summary = []byte("{}")
	}
	refs, err := json.Marshal(ev.ReferenceIDs)
	if err != nil {
		refs = []byte("{}")
	}
	_, err = db.Exec(
		`INSERT INTO events (actor, stage, event_type, payload_summary, reference_ids, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Actor, string(ev.Stage), ev.EventType, string(summary), string(refs), ev.Timestamp)
	return err
}
