package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"rcm-workflow/internal/model"
	"rcm-workflow/pkg/utils"

	"github.com/google/uuid"
)

// State names for one upload attempt.
type State string

const (
	StateIdle         State = "idle"
	StateReading      State = "reading"
	StateParsingJSON  State = "parsing-json"
	StateParsingCSV   State = "parsing-csv"
	StateTransforming State = "transforming"
	StateValidating   State = "validating"
	StateAccepted     State = "accepted"
	StateRejected     State = "rejected"
)

// Rejection reasons surfaced to the user.
var (
	ErrParse          = errors.New("file could not be parsed")
	ErrMissingColumns = errors.New("missing required columns")
	ErrShapeMismatch  = errors.New("does not match required ingestion shape")
)

// FileSource is the minimal contract the orchestrator needs from a
// user-selected file: its name (for extension routing) and its text.
type FileSource interface {
	Name() string
	Text(ctx context.Context) (string, error)
}

// Orchestrator drives one upload at a time through reading, parsing,
// transformation and validation. The latest file selection wins: a stale
// read finishing after a newer selection never commits its outcome.
type Orchestrator struct {
	mu      sync.Mutex
	gen     uint64
	state   State
	outcome *model.UploadOutcome
}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{state: StateIdle}
}

// Outcome returns the outcome of the most recent completed upload attempt,
// or nil when none has completed since the last selection.
func (o *Orchestrator) Outcome() *model.UploadOutcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

// State returns the current state of the upload state machine.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Ingest runs one file through the pipeline and returns its outcome. Any
// prior outcome is discarded immediately on entry. The returned outcome is
// always the one for this call; it is committed as the orchestrator's
// current outcome only if no newer selection happened during the read.
func (o *Orchestrator) Ingest(ctx context.Context, stage model.StageID, src FileSource) *model.UploadOutcome {
	o.mu.Lock()
	o.gen++
	myGen := o.gen
	o.outcome = nil
	o.state = StateReading
	o.mu.Unlock()

	outcome := &model.UploadOutcome{
		ID:        "UPL-" + uuid.New().String()[:10],
		Stage:     stage,
		FileName:  src.Name(),
		CreatedAt: time.Now().UTC(),
	}

	text, err := src.Text(ctx)
	if err != nil {
		outcome.Status = model.UploadRejectedParse
		outcome.Reason = fmt.Sprintf("%v: %v", ErrParse, err)
		return o.commit(myGen, outcome)
	}

	var records []model.CanonicalRecord
	if utils.FileType(src.Name()) == "json" {
		o.setState(myGen, StateParsingJSON)
		records, err = parseJSONUpload(text)
	} else {
		o.setState(myGen, StateParsingCSV)
		var rows []model.RawRow
		rows, err = ParseCSV(text)
		if err == nil {
			o.setState(myGen, StateTransforming)
			records, err = transformRows(rows, stage)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingColumns), errors.Is(err, ErrShapeMismatch):
			outcome.Status = model.UploadRejectedShape
		default:
			outcome.Status = model.UploadRejectedParse
		}
		outcome.Reason = err.Error()
		return o.commit(myGen, outcome)
	}

	o.setState(myGen, StateValidating)
	if !IsReady(stage, records) {
		outcome.Status = model.UploadRejectedShape
		outcome.Reason = ErrShapeMismatch.Error()
		return o.commit(myGen, outcome)
	}

	outcome.Status = model.UploadAccepted
	outcome.Records = records
	outcome.RecordCount = len(records)
	fmt.Printf("📄 Upload %s accepted for %s: %d record(s) staged\n", outcome.ID, stage, len(records))
	return o.commit(myGen, outcome)
}

// commit installs the outcome only when no newer selection superseded it.
func (o *Orchestrator) commit(gen uint64, outcome *model.UploadOutcome) *model.UploadOutcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gen != gen {
		return outcome // stale read: result returned to its caller, never committed
	}
	o.outcome = outcome
	if outcome.Status == model.UploadAccepted {
		o.state = StateAccepted
	} else {
		o.state = StateRejected
	}
	return outcome
}

func (o *Orchestrator) setState(gen uint64, s State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gen == gen {
		o.state = s
	}
}

// transformRows applies the stage recipe to every row in order, aborting
// on the first row that cannot be transformed.
func transformRows(rows []model.RawRow, stage model.StageID) ([]model.CanonicalRecord, error) {
	records := make([]model.CanonicalRecord, 0, len(rows))
	for i, row := range rows {
		rec := TransformRow(row, stage)
		if rec == nil {
			return nil, fmt.Errorf("%w for stage %s (row %d)", ErrMissingColumns, stage, i+1)
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseJSONUpload parses a JSON upload. A single object is wrapped into a
// one-element array; there is no transformation step for JSON, the content
// must already be in canonical shape.
func parseJSONUpload(text string) ([]model.CanonicalRecord, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	switch data := raw.(type) {
	case map[string]interface{}:
		return []model.CanonicalRecord{model.CanonicalRecord(data)}, nil
	case []interface{}:
		records := make([]model.CanonicalRecord, 0, len(data))
		for _, item := range data {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: array element is not an object", ErrShapeMismatch)
			}
			records = append(records, model.CanonicalRecord(m))
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: top-level JSON value is not an object or array", ErrShapeMismatch)
	}
}

// ParseCSV splits raw CSV text into rows keyed by the first non-empty
// header line. The dialect is deliberately simple: comma-delimited,
// surrounding double quotes stripped, no escaped-comma support.
func ParseCSV(text string) ([]model.RawRow, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var headers []string
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		headers = splitLine(line)
		start = i + 1
		break
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no header row", ErrParse)
	}

	var rows []model.RawRow
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitLine(line)
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				values[h] = cells[i]
			}
		}
		rows = append(rows, model.RawRow{Headers: headers, Values: values})
	}
	return rows, nil
}

func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return out
}
