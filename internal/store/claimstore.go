package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClaimRecord tracks one claim's progress through the workflow stages.
type ClaimRecord struct {
	ID           string                 `json:"id"`
	MemberID     string                 `json:"member_id,omitempty"`
	ClaimID      string                 `json:"claim_id,omitempty"`
	CurrentStage string                 `json:"current_stage,omitempty"`
	LastPayload  map[string]interface{} `json:"last_payload,omitempty"`
	History      []HistoryEntry         `json:"history"`
	Version      int                    `json:"version"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// HistoryEntry is one note in a claim's stage history.
type HistoryEntry struct {
	TS    time.Time `json:"ts"`
	Note  string    `json:"note"`
	Stage string    `json:"stage,omitempty"`
}

var ErrClaimNotFound = errors.New("claim not found")

// ClaimStore is an optional Postgres-backed store that tracks claims
// across workflow stages. Enabled only when a connection URL is
// configured; the service runs fine without it.
type ClaimStore struct {
	pool *pgxpool.Pool
}

// NewClaimStore connects to Postgres and ensures the claim_store schema.
func NewClaimStore(ctx context.Context, connURL string) (*ClaimStore, error) {
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("connect claim store: %w", err)
	}
	cs := &ClaimStore{pool: pool}
	if err := cs.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return cs, nil
}

func (cs *ClaimStore) Close() {
	cs.pool.Close()
}

func (cs *ClaimStore) initSchema(ctx context.Context) error {
	_, err := cs.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS claim_store (
			id TEXT PRIMARY KEY,
			member_id TEXT,
			claim_id TEXT,
			current_stage TEXT,
			last_payload JSONB,
			history JSONB NOT NULL DEFAULT '[]',
			version INTEGER NOT NULL DEFAULT 1,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("create claim_store schema: %w", err)
	}
	return nil
}

// Create upserts a claim record, bumping the version on conflict.
func (cs *ClaimStore) Create(ctx context.Context, id, memberID, claimID, currentStage string, lastPayload map[string]interface{}) (*ClaimRecord, error) {
	payload, err := json.Marshal(lastPayload)
	if err != nil {
		return nil, err
	}
	history, _ := json.Marshal([]HistoryEntry{{TS: time.Now().UTC(), Note: "created"}})

	row := cs.pool.QueryRow(ctx, `
		INSERT INTO claim_store (id, member_id, claim_id, current_stage, last_payload, history)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		  SET member_id = EXCLUDED.member_id,
		      claim_id = EXCLUDED.claim_id,
		      current_stage = EXCLUDED.current_stage,
		      last_payload = EXCLUDED.last_payload,
		      updated_at = now(),
		      version = claim_store.version + 1
		RETURNING id, member_id, claim_id, current_stage, last_payload, history, version, updated_at
	`, id, memberID, claimID, currentStage, payload, history)
	return scanClaim(row)
}

// Get fetches one claim record by id.
func (cs *ClaimStore) Get(ctx context.Context, id string) (*ClaimRecord, error) {
	row := cs.pool.QueryRow(ctx, `
		SELECT id, member_id, claim_id, current_stage, last_payload, history, version, updated_at
		FROM claim_store WHERE id = $1
	`, id)
	rec, err := scanClaim(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	return rec, err
}

// Advance moves a claim to a new stage, appending a history note. The row
// is locked for the read-modify-write on history.
func (cs *ClaimStore) Advance(ctx context.Context, id, currentStage string, lastPayload map[string]interface{}, note string) (*ClaimRecord, error) {
	tx, err := cs.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var historyRaw []byte
	err = tx.QueryRow(ctx, `SELECT history FROM claim_store WHERE id = $1 FOR UPDATE`, id).Scan(&historyRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}

	var history []HistoryEntry
	_ = json.Unmarshal(historyRaw, &history)
	if note != "" {
		history = append(history, HistoryEntry{TS: time.Now().UTC(), Note: note, Stage: currentStage})
	}
	newHistory, _ := json.Marshal(history)

	var payload []byte
	if lastPayload != nil {
		payload, err = json.Marshal(lastPayload)
		if err != nil {
			return nil, err
		}
	}

	row := tx.QueryRow(ctx, `
		UPDATE claim_store
		SET current_stage = COALESCE(NULLIF($1, ''), current_stage),
		    last_payload = COALESCE($2, last_payload),
		    history = $3,
		    updated_at = now(),
		    version = claim_store.version + 1
		WHERE id = $4
		RETURNING id, member_id, claim_id, current_stage, last_payload, history, version, updated_at
	`, currentStage, payload, newHistory, id)
	rec, err := scanClaim(row)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

func scanClaim(row pgx.Row) (*ClaimRecord, error) {
	var (
		rec        ClaimRecord
		memberID   *string
		claimID    *string
		stage      *string
		payloadRaw []byte
		historyRaw []byte
	)
	if err := row.Scan(&rec.ID, &memberID, &claimID, &stage, &payloadRaw, &historyRaw, &rec.Version, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if memberID != nil {
		rec.MemberID = *memberID
	}
	if claimID != nil {
		rec.ClaimID = *claimID
	}
	if stage != nil {
		rec.CurrentStage = *stage
	}
	if len(payloadRaw) > 0 {
		_ = json.Unmarshal(payloadRaw, &rec.LastPayload)
	}
	if len(historyRaw) > 0 {
		_ = json.Unmarshal(historyRaw, &rec.History)
	}
	return &rec, nil
}
