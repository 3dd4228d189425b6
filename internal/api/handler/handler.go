package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"rcm-workflow/internal/client"
	"rcm-workflow/internal/ingest"
	"rcm-workflow/internal/match"
	"rcm-workflow/internal/store"
)

var (
	orch    *ingest.Orchestrator
	engine  *match.Engine
	backend *client.Client
	claims  *store.ClaimStore // nil when no claim store is configured
)

// Init wires the shared components into the handler package.
func Init(e *match.Engine, o *ingest.Orchestrator, c *client.Client, cs *store.ClaimStore) {
	engine = e
	orch = o
	backend = c
	claims = cs
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// pathSegment extracts the idx-th segment of a trimmed URL path.
// "/api/v1/uploads/UPL-1/submit" -> segment 3 is "UPL-1".
func pathSegment(r *http.Request, idx int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if idx < 0 || idx >= len(parts) {
		return ""
	}
	return parts[idx]
}
