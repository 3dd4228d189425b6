package ingest

import "rcm-workflow/internal/model"

// IsReady reports whether a candidate batch is endpoint-ready for a stage:
// every record must match at least one registry variant. An empty batch is
// never ready — absence of data must not be silently treated as valid.
// A single non-matching record fails the whole batch.
func IsReady(stage model.StageID, records []model.CanonicalRecord) bool {
	if len(records) == 0 {
		return false
	}
	variants := Variants(stage)
	if len(variants) == 0 {
		return false
	}
	for _, rec := range records {
		if !matchesAny(rec, variants) {
			return false
		}
	}
	return true
}

func matchesAny(rec model.CanonicalRecord, variants []model.ShapeVariant) bool {
	for _, v := range variants {
		if v.Matches(rec) {
			return true
		}
	}
	return false
}
