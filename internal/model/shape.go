package model

// ShapeVariant describes one acceptable "endpoint-ready" payload shape for
// a stage: a wrapper key whose value must carry all required sub-keys, or,
// when Wrapper is empty, required top-level keys on the record itself.
type ShapeVariant struct {
	Wrapper  string   `json:"wrapper,omitempty"`
	Required []string `json:"required"`
}

// Matches reports whether a record satisfies this variant.
func (v ShapeVariant) Matches(rec CanonicalRecord) bool {
	if rec == nil {
		return false
	}
	target := map[string]interface{}(rec)
	if v.Wrapper != "" {
		inner, ok := rec[v.Wrapper].(map[string]interface{})
		if !ok {
			return false
		}
		target = inner
	}
	for _, key := range v.Required {
		if _, ok := target[key]; !ok {
			return false
		}
	}
	return true
}
