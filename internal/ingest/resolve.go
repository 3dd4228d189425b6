package ingest

import "strings"

// normalizeKey lowercases a header or candidate name and strips every
// non-alphanumeric character, so "Claim.ID", "claim_id" and "CLAIM ID"
// all collapse to "claimid".
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve finds the row value for the first candidate name whose normalized
// form equals a normalized header. Candidates express priority; among
// headers, the first header in file order wins. A header whose cell was
// never populated (short row) or is blank does not match — absent data
// must never resolve to a value. Returns false when no candidate yields
// a value.
func Resolve(headers []string, values map[string]string, candidates ...string) (string, bool) {
	for _, cand := range candidates {
		want := normalizeKey(cand)
		if want == "" {
			continue
		}
		for _, h := range headers {
			if normalizeKey(h) != want {
				continue
			}
			v, ok := values[h]
			if !ok || strings.TrimSpace(v) == "" {
				continue
			}
			return v, true
		}
	}
	return "", false
}

// ParseList splits a delimited string into a list of trimmed elements.
// Semicolon is preferred when present, comma otherwise; a plain string is
// a one-element list and an empty string is an empty list.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	} else if !strings.Contains(s, ",") {
		return []string{s}
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
