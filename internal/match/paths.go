package match

import (
	"encoding/json"
	"strconv"
	"strings"
)

// getPathValue walks a dotted path through nested maps and lists. Each
// segment prefers an exact key, then falls back to the first
// case-insensitive key; numeric segments index into lists.
func getPathValue(obj interface{}, path string) interface{} {
	if obj == nil {
		return nil
	}
	cur := obj
	for _, part := range strings.Split(path, ".") {
		if idx, err := strconv.Atoi(part); err == nil {
			list, ok := cur.([]interface{})
			if !ok || idx < 0 || idx >= len(list) {
				return nil
			}
			cur = list[idx]
			continue
		}
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		if v, ok := m[part]; ok {
			cur = v
			continue
		}
		found := false
		for k, v := range m {
			if strings.EqualFold(k, part) {
				cur = v
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	return cur
}

// findFirstKey recursively searches for the first value stored under a key
// (case-insensitive), depth-first through maps and lists.
func findFirstKey(obj interface{}, key string) interface{} {
	switch v := obj.(type) {
	case map[string]interface{}:
		if val, ok := v[key]; ok {
			return val
		}
		for k, val := range v {
			if strings.EqualFold(k, key) {
				return val
			}
		}
		for _, val := range v {
			if found := findFirstKey(val, key); found != nil {
				return found
			}
		}
	case []interface{}:
		for _, item := range v {
			if found := findFirstKey(item, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// exactValue renders a field value for composite building: trimmed string
// form, punctuation preserved; maps and lists collapse to canonical JSON.
// Empty and nil values yield ok=false.
func exactValue(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	var s string
	switch val := v.(type) {
	case string:
		s = strings.TrimSpace(val)
	case bool:
		s = strconv.FormatBool(val)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		s = strconv.Itoa(val)
	case int64:
		s = strconv.FormatInt(val, 10)
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		s = string(b)
	default:
		b, _ := json.Marshal(val)
		s = string(b)
	}
	if s == "" {
		return "", false
	}
	return s, true
}
