package zimbra

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Loosely-typed helpers for picking values out of decoded server
// responses. Wrong-shaped data degrades to zero values instead of
// panicking.

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

// digSlice walks nested maps along keys and returns the slice at the end
// of the path, or nil when any level is missing or wrong-shaped.
func digSlice(m map[string]interface{}, keys ...string) []interface{} {
	current := m
	for i, key := range keys {
		if i == len(keys)-1 {
			return asSlice(current[key])
		}
		current = asMap(current[key])
		if current == nil {
			return nil
		}
	}
	return nil
}

// idString renders a folder or item id the way it appears in a search
// query, regardless of whether the server sent it as a number or string.
func idString(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(n)
	}
}

// numberValue reads a numeric JSON field, tolerating string-encoded
// numbers. Missing or unparseable values read as 0.
func numberValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
