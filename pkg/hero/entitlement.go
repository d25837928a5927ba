package hero

import (
	"encoding/json"
	"strings"
)

// IsEntitled normalizes the legacy encodings of the entitlement flag. Only
// true, any casing of "true", and the integer 1 grant access.
func IsEntitled(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	case int:
		return v == 1
	case int32:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case json.Number:
		n, err := v.Int64()
		return err == nil && n == 1
	default:
		return false
	}
}

// EntitledJSON evaluates a stored JSON value. Empty or malformed input denies.
func EntitledJSON(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return false
	}
	return IsEntitled(raw)
}

// HasEliteAccess reports whether p unlocks gameplay. A missing profile does not.
func HasEliteAccess(p *Profile) bool {
	if p == nil {
		return false
	}
	return p.Entitled
}
