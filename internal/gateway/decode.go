// Copyright (c) 2026 SkillHub. All rights reserved.

package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExtractList decodes an upstream list payload into dst.
//
// The marketplace API is inconsistent about list envelopes: some endpoints
// return a bare JSON array, others wrap it as {"<key>": [...]}. Both shapes
// are accepted; a wrapped payload without the key leaves dst untouched, which
// callers treat as an empty result.
func ExtractList(raw json.RawMessage, key string, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return fmt.Errorf("gateway: decode %s list: %w", key, err)
		}
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return fmt.Errorf("gateway: decode %s envelope: %w", key, err)
	}

	inner, ok := wrapper[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(inner, dst); err != nil {
		return fmt.Errorf("gateway: decode %s list: %w", key, err)
	}
	return nil
}

// Number is a numeric field the upstream serializes inconsistently, as a JSON
// number or a numeric string. Absent, null, and empty-string values decode
// to zero.
type Number float64

// UnmarshalJSON accepts 4, "4", and "4.5".
func (number *Number) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if trimmed == "" || trimmed == "null" {
		*number = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("gateway: decode numeric field %q: %w", trimmed, err)
	}
	*number = Number(parsed)
	return nil
}

// MarshalJSON renders the value as a plain JSON number.
func (number Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(number), 'f', -1, 64)), nil
}
