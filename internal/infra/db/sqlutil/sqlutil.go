// Package sqlutil holds helpers shared by the SQL record stores.
package sqlutil

import (
	"encoding/json"
	"fmt"
)

// EncodeList stores a string list as a JSON array; nil becomes "[]".
func EncodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeList is the inverse of EncodeList. Empty input yields an empty list.
func DecodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode list column: %w", err)
	}
	return out, nil
}

// LimitOrDefault applies the default for non-positive limits.
func LimitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
