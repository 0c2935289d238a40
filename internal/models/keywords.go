package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Keywords decodes from either a JSON array of strings or a single
// comma-separated string. Blank entries are dropped.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*k = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*k = cleanKeywords(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("skills must be a string or an array of strings: %w", err)
	}
	*k = cleanKeywords(strings.Split(single, ","))
	return nil
}

func cleanKeywords(in []string) Keywords {
	out := make(Keywords, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
