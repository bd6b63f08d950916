package repository

import (
	"encoding/json"
	"strings"

	"logisticshub-service/internal/domain/repository"
)

// normalizeStoredValue classifies a raw stored value and unwraps the two
// legacy shapes that show up in practice: a double-encoded JSON string, and
// an object envelope carrying the payload in a nested "value" field. Text
// that is not JSON at all is reported as malformed with the raw preserved.
func normalizeStoredValue(raw string) repository.ReadResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return repository.ReadResult{State: repository.ReadAbsent}
	}
	if !json.Valid([]byte(trimmed)) {
		return repository.ReadResult{State: repository.ReadMalformed, Raw: raw}
	}

	// double-encoded: the stored text is a JSON string whose content is the
	// real payload
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		if json.Valid([]byte(inner)) {
			return repository.ReadResult{State: repository.ReadOk, Raw: inner}
		}
		return repository.ReadResult{State: repository.ReadOk, Raw: trimmed}
	}

	// envelope object with a nested value field
	var env struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal([]byte(trimmed), &env); err == nil && len(env.Value) > 0 {
		return normalizeStoredValue(string(env.Value))
	}

	return repository.ReadResult{State: repository.ReadOk, Raw: trimmed}
}
