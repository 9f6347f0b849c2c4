package http

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// documentBytes normalizes a request document to raw JSON bytes. Clients may
// send the Blueprint document either as an inline JSON object or as a JSON
// string containing serialized JSON.
func documentBytes(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("invalid document string: %w", err)
		}
		return []byte(inner), nil
	}

	return trimmed, nil
}
