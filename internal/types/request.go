package types

import "encoding/json"

// TranspileRequest carries a raw Blueprint document to transpile. Document
// may be a JSON object or a string containing serialized JSON.
type TranspileRequest struct {
	Document json.RawMessage `json:"document" binding:"required"`
}

// DiffRequest carries a Blueprint document plus the existing source text to
// diff against.
type DiffRequest struct {
	Document       json.RawMessage `json:"document" binding:"required"`
	ExistingSource string          `json:"existingSource" binding:"required"`
}

// ExtractRequest carries raw source text for symbol extraction.
type ExtractRequest struct {
	Source string `json:"source" binding:"required"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type     string          `json:"type"`
	Document json.RawMessage `json:"document,omitempty"`
	Source   string          `json:"source,omitempty"`
	Payload  interface{}     `json:"payload,omitempty"`
	Error    string          `json:"error,omitempty"`
}
