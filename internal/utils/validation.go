package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Payload size limits (in bytes)
const (
	MaxJSONSize      = 1 * 1024 * 1024 // 1MB - maximum JSON payload size
	MaxSourceSize    = 2 * 1024 * 1024 // 2MB - existing source text limit
	MaxDocumentDepth = 32              // nesting depth limit for documents
)

// JSONSizeValidator validates JSON size limits
type JSONSizeValidator struct {
	maxSize int
}

// NewJSONSizeValidator creates a new validator with the specified max size
func NewJSONSizeValidator(maxSize int) *JSONSizeValidator {
	return &JSONSizeValidator{maxSize: maxSize}
}

// DefaultJSONValidator returns a validator with the default 1MB limit
func DefaultJSONValidator() *JSONSizeValidator {
	return NewJSONSizeValidator(MaxJSONSize)
}

// ValidateSize checks if the data size is within limits
func (v *JSONSizeValidator) ValidateSize(data []byte) error {
	size := len(data)
	if size > v.maxSize {
		return fmt.Errorf("JSON size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}

// ValidateJSON validates both size and JSON structure
func (v *JSONSizeValidator) ValidateJSON(data []byte) error {
	// Check size first (faster than parsing)
	if err := v.ValidateSize(data); err != nil {
		return err
	}

	var js interface{}
	if err := json.Unmarshal(data, &js); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return ValidateJSONDepth(js, MaxDocumentDepth)
}

// ValidateJSONDepth checks if JSON nesting depth is within limits
func ValidateJSONDepth(data interface{}, maxDepth int) error {
	return checkDepth(data, 0, maxDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("JSON nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}

var toolIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*\.[a-z][a-z0-9_]*$`)

// ValidateToolID checks the service.tool id format used by the registry.
func ValidateToolID(toolID string) error {
	if !toolIDPattern.MatchString(toolID) {
		return fmt.Errorf("invalid tool id: %q", toolID)
	}
	return nil
}

// ValidateSourceText bounds the existing source text accepted for diffing.
func ValidateSourceText(source string) error {
	if len(source) > MaxSourceSize {
		return fmt.Errorf("source text %d bytes exceeds maximum %d bytes", len(source), MaxSourceSize)
	}
	return nil
}
