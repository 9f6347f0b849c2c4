// Package utils provides input validation helpers shared by the HTTP and
// WebSocket boundaries.
//
// Validation:
//   - JSON size validation for incoming blueprint documents
//   - Nesting depth checks to reject pathological payloads
//   - Tool id format validation for service execution
//
// Example Usage:
//
//	validator := utils.DefaultJSONValidator()
//	err := validator.ValidateJSON(documentBytes)
package utils
