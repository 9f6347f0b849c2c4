// Package http provides HTTP handlers for the Blueprint service REST API.
//
// Handlers cover transpilation, semantic diffing, symbol extraction, and
// generic service tool execution through the registry. Each handler binds
// and validates its request, runs the operation under a metrics timer, and
// renders the result as JSON.
package http
