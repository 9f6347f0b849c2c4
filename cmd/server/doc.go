// Package main is the entry point for the Blueprint Studio backend server.
//
// The server turns serialized Blueprint graph documents into C++ header and
// source text, and computes semantic diffs between a Blueprint and existing
// hand-edited C++ so editors can warn before overwriting manual changes.
//
// The server provides:
//   - REST API for transpile, diff, and symbol extraction
//   - WebSocket streaming of warnings and diff changes
//   - Service provider registry for tool-style invocation
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
