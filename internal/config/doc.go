// Package config provides 12-factor configuration management for the
// transpiler backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Limits: Input size guards for blueprint documents
//   - Diff: Semantic diff policy knobs
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - MAX_DOCUMENT_BYTES, MAX_GRAPH_NODES
//   - DIFF_RENAME_THRESHOLD, DIFF_STRICT_MODIFY
package config
