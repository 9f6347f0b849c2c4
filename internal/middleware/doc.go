// Package middleware provides HTTP middleware for the transpiler backend.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - RequestID: Correlation id injection for log tracing
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.FromConfig(cfg.RateLimit)))
//	router.Use(middleware.RequestID())
package middleware
