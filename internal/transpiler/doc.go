// Package transpiler composes the blueprint pipeline behind two operations:
// Transpile (document to generated C++) and Diff (document against existing
// source). The stages themselves are pure; this facade adds input limits
// from configuration and structured logging at the boundary.
package transpiler
