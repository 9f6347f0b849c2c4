// Package diff aligns Blueprint-derived symbols against symbols extracted
// from existing C++ source and classifies every divergence.
//
// Matching runs in phases: exact name matches first (unchanged or modified),
// then signature-similar rename detection over the leftovers using a
// normalized edit distance, then pure additions and removals. Each change
// carries a conflict level; the result's overall level is the maximum
// present. The severity boundary for modifications (type widening versus
// narrowing) is policy, not law, and is configurable.
package diff
