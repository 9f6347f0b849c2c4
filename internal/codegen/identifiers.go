package codegen

import (
	"fmt"
	"strings"
)

// Sanitizer maps raw Blueprint names, which may contain spaces and
// punctuation, to valid C++ identifiers. The same raw name always maps to
// the same identifier, and collisions pick up a numeric suffix in encounter
// order, so two sanitizers fed the same names in the same order agree.
type Sanitizer struct {
	mapping map[string]string
	used    map[string]bool
}

// NewSanitizer creates an empty sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		mapping: make(map[string]string),
		used:    make(map[string]bool),
	}
}

// Sanitize returns the identifier for a raw name, allocating one on first
// encounter.
func (s *Sanitizer) Sanitize(raw string) string {
	if id, ok := s.mapping[raw]; ok {
		return id
	}

	base := sanitizeBase(raw)
	candidate := base
	for n := 2; s.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}

	s.mapping[raw] = candidate
	s.used[candidate] = true
	return candidate
}

// Mapping returns a copy of the raw-to-identifier table, letting the diff
// engine recover original names from generated code.
func (s *Sanitizer) Mapping() map[string]string {
	out := make(map[string]string, len(s.mapping))
	for raw, id := range s.mapping {
		out[raw] = id
	}
	return out
}

// sanitizeBase strips invalid characters, preserving case. A leading digit
// gets an underscore prefix; a name with nothing valid left becomes Unnamed.
func sanitizeBase(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		return "Unnamed"
	}
	if base[0] >= '0' && base[0] <= '9' {
		return "_" + base
	}
	return base
}
