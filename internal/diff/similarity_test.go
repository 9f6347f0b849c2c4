package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("Health", "Health"))
	assert.Equal(t, 1.0, nameSimilarity("health", "HEALTH"), "comparison is case-insensitive")
	assert.Equal(t, 1.0, nameSimilarity("", ""))

	// One char edit over six.
	assert.InDelta(t, 5.0/6.0, nameSimilarity("Health", "Wealth"), 1e-9)

	// MaxHealth -> MaxHealthPoints: six appended chars over fifteen.
	assert.InDelta(t, 0.6, nameSimilarity("MaxHealth", "MaxHealthPoints"), 1e-9)

	assert.Less(t, nameSimilarity("Health", "Velocity"), 0.4)
	assert.Equal(t, 0.0, nameSimilarity("abc", "xyz"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}
