package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "Levi's",
			expected: "levis",
		},
		{
			name:     "strips spaces",
			input:    "Iron Heart",
			expected: "ironheart",
		},
		{
			name:     "keeps digits",
			input:    "3sixteen",
			expected: "3sixteen",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    "?!-.",
			expected: "",
		},
		{
			name:     "unicode letters survive",
			input:    "Café Über",
			expected: "caféüber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Levi's", "IRON heart!!", "3sixteen", "", "Café Über", "a b c 1 2 3"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", s)
	}
}

func TestSameEntity(t *testing.T) {
	assert.True(t, SameEntity("Levi's", "levis"))
	assert.True(t, SameEntity("Iron Heart", "ironheart"))
	assert.False(t, SameEntity("Iron Heart", "Iron Hearts"))
}
