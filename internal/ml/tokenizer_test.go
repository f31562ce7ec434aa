package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain title",
			input:    "Python Machine Learning Tutorial",
			expected: []string{"python", "machine", "learning", "tutorial"},
		},
		{
			name:     "stopwords and short words dropped",
			input:    "How to Fix the Best New Go Bug",
			expected: []string{"fix", "bug"},
		},
		{
			name:     "platform fluff dropped",
			input:    "Official Video: Quantum Computing (Full Episode) 1080p",
			expected: []string{"quantum", "computing"},
		},
		{
			name:     "edge punctuation trimmed",
			input:    "(Quantum) benchmarks -- revisited!",
			expected: []string{"quantum", "benchmark", "revisit"},
		},
		{
			name:     "interior punctuation kept",
			input:    "Rock'n'Roll History",
			expected: []string{"rock'n'roll", "history"},
		},
		{
			name:     "plurals collapse with singulars",
			input:    "guitars guitar",
			expected: []string{"guitar", "guitar"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			input:    "   \t ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"tutorials", "tutorial"},
		{"gamers", "gam"},
		{"reviewed", "review"},
		{"quickly", "quick"},
		// "ing" is deliberately not stripped
		{"learning", "learning"},
		{"cooking", "cooking"},
		// stem must keep at least 3 characters
		{"les", "les"},
		{"does", "doe"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, stem(tt.word))
		})
	}
}
