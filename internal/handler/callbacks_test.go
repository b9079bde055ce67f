package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseVowelIndex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{name: "first slot", input: "vowel_0", expected: 0, ok: true},
		{name: "two digits", input: "vowel_12", expected: 12, ok: true},
		{name: "negative", input: "vowel_-1", ok: false},
		{name: "not a number", input: "vowel_a", ok: false},
		{name: "missing index", input: "vowel_", ok: false},
		{name: "other prefix", input: "module_orfoepiya", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := parseVowelIndex(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, i)
			}
		})
	}
}

func TestCleanCallbackData_ButtonPayload(t *testing.T) {
	// Unregistered buttons arrive with the \f marker in front
	data := cleanCallbackData("\fvowel_2")
	i, ok := parseVowelIndex(data)
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}
