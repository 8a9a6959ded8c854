package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "data engineer", "data engineer"},
		{"repeated spaces", "data   engineer", "data engineer"},
		{"tabs and newlines", "data\t\tengineer\n\nremote", "data engineer remote"},
		{"leading and trailing", "  data engineer  ", "data engineer"},
		{"mixed runs", " \n Senior\tData \r\n Engineer ", "Senior Data Engineer"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("  Machine\n\nLearning\t Engineer ")
	assert.Equal(t, once, Normalize(once))
}
