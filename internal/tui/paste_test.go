package tui

import (
	"testing"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "color codes",
			input:    "\x1b[31mred text\x1b[0m",
			expected: "red text",
		},
		{
			name:     "cursor control",
			input:    "\x1b[2K\x1b[1Gclear line",
			expected: "clear line",
		},
		{
			name:     "dropped path with CRLF",
			input:    "  '/home/me/Pictures/look.png'\r\n",
			expected: "'/home/me/Pictures/look.png'",
		},
		{
			name:     "null bytes and bell",
			input:    "sel\x00fie\x07.png",
			expected: "selfie.png",
		},
		{
			name:     "CRLF normalized",
			input:    "one\r\ntwo",
			expected: "one\ntwo",
		},
		{
			name:     "tabs kept",
			input:    "a\tb",
			expected: "a\tb",
		},
		{
			name:     "unicode kept",
			input:    "été ✦ 👗",
			expected: "été ✦ 👗",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizePaste(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizePaste(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCollapseNewlines(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"single line", "single line"},
		{"what should\nI wear", "what should I wear"},
		{"to a\n\n\nwedding", "to a wedding"},
	}

	for _, tt := range tests {
		if got := CollapseNewlines(tt.input); got != tt.expected {
			t.Errorf("CollapseNewlines(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
