package util

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{
			name:     "bytes",
			bytes:    512,
			expected: "512B",
		},
		{
			name:     "kibibytes",
			bytes:    1536,
			expected: "1.5KiB",
		},
		{
			name:     "mebibytes",
			bytes:    5 * MiB,
			expected: "5.0MiB",
		},
		{
			name:     "gibibytes",
			bytes:    3 * GiB,
			expected: "3.0GiB",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FormatBytes(test.bytes)
			if got != test.expected {
				t.Errorf("unexpected format: %s", got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{
			name:     "shorter than limit",
			input:    "hello",
			n:        10,
			expected: "hello",
		},
		{
			name:     "exactly at limit",
			input:    "hello",
			n:        5,
			expected: "hello",
		},
		{
			name:     "over limit",
			input:    "hello world",
			n:        5,
			expected: "hello...",
		},
		{
			name:     "multi-byte runes",
			input:    "héllö wörld",
			n:        5,
			expected: "héllö...",
		},
		{
			name:     "zero limit",
			input:    "hello",
			n:        0,
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Truncate(test.input, test.n)
			if got != test.expected {
				t.Errorf("unexpected result: %s", got)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "empty",
			input:    "",
			expected: 0,
		},
		{
			name:     "single word",
			input:    "hello",
			expected: 1,
		},
		{
			name:     "mixed whitespace",
			input:    "one two\nthree\tfour",
			expected: 4,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := WordCount(test.input)
			if got != test.expected {
				t.Errorf("unexpected count: %d", got)
			}
		})
	}
}
