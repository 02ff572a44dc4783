package llm

import (
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no fence",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"a\": 1}",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  ```json\n{\"a\": 1}\n```  ",
			expected: `{"a": 1}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := StripFences(test.input)
			if got != test.expected {
				t.Errorf("unexpected result: %q", got)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "object wrapped in prose",
			input:    `Here is the data you asked for: {"a": 1} hope that helps!`,
			expected: `{"a": 1}`,
		},
		{
			name:     "array",
			input:    `[1, 2, 3]`,
			expected: `[1, 2, 3]`,
		},
		{
			name:    "no JSON at all",
			input:   "I could not extract anything",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			input:   `{"a": 1`,
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ExtractJSON(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Errorf("unexpected result: %q", got)
			}
		})
	}
}

func TestParseExtraction(t *testing.T) {
	reply := "```json\n{\"metadata\": {\"title\": \"Example\"}}\n```"

	parsed, err := ParseExtraction(reply, "short markdown")
	if err != nil {
		t.Fatal(err)
	}

	if parsed["raw_markdown"] != "short markdown" {
		t.Errorf("unexpected raw_markdown: %v", parsed["raw_markdown"])
	}

	meta, ok := parsed["metadata"].(map[string]any)
	if !ok || meta["title"] != "Example" {
		t.Errorf("unexpected metadata: %v", parsed["metadata"])
	}
}

func TestParseExtractionTruncatesMarkdown(t *testing.T) {
	long := strings.Repeat("a", 2000)

	parsed, err := ParseExtraction(`{"ok": true}`, long)
	if err != nil {
		t.Fatal(err)
	}

	raw, ok := parsed["raw_markdown"].(string)
	if !ok {
		t.Fatal("raw_markdown missing")
	}
	if len([]rune(raw)) != RAW_MARKDOWN_LIMIT+3 {
		t.Errorf("unexpected truncated length: %d", len([]rune(raw)))
	}
	if !strings.HasSuffix(raw, "...") {
		t.Error("truncation marker missing")
	}
}

func TestParseExtractionRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{
			name:  "prose only",
			reply: "Sorry, I cannot help with that.",
		},
		{
			name:  "top-level array",
			reply: `[{"a": 1}]`,
		},
		{
			name:  "broken JSON",
			reply: `{"a": `,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseExtraction(test.reply, "md"); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
