package output

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []Format
		wantErr bool
	}{
		{
			name:  "empty expands to all",
			input: nil,
			want:  All(),
		},
		{
			name:  "all keyword",
			input: []string{"all"},
			want:  All(),
		},
		{
			name:  "subset keeps order",
			input: []string{"json", "markdown"},
			want:  []Format{FormatJSON, FormatMarkdown},
		},
		{
			name:  "case and whitespace",
			input: []string{" HTML ", "Raw"},
			want:  []Format{FormatHTML, FormatRaw},
		},
		{
			name:  "duplicates collapse",
			input: []string{"json", "json", "markdown"},
			want:  []Format{FormatJSON, FormatMarkdown},
		},
		{
			name:    "unknown format",
			input:   []string{"pdf"},
			wantErr: true,
		},
		{
			name:    "unknown alongside valid",
			input:   []string{"markdown", "pdf"},
			wantErr: true,
		},
		{
			name:    "unknown alongside all",
			input:   []string{"all", "pdf"},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseFormats(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatMarkdown, ".md"},
		{FormatJSON, ".json"},
		{FormatHTML, ".html"},
		{FormatRaw, "_raw.json"},
	}

	for _, test := range tests {
		if got := test.format.Ext(); got != test.want {
			t.Errorf("%s: got %s, want %s", test.format, got, test.want)
		}
	}
}
