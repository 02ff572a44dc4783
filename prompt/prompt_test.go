package prompt

import (
	"net/url"
	"strings"
	"testing"
)

func TestCreateExtractionPrompt(t *testing.T) {
	u, err := url.Parse("https://go.dev/doc")
	if err != nil {
		t.Fatal(err)
	}

	p := CreateExtractionPrompt(u)

	if !strings.Contains(p, "Website: https://go.dev/doc") {
		t.Error("prompt should mention the full URL")
	}
	if !strings.Contains(p, "Domain: go.dev") {
		t.Error("prompt should mention the domain")
	}
	for _, section := range []string{`"metadata"`, `"content"`, `"navigation"`, `"media"`, `"business_info"`, `"technical"`} {
		if !strings.Contains(p, section) {
			t.Errorf("prompt missing section %s", section)
		}
	}
	if !strings.Contains(p, "Return ONLY valid JSON") {
		t.Error("prompt should demand bare JSON")
	}
}

func TestAttachContent(t *testing.T) {
	full := AttachContent("extract things", "# Page\n\nbody")

	if !strings.HasPrefix(full, "extract things") {
		t.Error("prompt should lead")
	}
	if !strings.HasSuffix(full, "# Page\n\nbody") {
		t.Error("markdown should trail")
	}
}
