package store

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "results"))
	if err != nil {
		t.Fatal(err)
	}

	ok, err := fs.Contains("page.md")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("empty store should not contain page.md")
	}

	if err := fs.Store("page.md", strings.NewReader("# Hello")); err != nil {
		t.Fatal(err)
	}

	ok, err = fs.Contains("page.md")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("store should contain page.md")
	}

	files, err := fs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != "page.md" {
		t.Fatalf("unexpected listing: %v", files)
	}

	r, err := fs.Get("page.md")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# Hello" {
		t.Fatalf("unexpected content: %s", content)
	}
}
