package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	s.Add(Record{
		URL:      "https://example.com",
		Strategy: "simple",
		Success:  true,
		Files:    []string{"a.md", "a.json"},
		Duration: 1200 * time.Millisecond,
	})
	s.Add(Record{
		URL:      "https://example.org",
		Strategy: "llm",
		Success:  false,
		Error:    "fetch failed",
	})

	// Close drains the write channel before the database is reopened.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	records, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest first.
	if records[0].URL != "https://example.org" {
		t.Errorf("unexpected order: %s", records[0].URL)
	}
	if records[0].Success {
		t.Error("second record should be a failure")
	}
	if records[0].Error != "fetch failed" {
		t.Errorf("unexpected error text: %s", records[0].Error)
	}

	if records[1].URL != "https://example.com" {
		t.Errorf("unexpected order: %s", records[1].URL)
	}
	if len(records[1].Files) != 2 {
		t.Errorf("unexpected files: %v", records[1].Files)
	}
	if records[1].Duration != 1200*time.Millisecond {
		t.Errorf("unexpected duration: %s", records[1].Duration)
	}
	if records[1].ID == "" {
		t.Error("record should have been assigned an ID")
	}
}
