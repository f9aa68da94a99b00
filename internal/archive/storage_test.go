package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoragePutGetResult(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte(`{"scan_id":"abc"}`)
	if err := s.PutResult(ctx, "abc", data); err != nil {
		t.Fatalf("PutResult: %v", err)
	}

	got, err := s.GetResult(ctx, "abc")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetResult = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "results", "abc.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStoragePutGetBadge(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte("[![Vouch Trust Score](https://img.shields.io/...)](https://vouch.dev/trust)")
	if err := s.PutBadge(ctx, "abc", data); err != nil {
		t.Fatalf("PutBadge: %v", err)
	}

	got, err := s.GetBadge(ctx, "abc")
	if err != nil {
		t.Fatalf("GetBadge: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetBadge = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "badges", "abc.md")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStorageGetNotFound(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	if _, err := s.GetResult(context.Background(), "nonexistent"); err == nil {
		t.Error("expected error for nonexistent result")
	}
}
