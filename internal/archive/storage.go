// Package archive stores scan results and rendered badges in blob storage
// so the leaderboard and badge endpoints can serve them later.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for scan results and badges.
type StorageClient interface {
	PutResult(ctx context.Context, scanID string, data []byte) error
	GetResult(ctx context.Context, scanID string) ([]byte, error)
	PutBadge(ctx context.Context, scanID string, data []byte) error
	GetBadge(ctx context.Context, scanID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(kind, id, ext string) string {
	return filepath.Join(s.BaseDir, kind, id+ext)
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutResult stores a scan result blob.
func (s *LocalStorage) PutResult(ctx context.Context, scanID string, data []byte) error {
	return s.put(s.path("results", scanID, ".json"), data)
}

// GetResult retrieves a scan result blob.
func (s *LocalStorage) GetResult(ctx context.Context, scanID string) ([]byte, error) {
	return os.ReadFile(s.path("results", scanID, ".json"))
}

// PutBadge stores a rendered badge.
func (s *LocalStorage) PutBadge(ctx context.Context, scanID string, data []byte) error {
	return s.put(s.path("badges", scanID, ".md"), data)
}

// GetBadge retrieves a rendered badge.
func (s *LocalStorage) GetBadge(ctx context.Context, scanID string) ([]byte, error) {
	return os.ReadFile(s.path("badges", scanID, ".md"))
}
