// Package collect enumerates analyzable source files under a project root.
// It produces a deterministic, lexicographically ordered file list and is the
// single input shared by all analyzers.
package collect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultIgnoreDirs are path components that are never worth analyzing:
// VCS metadata, virtual environments, build output, and package caches.
var DefaultIgnoreDirs = []string{
	"__pycache__",
	".git",
	".hg",
	".svn",
	".venv",
	"venv",
	"node_modules",
	"dist",
	"build",
	".tox",
	".eggs",
	".mypy_cache",
	".pytest_cache",
	"*.egg-info",
}

// Options configures a collection pass.
type Options struct {
	// Extensions limits collection to files with these extensions.
	// Defaults to [".py"] when empty.
	Extensions []string

	// IgnoreDirs is appended to DefaultIgnoreDirs. Entries are matched
	// against each path component and may use filepath.Match patterns.
	IgnoreDirs []string
}

// Collect walks root and returns the relative paths of analyzable files,
// sorted lexicographically. Unreadable subtrees are skipped; the only fatal
// condition is a root that does not exist or is not a directory.
func Collect(ctx context.Context, root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s: not a directory", root)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".py"}
	}
	ignore := append(append([]string{}, DefaultIgnoreDirs...), opts.IgnoreDirs...)

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip it and keep going.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != root && ignored(d.Name(), ignore) {
				return fs.SkipDir
			}
			return nil
		}
		if !hasExtension(d.Name(), exts) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}

func ignored(name string, patterns []string) bool {
	for _, p := range patterns {
		if name == p {
			return true
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

func hasExtension(name string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}
