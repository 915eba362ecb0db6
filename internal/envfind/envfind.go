// Package envfind discovers .env files under a directory tree.
package envfind

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns matches the conventional env file names.
var DefaultPatterns = []string{".env", ".env.*"}

// DefaultExcludeDirs are directory names never descended into.
var DefaultExcludeDirs = []string{
	".git",
	"node_modules",
	".cache",
	".turbo",
	".next",
	"vendor",
}

// List walks root and returns the relative paths of files matching any of
// the given doublestar patterns. Patterns without a path separator match
// against the base name; patterns with one match against the slashed path
// relative to root.
func List(root string, patterns []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	excludeSet := make(map[string]bool)
	for _, d := range DefaultExcludeDirs {
		excludeSet[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if excludeSet[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		matched, err := matches(patterns, d.Name(), rel)
		if err != nil {
			return err
		}
		if matched {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func matches(patterns []string, base, rel string) (bool, error) {
	for _, p := range patterns {
		target := base
		if containsSlash(p) {
			target = rel
		}
		ok, err := doublestar.Match(p, target)
		if err != nil {
			return false, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func containsSlash(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			return true
		}
	}
	return false
}
