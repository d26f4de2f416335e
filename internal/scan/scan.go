// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates source files for the conversion pipeline and
// fixes their processing order.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stem returns the base filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Less orders two paths by stem length first, then lexicographically.
// Plain lexicographic order puts "10" before "2"; page sequences exported
// from animation tools are numbered without zero padding, so shorter stems
// must sort first.
func Less(a, b string) bool {
	sa, sb := Stem(a), Stem(b)
	if len(sa) != len(sb) {
		return len(sa) < len(sb)
	}
	return sa < sb
}

// Sort orders paths in place using Less.
func Sort(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return Less(paths[i], paths[j])
	})
}

// Sources lists the files in dir whose extension equals ext (including the
// dot, case-insensitive), sorted in processing order. Subdirectories are
// not descended into. The returned paths are joined with dir.
func Sources(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	Sort(paths)
	return paths, nil
}
