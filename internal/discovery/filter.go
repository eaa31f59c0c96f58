package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows a set of module names
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Exclude drops every name that is a member of exclude. Order is preserved.
func (f *Filter) Exclude(names []string, exclude []string) []string {
	if len(exclude) == 0 {
		return names
	}
	skip := make(map[string]bool, len(exclude))
	for _, x := range exclude {
		skip[x] = true
	}

	var kept []string
	for _, name := range names {
		if !skip[name] {
			kept = append(kept, name)
		}
	}
	return kept
}

// Normalize strips suffix from names given on the command line, so
// "test_foo.yaml" and "test_foo" select the same module. Duplicates are dropped.
func (f *Filter) Normalize(names []string, suffix string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		name = filepath.Base(name)
		if suffix != "" && strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			name = strings.TrimSuffix(name, suffix)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Merge appends the names in extra that carry prefix and are not yet in names.
func (f *Filter) Merge(names []string, extra []string, prefix string) []string {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, name := range extra {
		if !strings.HasPrefix(name, prefix) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// FilterByName filters module names by pattern using wildcard matching.
// Supports patterns like "test_define*" or "*include*"; a pattern without
// wildcards matches as a substring.
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	var filtered []string
	for _, name := range names {
		if matchName(name, pattern) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// filepath.Match is anchored; fall back to requiring every literal part
	// of a "*" pattern to appear in the name.
	if !strings.Contains(pattern, "*") {
		return false
	}
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasPart
}
