package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner finds test modules in a directory by naming convention
type Scanner struct {
	prefix string
	suffix string
	marker string
}

// NewScanner creates a new Scanner. Files named <prefix>*<suffix> are
// modules; so are <prefix>* directories (without a ".") holding marker.
func NewScanner(prefix, suffix, marker string) *Scanner {
	return &Scanner{prefix: prefix, suffix: suffix, marker: marker}
}

// Scan returns the module names found in root: file modules first, then
// package modules, each sorted by name. The directory is not walked recursively.
func (s *Scanner) Scan(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read test dir: %w", err)
	}

	var modules, packages []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, s.prefix) {
			continue
		}

		if e.IsDir() {
			if strings.Contains(name, ".") {
				continue
			}
			if isFile(filepath.Join(root, name, s.marker)) {
				packages = append(packages, name)
			}
			continue
		}

		if strings.HasSuffix(name, s.suffix) && len(name) > len(s.suffix) {
			modules = append(modules, strings.TrimSuffix(name, s.suffix))
		}
	}

	sort.Strings(modules)
	sort.Strings(packages)
	return append(modules, packages...), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
