package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "regress-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	files := []string{
		"test_foo.yaml",
		"test_bar.yaml",
		"helper.yaml",
		"test_notes.txt",
		"test_pkg/suite.yaml",
		"test_pkg/extra.yaml",
		"test_nomarker/other.yaml",
		"test_dotted.d/suite.yaml",
		"support/suite.yaml",
	}
	for _, file := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("description: x\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner("test_", ".yaml", "suite.yaml")

	t.Run("finds file and package modules", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"test_bar", "test_foo", "test_pkg"}
		if len(results) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, results)
		}
		for i := range expected {
			if results[i] != expected[i] {
				t.Errorf("position %d: expected %s, got %s", i, expected[i], results[i])
			}
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "helper.yaml"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestScanner_ScanOnlyPrefixAndSuffix(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"test_foo.py", "test_bar.py", "helper.py"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), nil, 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", name, err)
		}
	}

	results, err := NewScanner("test_", ".py", "__init__.py").Scan(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[string]bool{}
	for _, r := range results {
		got[r] = true
	}
	if len(got) != 2 || !got["test_foo"] || !got["test_bar"] {
		t.Errorf("expected exactly {test_foo, test_bar}, got %v", results)
	}
}
