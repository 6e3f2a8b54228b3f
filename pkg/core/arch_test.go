package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// packageImports returns the imports of every non-test Go file in dir,
// keyed by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[path] = append(out[path], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnly verifies pkg/core only imports the standard library.
// The Golden Rule: pkg/core imports ONLY stdlib.
func TestCoreImportsOnly(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, importPath := range imports {
			// Stdlib paths have no dot in the first element
			if !strings.Contains(strings.Split(importPath, "/")[0], ".") {
				continue
			}
			t.Errorf("%s imports forbidden package: %s", file, importPath)
		}
	}
}

// TestBuilderIsPure verifies the tree and renderer packages perform no I/O.
func TestBuilderIsPure(t *testing.T) {
	forbidden := []string{"database/sql", "net", "net/http", "os", "io/fs"}

	for _, dir := range []string{"../query", "../format", "../dialect"} {
		for file, imports := range packageImports(t, dir) {
			for _, importPath := range imports {
				for _, f := range forbidden {
					if importPath == f {
						t.Errorf("%s imports %s (tree and renderer packages must stay pure)", file, importPath)
					}
				}
				if strings.Contains(importPath, "/internal/") || strings.Contains(importPath, "/pkg/adapter") {
					t.Errorf("%s imports %s (tree and renderer packages must not depend on execution)", file, importPath)
				}
			}
		}
	}
}
