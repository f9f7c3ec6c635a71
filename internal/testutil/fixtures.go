// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"

	"github.com/lucasvieiramay/apidoc/node"
)

// WriteTxtar extracts a txtar archive into a fresh temporary directory and
// returns the directory. File names may contain slashes to create
// subdirectories. The directory is removed when the test completes.
//
//	dir := testutil.WriteTxtar(t, `
//	-- a.yaml --
//	versions: {v1: {}}
//	-- b.json --
//	{"categories": {}}
//	`)
func WriteTxtar(t *testing.T, archive string) string {
	t.Helper()

	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create fixture directory: %v", err)
		}
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", f.Name, err)
		}
	}
	return dir
}

// WriteTempFile writes content to name inside a temporary directory and
// returns the file path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// Tree decodes a YAML (or JSON) literal into a raw tree, keeping key order.
func Tree(t *testing.T, src string) *node.Node {
	t.Helper()

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Failed to parse YAML fixture: %v", err)
	}
	tree, err := node.FromYAML(&doc)
	if err != nil {
		t.Fatalf("Failed to convert YAML fixture: %v", err)
	}
	if tree == nil {
		return node.NewMapping()
	}
	return tree
}
