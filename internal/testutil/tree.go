package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTree creates files under root. Keys are slash-separated paths relative
// to root; a key ending in "/" creates an empty directory.
// Files are written in the order given by paths so tests can vary creation
// order; when paths is nil, map iteration order is used.
func WriteTree(t *testing.T, root string, files map[string]string, paths ...string) {
	t.Helper()

	if paths == nil {
		for p := range files {
			paths = append(paths, p)
		}
	}

	for _, p := range paths {
		content, ok := files[p]
		if !ok {
			t.Fatalf("WriteTree: no content for %q", p)
		}

		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("creating directory %s: %v", full, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("creating directory for %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", full, err)
		}
	}
}

// Snapshot returns every file and directory under root. Directories are
// keyed with a trailing "/" and map to "". Paths are slash-separated and
// relative to root.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	snap := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			snap[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snap[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshotting %s: %v", root, err)
	}
	return snap
}

// Files returns only the file entries of a snapshot.
func Files(snap map[string]string) map[string]string {
	files := make(map[string]string)
	for p, content := range snap {
		if !strings.HasSuffix(p, "/") {
			files[p] = content
		}
	}
	return files
}
