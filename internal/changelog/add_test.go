package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTree(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), DefaultRoot)
	require.NoError(t, Init(root, InitOptions{}))
	return root
}

func TestAddEntry(t *testing.T) {
	t.Parallel()

	root := initTree(t)

	path, err := AddEntry(root, NewEntry{
		Category:  "Bug Fixes",
		Component: "cli",
		ID:        "123-flag-parsing",
		Text:      "  Fix flag parsing  \n\n",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "unreleased", "bug-fixes", "cli", "123-flag-parsing.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Fix flag parsing\n", string(data))

	c, err := ScanDir(root, ScanOptions{})
	require.NoError(t, err)
	require.True(t, c.HasPending())
	assert.Equal(t, BugFixes, c.Unreleased.Categories[0].Kind)
}

func TestAddEntry_ReusesVariantCategoryDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), DefaultRoot)
	require.NoError(t, os.MkdirAll(filepath.Join(root, UnreleasedDir, "Bug_Fixes", "cli"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, UnreleasedDir, "Bug_Fixes", "cli", "1.md"), []byte("- One\n"), 0o644))

	path, err := AddEntry(root, NewEntry{Category: "bug-fixes", Component: "api", ID: "2", Text: "Two"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, UnreleasedDir, "Bug_Fixes", "api", "2.md"), path)
	assert.NoDirExists(t, filepath.Join(root, UnreleasedDir, "bug-fixes"))

	c, err := ScanDir(root, ScanOptions{})
	require.NoError(t, err, "no duplicate category after adding")
	require.Len(t, c.Unreleased.Categories, 1)
	assert.Equal(t, BugFixes, c.Unreleased.Categories[0].Kind)
	assert.Len(t, c.Unreleased.Categories[0].Groups, 2)
}

func TestAddEntry_KeepsExplicitExtension(t *testing.T) {
	t.Parallel()

	root := initTree(t)
	path, err := AddEntry(root, NewEntry{Category: "features", Component: "core", ID: "note.txt", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "note.txt", filepath.Base(path))
}

func TestAddEntry_Exists(t *testing.T) {
	t.Parallel()

	root := initTree(t)
	e := NewEntry{Category: "features", Component: "core", ID: "add-x", Text: "Add X"}

	_, err := AddEntry(root, e)
	require.NoError(t, err)

	_, err = AddEntry(root, e)
	assert.ErrorIs(t, err, ErrEntryExists)

	e.Force = true
	e.Text = "Add X, again"
	path, err := AddEntry(root, e)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Add X, again\n", string(data))
}

func TestAddEntry_Errors(t *testing.T) {
	t.Parallel()

	valid := NewEntry{Category: "features", Component: "core", ID: "add-x", Text: "Add X"}

	tests := map[string]struct {
		modify  func(e *NewEntry)
		wantErr error
	}{
		"unknown category": {
			modify:  func(e *NewEntry) { e.Category = "chores" },
			wantErr: ErrStructural,
		},
		"empty component": {
			modify:  func(e *NewEntry) { e.Component = " " },
			wantErr: ErrStructural,
		},
		"component with separator": {
			modify:  func(e *NewEntry) { e.Component = "core/sub" },
			wantErr: ErrStructural,
		},
		"dot-dot id": {
			modify:  func(e *NewEntry) { e.ID = ".." },
			wantErr: ErrStructural,
		},
		"hidden id": {
			modify:  func(e *NewEntry) { e.ID = ".secret" },
			wantErr: ErrStructural,
		},
		"empty text": {
			modify:  func(e *NewEntry) { e.Text = "\n\t" },
			wantErr: ErrStructural,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := initTree(t)
			e := valid
			tt.modify(&e)

			_, err := AddEntry(root, e)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddEntry_RequiresUnreleased(t *testing.T) {
	t.Parallel()

	_, err := AddEntry(t.TempDir(), NewEntry{Category: "features", Component: "core", ID: "a", Text: "A"})
	assert.ErrorIs(t, err, ErrNotFound)
}
