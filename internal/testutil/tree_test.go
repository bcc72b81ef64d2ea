package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTreeAndSnapshot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"unreleased/features/core/a.md": "- add a\n",
		"unreleased/bug-fixes/":         "",
		"epilogue.md":                   "bye\n",
	})

	snap := Snapshot(t, root)
	assert.Equal(t, map[string]string{
		"unreleased/":                   "",
		"unreleased/features/":          "",
		"unreleased/features/core/":     "",
		"unreleased/features/core/a.md": "- add a\n",
		"unreleased/bug-fixes/":         "",
		"epilogue.md":                   "bye\n",
	}, snap)

	assert.Equal(t, map[string]string{
		"unreleased/features/core/a.md": "- add a\n",
		"epilogue.md":                   "bye\n",
	}, Files(snap))
}
