package changelog

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclog-go/unclog/internal/testutil"
)

// layout returns the on-disk files that represent c.
func layout(c *Changelog) map[string]string {
	files := make(map[string]string)
	if c.Epilogue != "" {
		files[EpilogueFile] = c.Epilogue
	}

	add := func(dir string, b *Bucket) {
		if b.Notes != "" {
			files[dir+"/"+SummaryFile] = b.Notes
		}
		for _, cat := range b.Categories {
			for _, g := range cat.Groups {
				for _, e := range g.Entries {
					files[dir+"/"+cat.Kind.DirName()+"/"+g.Name+"/"+e.ID] = e.Text
				}
			}
		}
	}

	if c.Unreleased != nil {
		add(UnreleasedDir, c.Unreleased)
	}
	for i := range c.Releases {
		add(c.Releases[i].Label.Version(), &c.Releases[i])
	}
	return files
}

func roundTripChangelog() *Changelog {
	c := sampleChangelog()
	c.Unreleased.Categories[0].Groups = append(c.Unreleased.Categories[0].Groups, ComponentGroup{
		Name: "engine",
		Entries: []Entry{
			{ID: "1-faster.md", Text: "- Faster builds\n  across the board\n"},
			{ID: "2-smaller.md", Text: "Smaller output\n"},
		},
	})
	c.Releases = append([]Bucket{{
		Label: ReleaseLabel("v0.10.0"),
		Categories: []Category{
			{Kind: BreakingChanges, Groups: []ComponentGroup{
				{Name: "api", Entries: []Entry{{ID: "drop.md", Text: "- Drop the v0 API\n"}}},
			}},
			{Kind: Security, Groups: []ComponentGroup{
				{Name: "deps", Entries: []Entry{{ID: "bump.md", Text: "- Bump crypto\n"}}},
			}},
		},
	}}, c.Releases...)
	return c
}

func TestRoundTrip_CreationOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	want := roundTripChangelog()
	expected, err := RenderString(want, RenderOptions{})
	require.NoError(t, err)

	files := layout(want)
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for seed := range uint64(8) {
		order := slices.Clone(paths)
		rng := rand.New(rand.NewPCG(seed, seed))
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		root := t.TempDir()
		testutil.WriteTree(t, root, files, order...)

		got, err := ScanDir(root, ScanOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, got, "seed %d", seed)

		out, err := RenderString(got, RenderOptions{})
		require.NoError(t, err)
		assert.Equal(t, expected, out, "seed %d", seed)
	}
}

func TestRoundTrip_BuildDoesNotMutateTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteTree(t, root, layout(roundTripChangelog()))
	before := testutil.Snapshot(t, root)

	var outputs []string
	for range 2 {
		c, err := ScanDir(root, ScanOptions{})
		require.NoError(t, err)
		out, err := RenderString(c, RenderOptions{})
		require.NoError(t, err)
		outputs = append(outputs, out)
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, before, testutil.Snapshot(t, root))
}
