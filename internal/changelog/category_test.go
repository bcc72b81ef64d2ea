package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		want    CategoryKind
		wantErr bool
	}{
		"canonical features":        {name: "features", want: Features},
		"canonical breaking":        {name: "breaking-changes", want: BreakingChanges},
		"upper case":                {name: "BUG-FIXES", want: BugFixes},
		"underscores":               {name: "bug_fixes", want: BugFixes},
		"spaces and mixed case":     {name: "Breaking Changes", want: BreakingChanges},
		"surrounding whitespace":    {name: " security ", want: Security},
		"unknown name":              {name: "misc-stuff", wantErr: true},
		"singular is not canonical": {name: "feature", wantErr: true},
		"empty":                     {name: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCategory(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrStructural)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoriesDisplayOrder(t *testing.T) {
	t.Parallel()

	kinds := Categories()
	require.Len(t, kinds, int(categoryCount))

	var names []string
	for i, k := range kinds {
		assert.Equal(t, CategoryKind(i), k)
		names = append(names, k.DirName())
	}
	assert.Equal(t, []string{
		"breaking-changes", "features", "improvements", "bug-fixes", "deprecations", "security",
	}, names)
}

func TestCategoryKindRoundTrip(t *testing.T) {
	t.Parallel()

	for _, k := range Categories() {
		got, err := ParseCategory(k.DirName())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Title())
	}

	invalid := CategoryKind(99)
	assert.Empty(t, invalid.DirName())
	assert.Empty(t, invalid.Title())
	assert.Equal(t, "CategoryKind(99)", invalid.String())
}
