package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/version"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	partial := &changelog.Error{Kind: changelog.ErrPartialMutation, Path: "unreleased"}

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"plain error":   {err: errors.New("boom"), want: ExitFailure},
		"argument":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration": {err: clierrors.ConfigParseError(errors.New("bad")), want: ExitInvalidArguments},
		"prerequisite":  {err: clierrors.ChangelogNotFound(".changelog", nil), want: ExitMissingPrerequisite},
		"runtime":       {err: clierrors.Wrap(errors.New("disk"), clierrors.Runtime), want: ExitFailure},
		"partial":       {err: clierrors.PartialRelease(partial), want: ExitNeedsRepair},
		"bare partial":  {err: partial, want: ExitNeedsRepair},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

// newTree creates an initialized changelog root and returns its path.
func newTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".changelog")
	_, _, err := runCLI(t, "init", root)
	require.NoError(t, err)
	return root
}

func TestInitCommand(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".changelog")

	stdout, _, err := runCLI(t, "init", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Initialized changelog at "+root)
	assert.DirExists(t, filepath.Join(root, "unreleased", "features"))

	_, stderr, err := runCLI(t, "init", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, changelog.ErrAlreadyInitialized))
	assert.Equal(t, ExitMissingPrerequisite, ExitCode(err))
	assert.Contains(t, stderr, "already")
}

func TestInitCommand_Epilogue(t *testing.T) {
	dir := t.TempDir()
	epilogue := filepath.Join(dir, "OLD.md")
	require.NoError(t, os.WriteFile(epilogue, []byte("## v0.0.1\n\nAncient history.\n"), 0o644))
	root := filepath.Join(dir, ".changelog")

	_, _, err := runCLI(t, "init", "--epilogue-path", epilogue, root)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "build", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ancient history.")
}

func TestAddCommand(t *testing.T) {
	root := newTree(t)

	stdout, _, err := runCLI(t, "add", "-p", root, "-s", "Bug Fixes", "-c", "cli", "-i", "12-flags", "Fix flag parsing")
	require.NoError(t, err)
	path := filepath.Join(root, "unreleased", "bug-fixes", "cli", "12-flags.md")
	assert.Contains(t, stdout, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Fix flag parsing\n", string(data))

	_, _, err = runCLI(t, "add", "-p", root, "-s", "bug-fixes", "-c", "cli", "-i", "12-flags", "Again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, changelog.ErrEntryExists))

	_, _, err = runCLI(t, "add", "-p", root, "-s", "bug-fixes", "-c", "cli", "-i", "12-flags", "--force", "Again")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Again\n", string(data))
}

func TestAddCommand_ArgumentErrors(t *testing.T) {
	root := newTree(t)

	tests := map[string]struct {
		args []string
	}{
		"missing section":  {args: []string{"add", "-p", root, "-c", "cli", "-i", "x", "msg"}},
		"missing message":  {args: []string{"add", "-p", root, "-s", "features", "-c", "cli", "-i", "x"}},
		"too many args":    {args: []string{"add", "-p", root, "-s", "features", "-c", "cli", "-i", "x", "a", "b"}},
		"unknown category": {args: []string{"add", "-p", root, "-s", "chores", "-c", "cli", "-i", "x", "msg"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitInvalidArguments, ExitCode(err))
		})
	}
}

func TestReleaseCommand(t *testing.T) {
	root := newTree(t)
	_, _, err := runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "1-scan", "Faster scans")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "release", "v1.0.0", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Released v1.0.0 with 1 entry")
	assert.FileExists(t, filepath.Join(root, "v1.0.0", "features", "core", "1-scan.md"))
	assert.DirExists(t, filepath.Join(root, "unreleased", "features"))

	stdout, _, err = runCLI(t, "build", root)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "## Unreleased")
	assert.Contains(t, stdout, "## v1.0.0")
	assert.Contains(t, stdout, "Faster scans")
}

func TestReleaseCommand_Errors(t *testing.T) {
	tests := map[string]struct {
		args     func(root string) []string
		wantCode int
		wantHint string
	}{
		"missing version": {
			args:     func(string) []string { return []string{"release"} },
			wantCode: ExitInvalidArguments,
			wantHint: "unclog release v1.2.0",
		},
		"nothing to release": {
			args:     func(root string) []string { return []string{"release", "v2.0.0", root} },
			wantCode: ExitMissingPrerequisite,
			wantHint: "unclog add",
		},
		"missing root": {
			args: func(root string) []string {
				return []string{"release", "v2.0.0", filepath.Join(root, "nope")}
			},
			wantCode: ExitMissingPrerequisite,
			wantHint: "unclog init",
		},
		"too many args": {
			args:     func(root string) []string { return []string{"release", "v2.0.0", root, "extra"} },
			wantCode: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := newTree(t)

			_, stderr, err := runCLI(t, tt.args(root)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			if tt.wantHint != "" {
				assert.Contains(t, stderr, tt.wantHint)
			}
		})
	}
}

func TestReleaseCommand_AlreadyReleased(t *testing.T) {
	root := newTree(t)
	_, _, err := runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "a", "A")
	require.NoError(t, err)
	_, _, err = runCLI(t, "release", "v1.0.0", root)
	require.NoError(t, err)
	_, _, err = runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "b", "B")
	require.NoError(t, err)

	_, _, err = runCLI(t, "release", "1.0.0", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, changelog.ErrAlreadyReleased))
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.FileExists(t, filepath.Join(root, "unreleased", "features", "core", "b.md"))
}

func TestBuildCommand_Output(t *testing.T) {
	root := newTree(t)
	_, _, err := runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "a", "Add A")
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "CHANGELOG.md")

	stdout, stderr, err := runCLI(t, "build", "--output", out, root)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Success!")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# CHANGELOG\n\n## Unreleased\n"))
	assert.Contains(t, string(data), "- core\n  - Add A\n")
}

func TestBuildCommand_Stdout(t *testing.T) {
	root := newTree(t)
	_, _, err := runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "a", "Add A")
	require.NoError(t, err)

	stdout, stderr, err := runCLI(t, "build", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# CHANGELOG\n"))
	assert.NotContains(t, stdout, "Success!")
	assert.Contains(t, stderr, "Success!")
	assert.NotContains(t, stderr, "interrupted")
}

func TestBuildCommand_WarnsWhenUnreleasedIsMissing(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".changelog")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "v1.0.0", "features", "core"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "v1.0.0", "features", "core", "a.md"), []byte("Add A\n"), 0o644))

	stdout, stderr, err := runCLI(t, "build", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "## v1.0.0")
	assert.Contains(t, stderr, "a previous release may have been interrupted")
	assert.Contains(t, stderr, filepath.Join(root, "unreleased"))
}

func TestBuildCommand_UndecodableConfig(t *testing.T) {
	root := newTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yml"), []byte("watch_debounce: abc\n"), 0o644))

	_, _, err := runCLI(t, "build", root)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.NotContains(t, err.Error(), "\n")
}

func TestBuildCommand_ProjectConfig(t *testing.T) {
	root := newTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yml"),
		[]byte("heading: \"# Release notes\"\nbullet: \"*\"\n"), 0o644))
	_, _, err := runCLI(t, "add", "-p", root, "-s", "features", "-c", "core", "-i", "a", "Add A")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "build", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# Release notes\n"))
	assert.Contains(t, stdout, "* core\n  * Add A\n")
}

func TestBuildCommand_InvalidConfig(t *testing.T) {
	root := newTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yml"), []byte("bullet: \"x\"\n"), 0o644))

	_, stderr, err := runCLI(t, "build", root)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, stderr, "bullet")
}

func TestBuildCommand_StructuralError(t *testing.T) {
	root := newTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "unreleased", "chores"), 0o755))

	_, _, err := runCLI(t, "build", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, changelog.ErrStructural))
}

func TestBuildCommand_WatchNeedsOutput(t *testing.T) {
	root := newTree(t)

	_, _, err := runCLI(t, "build", "--watch", root)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestCheckCommand(t *testing.T) {
	root := newTree(t)
	_, _, err := runCLI(t, "add", "-p", root, "-s", "security", "-c", "auth", "-i", "a", "Rotate keys")
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "CHANGELOG.md")

	_, stderr, err := runCLI(t, "check", "--file", file, root)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "unclog build")

	_, _, err = runCLI(t, "build", "-o", file, root)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "check", "--file", file, root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "in sync")

	_, _, err = runCLI(t, "add", "-p", root, "-s", "security", "-c", "auth", "-i", "b", "Expire sessions")
	require.NoError(t, err)
	_, _, err = runCLI(t, "check", "--file", file, root)
	require.Error(t, err)
}

func TestConfigShowCommand(t *testing.T) {
	root := newTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yml"), []byte("bullet: \"*\"\n"), 0o644))

	stdout, _, err := runCLI(t, "config", "show", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# sources:")
	assert.Contains(t, stdout, "bullet: '*'")
	assert.Contains(t, stdout, "heading: '# CHANGELOG'")
}

func TestConfigMigrateCommand(t *testing.T) {
	root := newTree(t)
	legacy := filepath.Join(root, "config.json")
	require.NoError(t, os.WriteFile(legacy, []byte(`{"bullet": "*"}`), 0o644))

	_, _, err := runCLI(t, "config", "migrate", "--dry-run", root)
	require.NoError(t, err)
	assert.FileExists(t, legacy)
	assert.NoFileExists(t, filepath.Join(root, "config.yml"))

	_, _, err = runCLI(t, "config", "migrate", root)
	require.NoError(t, err)
	assert.NoFileExists(t, legacy)
	assert.FileExists(t, filepath.Join(root, "config.yml"))

	stdout, _, err := runCLI(t, "config", "show", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "bullet: '*'")
}

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := version.Version, version.Commit
	version.Version, version.Commit = "v1.2.3", "0123456789abcdef"
	t.Cleanup(func() { version.Version, version.Commit = origVersion, origCommit })

	stdout, _, err := runCLI(t, "version", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "unclog v1.2.3\ncommit: 0123456789abcdef\n"))

	stdout, _, err = runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "01234567")
	assert.NotContains(t, stdout, "0123456789abcdef")
	assert.NotContains(t, stdout, "development build")
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"long":    {in: "0123456789abcdef", want: "01234567"},
		"exact":   {in: "01234567", want: "01234567"},
		"short":   {in: "abc", want: "abc"},
		"unknown": {in: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.in))
		})
	}
}
