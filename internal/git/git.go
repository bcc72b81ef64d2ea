// Package git locates the enclosing Git repository so unclog can default to
// the .changelog directory at the repository root. It uses go-git and never
// shells out to the git CLI.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/unclog-go/unclog/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path, walking up the
// directory tree like git does. If path is empty, the current working
// directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// RepositoryRoot returns the absolute path to the work tree root of the
// repository containing path.
func RepositoryRoot(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] RepositoryRoot: %s", root)
	return root, nil
}

// DefaultChangelogRoot returns the changelog directory used when none is
// given: .changelog at the root of the repository containing dir, or
// .changelog inside dir when dir is not in a repository. Bare repositories
// have no work tree and fall back to dir.
func DefaultChangelogRoot(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
	}

	root, err := RepositoryRoot(dir)
	switch {
	case err == nil:
		return filepath.Join(root, changelog.DefaultRoot), nil
	case errors.Is(err, git.ErrRepositoryNotExists), errors.Is(err, git.ErrIsBareRepository):
		logDebug("[git] no work tree above %s, using it directly", dir)
		return filepath.Join(dir, changelog.DefaultRoot), nil
	default:
		return "", err
	}
}
