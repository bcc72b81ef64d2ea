package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/unclog-go/unclog/internal/changelog"
	"github.com/unclog-go/unclog/internal/config"
	clierrors "github.com/unclog-go/unclog/internal/errors"
	"github.com/unclog-go/unclog/internal/git"
	"github.com/unclog-go/unclog/internal/output"
)

// resolveRoot returns the explicit root argument, or the default changelog
// directory for the current working directory.
func resolveRoot(explicit string) (string, error) {
	if explicit != "" {
		output.Debug("Using changelog root", "root", explicit)
		return explicit, nil
	}
	root, err := git.DefaultChangelogRoot("")
	if err != nil {
		return "", err
	}
	output.Debug("Using default changelog root", "root", root)
	return root, nil
}

// rootArg returns args[i] or "".
func rootArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

// requireTree fails with remediation when root does not exist.
func requireTree(root string) error {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return clierrors.ChangelogNotFound(root, &changelog.Error{Kind: changelog.ErrNotFound, Path: root, Err: err})
		}
	}
	return nil
}

// loadConfig loads configuration for the changelog at root.
func loadConfig(root string) (*config.Configuration, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	output.Debug("Loaded configuration", "sources", cfg.Sources)
	return cfg, nil
}

// loadTree checks that root exists, then loads its configuration and scans it.
func loadTree(root string) (*changelog.Changelog, *config.Configuration, error) {
	if err := requireTree(root); err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, nil, err
	}
	c, err := changelog.ScanDir(root, cfg.ScanOptions())
	if err != nil {
		return nil, nil, err
	}
	pending := 0
	if c.Unreleased != nil {
		pending = c.Unreleased.EntryCount()
	} else {
		output.Warn("unreleased directory is missing; a previous release may have been interrupted",
			"path", filepath.Join(root, changelog.UnreleasedDir))
	}
	output.Debug("Scanned changelog", "releases", len(c.Releases), "pending", pending)
	return c, cfg, nil
}
