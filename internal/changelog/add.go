package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// NewEntry describes an entry file to create under unreleased/.
type NewEntry struct {
	// Category is a category directory name, e.g. "features" or "bug-fixes".
	Category string
	// Component is the subsystem the change belongs to.
	Component string
	// ID becomes the file name; ".md" is appended when it has no extension.
	ID   string
	Text string
	// Force overwrites an existing entry with the same ID.
	Force bool
	// FS performs the mutations. Defaults to OS.
	FS FileSystem
}

// AddEntry writes a new entry file and returns its path.
func AddEntry(root string, e NewEntry) (string, error) {
	fsys := orOS(e.FS)

	kind, err := ParseCategory(e.Category)
	if err != nil {
		return "", err
	}
	if err := validateSegment("component", e.Component); err != nil {
		return "", err
	}
	if err := validateSegment("entry id", e.ID); err != nil {
		return "", err
	}
	if strings.TrimSpace(e.Text) == "" {
		return "", structuralError("", "entry text is empty")
	}

	unreleased := filepath.Join(root, UnreleasedDir)
	if _, err := fsys.Stat(unreleased); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &Error{Kind: ErrNotFound, Path: unreleased, Message: "unreleased directory is missing"}
		}
		return "", ioError(unreleased, "checking unreleased directory", err)
	}

	id := e.ID
	if filepath.Ext(id) == "" {
		id += ".md"
	}
	categoryDir, err := existingCategoryDir(fsys, unreleased, kind)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(unreleased, categoryDir, e.Component)
	path := filepath.Join(dir, id)

	if _, err := fsys.Stat(path); err == nil && !e.Force {
		return "", &Error{Kind: ErrEntryExists, Path: path}
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", ioError(dir, "creating component directory", err)
	}

	text := strings.TrimSpace(e.Text) + "\n"
	if err := fsys.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", ioError(path, "writing entry", err)
	}
	return path, nil
}

// existingCategoryDir returns the directory under bucket that already holds
// kind, which may be a variant spelling such as "Bug_Fixes", or the
// canonical name when there is none.
func existingCategoryDir(fsys FileSystem, bucket string, kind CategoryKind) (string, error) {
	entries, err := fsys.ReadDir(bucket)
	if err != nil {
		return "", ioError(bucket, "reading unreleased directory", err)
	}
	for _, de := range entries {
		if !de.IsDir() || isHidden(de.Name()) {
			continue
		}
		if k, err := ParseCategory(de.Name()); err == nil && k == kind {
			return de.Name(), nil
		}
	}
	return kind.DirName(), nil
}

// validateSegment checks that name can be used as a single path element.
func validateSegment(field, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return structuralError("", field+" is empty")
	case strings.ContainsAny(name, `/\`):
		return structuralError(name, fmt.Sprintf("%s %q must not contain path separators", field, name))
	case name == "." || name == "..":
		return structuralError(name, fmt.Sprintf("%s %q is not a valid name", field, name))
	case isHidden(name):
		return structuralError(name, fmt.Sprintf("%s %q must not start with '.'", field, name))
	}
	return nil
}
