package changelog

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanOptions configures how a changelog tree is read.
type ScanOptions struct {
	// Ignore lists doublestar patterns for files and directories to skip.
	// Each pattern is matched against the slash-separated path relative to
	// the root and against the base name. Hidden names are always skipped.
	Ignore []string
}

// ScanDir reads the changelog rooted at the directory root.
// Paths in returned errors are prefixed with root.
func ScanDir(root string, opts ScanOptions) (*Changelog, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrNotFound, Path: root, Message: "changelog directory does not exist"}
		}
		return nil, ioError(root, "reading changelog directory", err)
	}
	if !info.IsDir() {
		return nil, structuralError(root, "changelog root is not a directory")
	}

	s := &scanner{fsys: os.DirFS(root), base: root, ignore: opts.Ignore}
	return s.scan()
}

// Scan reads a changelog tree from fsys, whose root is the changelog root.
// Either a complete tree or an error is returned, never both.
func Scan(fsys fs.FS, opts ScanOptions) (*Changelog, error) {
	s := &scanner{fsys: fsys, ignore: opts.Ignore}
	return s.scan()
}

// scanner walks the tree one schema level at a time: root, bucket,
// category, component. Each level fully materializes its children before
// they are sorted, so output order never depends on directory listing order.
type scanner struct {
	fsys   fs.FS
	base   string
	ignore []string
}

func (s *scanner) scan() (*Changelog, error) {
	entries, err := s.readDir(".")
	if err != nil {
		return nil, err
	}

	c := &Changelog{}
	var releases []releaseKey

	for _, de := range entries {
		name := de.Name()
		if s.skip(name, name) {
			continue
		}

		isDir, err := s.isDir(name, de)
		if err != nil {
			return nil, err
		}
		if !isDir {
			if err := s.scanRootFile(c, name); err != nil {
				return nil, err
			}
			continue
		}

		if name == UnreleasedDir {
			bucket, err := s.scanBucket(name, UnreleasedLabel())
			if err != nil {
				return nil, err
			}
			c.Unreleased = bucket
			continue
		}

		if err := ValidateVersionLabel(name); err != nil {
			return nil, structuralError(s.path(name), fmt.Sprintf("unrecognized bucket directory %q", name))
		}
		releases = append(releases, newReleaseKey(name))
	}

	slices.SortStableFunc(releases, compareNewestFirst)
	if err := checkDuplicateVersions(releases); err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Path = s.path(e.Path)
		}
		return nil, err
	}

	c.Releases = make([]Bucket, 0, len(releases))
	for _, r := range releases {
		bucket, err := s.scanBucket(r.label, ReleaseLabel(r.label))
		if err != nil {
			return nil, err
		}
		c.Releases = append(c.Releases, *bucket)
	}

	return c, nil
}

func (s *scanner) scanRootFile(c *Changelog, name string) error {
	switch name {
	case EpilogueFile:
		text, err := s.readFile(name)
		if err != nil {
			return err
		}
		c.Epilogue = text
		return nil
	case ConfigFile, LegacyConfigFile:
		return nil
	default:
		return structuralError(s.path(name), fmt.Sprintf("unrecognized file %q in changelog root", name))
	}
}

func (s *scanner) scanBucket(dir string, label Label) (*Bucket, error) {
	entries, err := s.readDir(dir)
	if err != nil {
		return nil, err
	}

	bucket := &Bucket{Label: label}
	seen := make(map[CategoryKind]string)

	for _, de := range entries {
		name := de.Name()
		rel := path.Join(dir, name)
		if s.skip(rel, name) {
			continue
		}

		isDir, err := s.isDir(rel, de)
		if err != nil {
			return nil, err
		}
		if !isDir {
			if name != SummaryFile {
				return nil, structuralError(s.path(rel), fmt.Sprintf("unexpected file %q in bucket %q", name, label))
			}
			notes, err := s.readFile(rel)
			if err != nil {
				return nil, err
			}
			bucket.Notes = notes
			continue
		}

		kind, err := ParseCategory(name)
		if err != nil {
			return nil, structuralError(s.path(rel), fmt.Sprintf("unrecognized category directory %q", name))
		}
		if prev, ok := seen[kind]; ok {
			return nil, structuralError(s.path(rel),
				fmt.Sprintf("category directories %q and %q both name %s", prev, name, kind))
		}
		seen[kind] = name

		category, err := s.scanCategory(rel, kind)
		if err != nil {
			return nil, err
		}
		if len(category.Groups) > 0 {
			bucket.Categories = append(bucket.Categories, category)
		}
	}

	slices.SortFunc(bucket.Categories, func(a, b Category) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
	return bucket, nil
}

func (s *scanner) scanCategory(dir string, kind CategoryKind) (Category, error) {
	category := Category{Kind: kind}

	entries, err := s.readDir(dir)
	if err != nil {
		return category, err
	}

	for _, de := range entries {
		name := de.Name()
		rel := path.Join(dir, name)
		if s.skip(rel, name) {
			continue
		}

		isDir, err := s.isDir(rel, de)
		if err != nil {
			return category, err
		}
		if !isDir {
			return category, structuralError(s.path(rel),
				fmt.Sprintf("entry file %q must be inside a component directory", name))
		}

		group, err := s.scanComponent(rel, name)
		if err != nil {
			return category, err
		}
		if len(group.Entries) > 0 {
			category.Groups = append(category.Groups, group)
		}
	}

	slices.SortFunc(category.Groups, func(a, b ComponentGroup) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return category, nil
}

func (s *scanner) scanComponent(dir, name string) (ComponentGroup, error) {
	group := ComponentGroup{Name: name}

	entries, err := s.readDir(dir)
	if err != nil {
		return group, err
	}

	for _, de := range entries {
		id := de.Name()
		rel := path.Join(dir, id)
		if s.skip(rel, id) {
			continue
		}

		isDir, err := s.isDir(rel, de)
		if err != nil {
			return group, err
		}
		if isDir {
			return group, structuralError(s.path(rel),
				fmt.Sprintf("unexpected directory %q inside component %q", id, name))
		}

		text, err := s.readFile(rel)
		if err != nil {
			return group, err
		}
		group.Entries = append(group.Entries, Entry{ID: id, Text: text})
	}

	slices.SortFunc(group.Entries, func(a, b Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return group, nil
}

// skip reports whether a directory entry is hidden or matches an ignore pattern.
func (s *scanner) skip(rel, name string) bool {
	if isHidden(name) {
		return true
	}
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// isDir resolves symlinks so a linked directory is treated as a directory.
func (s *scanner) isDir(rel string, de fs.DirEntry) (bool, error) {
	if de.Type()&fs.ModeSymlink == 0 {
		return de.IsDir(), nil
	}
	info, err := fs.Stat(s.fsys, rel)
	if err != nil {
		return false, s.wrapReadError(rel, "resolving symlink", err)
	}
	return info.IsDir(), nil
}

func (s *scanner) readDir(rel string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(s.fsys, rel)
	if err != nil {
		return nil, s.wrapReadError(rel, "reading directory", err)
	}
	return entries, nil
}

func (s *scanner) readFile(rel string) (string, error) {
	data, err := fs.ReadFile(s.fsys, rel)
	if err != nil {
		return "", s.wrapReadError(rel, "reading file", err)
	}
	return string(data), nil
}

func (s *scanner) wrapReadError(rel, message string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: ErrNotFound, Path: s.path(rel), Message: message, Err: err}
	}
	return ioError(s.path(rel), message, err)
}

// path converts a slash path relative to the root into a display path.
func (s *scanner) path(rel string) string {
	if s.base == "" {
		return rel
	}
	if rel == "." {
		return s.base
	}
	return filepath.Join(s.base, filepath.FromSlash(rel))
}
