package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// InitOptions configures Init.
type InitOptions struct {
	// EpiloguePath, if set, is copied to <root>/epilogue.md.
	EpiloguePath string
	// FS performs the mutations. Defaults to OS.
	FS FileSystem
}

// Init creates a fresh changelog skeleton at root: an unreleased directory
// holding one empty directory per category, plus the epilogue when one is
// given. root may be missing or an empty directory; anything else fails with
// ErrAlreadyInitialized rather than merging into existing content.
func Init(root string, opts InitOptions) error {
	fsys := orOS(opts.FS)

	var epilogue []byte
	if opts.EpiloguePath != "" {
		data, err := fsys.ReadFile(opts.EpiloguePath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &Error{Kind: ErrNotFound, Path: opts.EpiloguePath, Message: "epilogue file does not exist", Err: err}
			}
			return ioError(opts.EpiloguePath, "reading epilogue", err)
		}
		epilogue = data
	}

	existed, err := checkInitTarget(fsys, root)
	if err != nil {
		return err
	}

	if err := populate(fsys, root, epilogue); err != nil {
		return rollbackInit(fsys, root, existed, err)
	}
	return nil
}

func populate(fsys FileSystem, root string, epilogue []byte) error {
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return ioError(root, "creating changelog directory", err)
	}
	if err := writeSkeleton(fsys, filepath.Join(root, UnreleasedDir)); err != nil {
		return err
	}
	if epilogue != nil {
		path := filepath.Join(root, EpilogueFile)
		if err := fsys.WriteFile(path, epilogue, 0o644); err != nil {
			return ioError(path, "writing epilogue", err)
		}
	}
	return nil
}

// rollbackInit removes what a failed Init created so it can be retried. A
// root that existed before is kept, emptied of the skeleton and epilogue.
// When removal fails too, cause is annotated with the leftover path.
func rollbackInit(fsys FileSystem, root string, existed bool, cause error) error {
	targets := []string{root}
	if existed {
		targets = []string{filepath.Join(root, UnreleasedDir), filepath.Join(root, EpilogueFile)}
	}
	for _, target := range targets {
		if err := fsys.RemoveAll(target); err != nil {
			var e *Error
			if errors.As(cause, &e) {
				e.Message += fmt.Sprintf("; partial skeleton left at %s, remove it before retrying", root)
			}
			return cause
		}
	}
	return cause
}

// checkInitTarget reports whether root already exists. It fails unless root
// is missing or an empty directory.
func checkInitTarget(fsys FileSystem, root string) (bool, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, ioError(root, "checking changelog directory", err)
	}
	if !info.IsDir() {
		return true, structuralError(root, "changelog path exists and is not a directory")
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return true, ioError(root, "reading changelog directory", err)
	}
	if len(entries) == 0 {
		return true, nil
	}

	for _, e := range entries {
		if e.Name() == UnreleasedDir {
			return true, &Error{Kind: ErrAlreadyInitialized, Path: root, Message: "changelog is already initialized"}
		}
	}
	return true, &Error{
		Kind:    ErrAlreadyInitialized,
		Path:    root,
		Message: fmt.Sprintf("directory is not empty (%d entries); refusing to merge", len(entries)),
	}
}
