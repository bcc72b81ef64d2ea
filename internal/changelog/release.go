package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"
)

// ReleaseState is the progress of a release transition.
type ReleaseState int

const (
	// ReleaseNotStarted: preconditions are being checked; nothing has changed on disk.
	ReleaseNotStarted ReleaseState = iota
	// ReleaseMoved: unreleased/ has been renamed to the version directory.
	ReleaseMoved
	// ReleaseSkeletonRestored: an empty unreleased/ skeleton exists again. Terminal.
	ReleaseSkeletonRestored
	// ReleaseFailed: the transition stopped; see ReleaseResult.Reason. Terminal.
	ReleaseFailed
)

func (s ReleaseState) String() string {
	switch s {
	case ReleaseNotStarted:
		return "not started"
	case ReleaseMoved:
		return "moved"
	case ReleaseSkeletonRestored:
		return "skeleton restored"
	case ReleaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("ReleaseState(%d)", int(s))
	}
}

// ReleaseOptions configures Release.
type ReleaseOptions struct {
	// Scan is used to validate the tree before anything is changed.
	Scan ScanOptions
	// FS performs the mutations. Defaults to OS.
	FS FileSystem
}

// ReleaseResult describes the outcome of Release. It is returned even when
// Release fails so callers can tell whether the tree was modified.
type ReleaseResult struct {
	Version string
	// Path is the new release directory.
	Path string
	// Entries is the number of entries moved into the release.
	Entries int
	State   ReleaseState
	// Moved is true once unreleased/ has been renamed, including when a
	// later step failed and the tree needs repair.
	Moved bool
	// Reason is the error that put the transition in ReleaseFailed.
	Reason error
}

// Release turns the unreleased bucket under root into a release named
// version and recreates an empty unreleased skeleton.
//
// All preconditions are checked before the tree is touched: the tree must
// scan cleanly, hold at least one pending entry, and not already contain the
// version. If the rename succeeds but the skeleton cannot be recreated, the
// returned error matches ErrPartialMutation.
func Release(root, version string, opts ReleaseOptions) (*ReleaseResult, error) {
	t := &releaseTxn{
		fsys:   orOS(opts.FS),
		src:    filepath.Join(root, UnreleasedDir),
		dst:    filepath.Join(root, version),
		result: &ReleaseResult{Version: version, Path: filepath.Join(root, version)},
	}

	if err := t.checkPreconditions(root, version, opts.Scan); err != nil {
		return t.result, t.fail(err)
	}
	if err := t.move(); err != nil {
		return t.result, t.fail(err)
	}
	if err := t.restoreSkeleton(); err != nil {
		return t.result, t.fail(err)
	}
	return t.result, nil
}

// releaseTxn walks ReleaseNotStarted -> ReleaseMoved -> ReleaseSkeletonRestored.
// Any failure moves it to ReleaseFailed.
type releaseTxn struct {
	fsys   FileSystem
	src    string
	dst    string
	result *ReleaseResult
}

func (t *releaseTxn) fail(err error) error {
	t.result.State = ReleaseFailed
	t.result.Reason = err
	return err
}

func (t *releaseTxn) checkPreconditions(root, version string, scanOpts ScanOptions) error {
	if err := ValidateVersionLabel(version); err != nil {
		return err
	}

	c, err := ScanDir(root, scanOpts)
	if err != nil {
		return err
	}

	if c.Unreleased == nil {
		return &Error{
			Kind:    ErrNotFound,
			Path:    t.src,
			Message: "unreleased directory is missing; a previous release may have been interrupted",
		}
	}
	if !c.HasPending() {
		return &Error{Kind: ErrEmptyRelease, Path: t.src, Message: "no unreleased entries"}
	}

	candidate := newReleaseKey(version)
	for _, existing := range c.Versions() {
		switch labelConflict(candidate, newReleaseKey(existing)) {
		case sameLabel:
			return &Error{
				Kind:    ErrAlreadyReleased,
				Path:    filepath.Join(root, existing),
				Message: fmt.Sprintf("version %q is already released as %q", version, existing),
			}
		case ambiguousLabel:
			return structuralError(filepath.Join(root, existing),
				fmt.Sprintf("version %q differs from existing release %q only by case", version, existing))
		}
	}

	t.result.Entries = c.Unreleased.EntryCount()
	return nil
}

func (t *releaseTxn) move() error {
	if t.result.State != ReleaseNotStarted {
		return fmt.Errorf("release: move from state %s", t.result.State)
	}

	// Another process may have created the version since the scan.
	if _, err := t.fsys.Stat(t.dst); err == nil {
		return &Error{Kind: ErrAlreadyReleased, Path: t.dst, Message: "release directory already exists"}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return ioError(t.dst, "checking release directory", err)
	}

	if err := t.fsys.Rename(t.src, t.dst); err != nil {
		if errors.Is(err, fs.ErrExist) || errors.Is(err, syscall.ENOTEMPTY) {
			return &Error{Kind: ErrAlreadyReleased, Path: t.dst, Message: "release directory already exists", Err: err}
		}
		return ioError(t.src, "moving unreleased directory to "+t.dst, err)
	}

	t.result.State = ReleaseMoved
	t.result.Moved = true
	return nil
}

func (t *releaseTxn) restoreSkeleton() error {
	if t.result.State != ReleaseMoved {
		return fmt.Errorf("release: restore skeleton from state %s", t.result.State)
	}

	if err := writeSkeleton(t.fsys, t.src); err != nil {
		return &Error{
			Kind:    ErrPartialMutation,
			Path:    t.src,
			Message: fmt.Sprintf("entries were moved to %s but the empty unreleased directory could not be recreated", t.dst),
			Err:     err,
		}
	}

	t.result.State = ReleaseSkeletonRestored
	return nil
}
