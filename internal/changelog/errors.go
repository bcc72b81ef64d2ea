package changelog

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is.
var (
	// ErrNotFound indicates a missing root, bucket or file.
	ErrNotFound = errors.New("not found")

	// ErrStructural indicates the directory tree does not follow the schema.
	ErrStructural = errors.New("structural error")

	// ErrEmptyRelease indicates a release was requested with no pending entries.
	ErrEmptyRelease = errors.New("nothing to release")

	// ErrAlreadyReleased indicates the requested version already exists.
	ErrAlreadyReleased = errors.New("already released")

	// ErrIO indicates an underlying read, write or rename failure.
	ErrIO = errors.New("i/o error")

	// ErrPartialMutation indicates the unreleased directory was moved but the
	// empty skeleton could not be recreated. The tree needs manual repair.
	ErrPartialMutation = errors.New("partial mutation")

	// ErrAlreadyInitialized indicates init was run against a non-empty root.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrEntryExists indicates an entry file is already present.
	ErrEntryExists = errors.New("entry already exists")
)

// Error carries the kind of failure along with the offending path.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Path is the file or directory involved (optional).
	Path string
	// Message describes what went wrong (optional).
	Message string
	// Err is the underlying cause (optional).
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func structuralError(path, message string) *Error {
	return &Error{Kind: ErrStructural, Path: path, Message: message}
}

func ioError(path, message string, err error) *Error {
	return &Error{Kind: ErrIO, Path: path, Message: message, Err: err}
}

// KindOf returns the sentinel kind of err, or nil if err did not originate
// from this package.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrPartialMutation,
		ErrNotFound,
		ErrStructural,
		ErrEmptyRelease,
		ErrAlreadyReleased,
		ErrAlreadyInitialized,
		ErrEntryExists,
		ErrIO,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
