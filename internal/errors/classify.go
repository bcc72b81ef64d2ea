package errors

import (
	"errors"
	"path/filepath"

	"github.com/unclog-go/unclog/internal/changelog"
	"github.com/unclog-go/unclog/internal/config"
)

// Classify converts err into a CLIError with remediation. Errors that are
// already CLIErrors are returned unchanged; unknown errors become Runtime.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var cfgErr *config.ValidationError
	if errors.As(err, &cfgErr) {
		return ConfigParseError(err)
	}

	switch changelog.KindOf(err) {
	case changelog.ErrPartialMutation:
		return PartialRelease(err)
	case changelog.ErrNotFound:
		var e *changelog.Error
		if errors.As(err, &e) && filepath.Base(e.Path) == changelog.UnreleasedDir {
			return UnreleasedMissing(err)
		}
		return Wrap(err, Prerequisite)
	case changelog.ErrEmptyRelease:
		return NothingToRelease(err)
	case changelog.ErrAlreadyReleased:
		return AlreadyReleased(err)
	case changelog.ErrAlreadyInitialized:
		return AlreadyInitialized(err)
	case changelog.ErrEntryExists:
		return EntryExists(err)
	case changelog.ErrStructural:
		return StructuralProblem(err)
	default:
		return Wrap(err, Runtime)
	}
}
