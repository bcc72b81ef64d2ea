package cli

import (
	"errors"

	"github.com/unclog-go/unclog/internal/changelog"
	clierrors "github.com/unclog-go/unclog/internal/errors"
)

// Exit codes for the unclog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the command failed at runtime
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = 3

	// ExitMissingPrerequisite indicates the changelog tree is missing or not ready
	ExitMissingPrerequisite = 4

	// ExitNeedsRepair indicates a release moved entries but left the tree
	// without an unreleased directory
	ExitNeedsRepair = 6
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, changelog.ErrPartialMutation) {
		return ExitNeedsRepair
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument, clierrors.Configuration:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingPrerequisite
	default:
		return ExitFailure
	}
}
