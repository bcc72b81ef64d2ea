package errors

import "fmt"

// Common error messages for the unclog CLI.
// These templates ensure consistent, actionable error messages.

// MissingVersion creates an error for a release without a version argument.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"release version is required",
		"unclog release VERSION [ROOT_PATH]",
		"Example: unclog release v1.2.0",
	)
}

// ChangelogNotFound creates an error for a missing changelog directory.
func ChangelogNotFound(root string, err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("changelog directory not found: %s", root),
		Remediation: []string{
			fmt.Sprintf("Run 'unclog init %s' to create it", root),
			"Or pass the path of an existing changelog directory",
		},
		Err: err,
	}
}

// UnreleasedMissing creates an error for a tree without an unreleased directory.
func UnreleasedMissing(err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  err.Error(),
		Remediation: []string{
			"Check whether a previous release was interrupted",
			"Recreate the directory with 'mkdir -p <root>/unreleased' and retry",
		},
		Err: err,
	}
}

// NothingToRelease creates an error for a release with no pending entries.
func NothingToRelease(err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  err.Error(),
		Remediation: []string{
			"Add entries first with 'unclog add'",
		},
		Err: err,
	}
}

// AlreadyReleased creates an error for a version that already exists.
func AlreadyReleased(err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  err.Error(),
		Remediation: []string{
			"Choose a version that has not been released",
			"Run 'unclog build' to see existing releases",
		},
		Err: err,
	}
}

// PartialRelease creates an error for a release that moved the entries but
// could not recreate the unreleased skeleton.
func PartialRelease(err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  err.Error(),
		Remediation: []string{
			"The release directory is complete; only the empty unreleased directory is missing",
			"Recreate it with 'mkdir -p <root>/unreleased' before adding new entries",
		},
		Err: err,
	}
}

// AlreadyInitialized creates an error for init on a non-empty directory.
func AlreadyInitialized(err error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  err.Error(),
		Remediation: []string{
			"Choose an empty or missing directory",
			"Existing changelogs do not need to be initialized again",
		},
		Err: err,
	}
}

// EntryExists creates an error for an entry file that already exists.
func EntryExists(err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  err.Error(),
		Remediation: []string{
			"Pick a different --id",
			"Or pass --force to overwrite the existing entry",
		},
		Err: err,
	}
}

// StructuralProblem creates an error for a tree that does not follow the layout.
func StructuralProblem(err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  err.Error(),
		Remediation: []string{
			"Bucket directories are 'unreleased' or a version label",
			"Category directories are breaking-changes, features, improvements, bug-fixes, deprecations or security",
			"Entries live in <bucket>/<category>/<component>/<id>.md",
			"Add an 'ignore' pattern to config.yml for files that belong in the directory",
		},
		Err: err,
	}
}

// ConfigParseError creates an error for invalid configuration.
func ConfigParseError(err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  err.Error(),
		Remediation: []string{
			"Check the YAML syntax and values of config.yml",
			"Run 'unclog config show' to see the effective configuration",
		},
		Err: err,
	}
}

// InvalidFlagCombination creates an error for incompatible flags.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
	)
}

// OutOfDate creates an error for a changelog file that differs from the tree.
func OutOfDate(file string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("%s is out of date", file),
		fmt.Sprintf("Run 'unclog build --output %s' to regenerate it", file),
	)
}
