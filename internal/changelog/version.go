package changelog

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/go-version"
)

var labelPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// ValidateVersionLabel checks that label can name a release directory.
func ValidateVersionLabel(label string) error {
	if label == "" {
		return structuralError("", "version label is empty")
	}
	if !labelPattern.MatchString(label) {
		return structuralError(label, fmt.Sprintf("invalid version label %q (allowed: letters, digits, '.', '_', '+', '-')", label))
	}
	if strings.EqualFold(label, UnreleasedDir) {
		return structuralError(label, fmt.Sprintf("%q is reserved for pending entries", label))
	}
	return nil
}

// NormalizeVersion returns the canonical semantic version for label, or ""
// when label does not parse as one. "v1.0.0" and "1.0.0" normalize to the
// same string.
func NormalizeVersion(label string) string {
	v, err := version.NewSemver(label)
	if err != nil {
		return ""
	}
	return v.String()
}

// releaseKey pairs a label with its parsed version, if any.
type releaseKey struct {
	label string
	ver   *version.Version
}

func newReleaseKey(label string) releaseKey {
	v, err := version.NewSemver(label)
	if err != nil {
		return releaseKey{label: label}
	}
	return releaseKey{label: label, ver: v}
}

// compareNewestFirst orders release labels newest first. Labels that parse
// as semantic versions come before those that do not; unparsable labels are
// ordered lexically descending.
func compareNewestFirst(a, b releaseKey) int {
	switch {
	case a.ver != nil && b.ver != nil:
		if c := b.ver.Compare(a.ver); c != 0 {
			return c
		}
		return cmp.Compare(b.label, a.label)
	case a.ver != nil:
		return -1
	case b.ver != nil:
		return 1
	default:
		return cmp.Compare(b.label, a.label)
	}
}

// SortVersions returns labels ordered newest first.
func SortVersions(labels []string) []string {
	keys := make([]releaseKey, 0, len(labels))
	for _, l := range labels {
		keys = append(keys, newReleaseKey(l))
	}
	slices.SortStableFunc(keys, compareNewestFirst)

	sorted := make([]string, 0, len(keys))
	for _, k := range keys {
		sorted = append(sorted, k.label)
	}
	return sorted
}

// conflict describes how a candidate label clashes with an existing one.
type conflict int

const (
	noConflict conflict = iota
	// sameLabel: byte-equal labels, or equal semantic versions.
	sameLabel
	// ambiguousLabel: labels differ only by case, which some file systems
	// cannot tell apart.
	ambiguousLabel
)

func labelConflict(a, b releaseKey) conflict {
	if a.label == b.label {
		return sameLabel
	}
	if a.ver != nil && b.ver != nil && a.ver.Equal(b.ver) {
		return sameLabel
	}
	if strings.EqualFold(a.label, b.label) {
		return ambiguousLabel
	}
	return noConflict
}

// checkDuplicateVersions fails if two release labels name the same release.
// keys must already be sorted with compareNewestFirst so equal versions are
// adjacent; case-only collisions are checked pairwise.
func checkDuplicateVersions(keys []releaseKey) error {
	for i := 1; i < len(keys); i++ {
		if labelConflict(keys[i-1], keys[i]) == sameLabel {
			return structuralError(keys[i].label,
				fmt.Sprintf("duplicate version: %q and %q name the same release", keys[i-1].label, keys[i].label))
		}
	}

	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		folded := strings.ToLower(k.label)
		if other, ok := seen[folded]; ok {
			return structuralError(k.label,
				fmt.Sprintf("ambiguous version labels %q and %q differ only by case", other, k.label))
		}
		seen[folded] = k.label
	}
	return nil
}
