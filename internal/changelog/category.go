package changelog

import (
	"fmt"
	"strings"
)

// CategoryKind is the closed set of change categories. The numeric value is
// the display order.
type CategoryKind int

const (
	BreakingChanges CategoryKind = iota
	Features
	Improvements
	BugFixes
	Deprecations
	Security

	categoryCount
)

var categoryNames = [categoryCount]string{
	BreakingChanges: "breaking-changes",
	Features:        "features",
	Improvements:    "improvements",
	BugFixes:        "bug-fixes",
	Deprecations:    "deprecations",
	Security:        "security",
}

var categoryTitles = [categoryCount]string{
	BreakingChanges: "BREAKING CHANGES",
	Features:        "FEATURES",
	Improvements:    "IMPROVEMENTS",
	BugFixes:        "BUG FIXES",
	Deprecations:    "DEPRECATIONS",
	Security:        "SECURITY",
}

// Categories returns every category kind in display order.
func Categories() []CategoryKind {
	kinds := make([]CategoryKind, 0, categoryCount)
	for k := CategoryKind(0); k < categoryCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// DirName returns the canonical directory name for the category.
func (k CategoryKind) DirName() string {
	if !k.valid() {
		return ""
	}
	return categoryNames[k]
}

// Title returns the heading used when rendering the category.
func (k CategoryKind) Title() string {
	if !k.valid() {
		return ""
	}
	return categoryTitles[k]
}

func (k CategoryKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("CategoryKind(%d)", int(k))
	}
	return categoryNames[k]
}

func (k CategoryKind) valid() bool {
	return k >= 0 && k < categoryCount
}

// ParseCategory maps a directory name to its category. Matching ignores case
// and treats underscores and spaces as hyphens, so "Bug_Fixes" is BugFixes.
func ParseCategory(name string) (CategoryKind, error) {
	normalized := normalizeCategoryName(name)
	for k, n := range categoryNames {
		if n == normalized {
			return CategoryKind(k), nil
		}
	}
	return 0, structuralError(name, fmt.Sprintf("unrecognized category %q (expected one of: %s)",
		name, strings.Join(categoryNames[:], ", ")))
}

func normalizeCategoryName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}
