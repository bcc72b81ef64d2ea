package changelog

import "strings"

// Fixed names inside a changelog root.
const (
	// UnreleasedDir is the bucket holding pending entries.
	UnreleasedDir = "unreleased"
	// EpilogueFile is appended verbatim after all buckets.
	EpilogueFile = "epilogue.md"
	// SummaryFile holds optional free-form notes inside a bucket.
	SummaryFile = "summary.md"
	// ConfigFile and LegacyConfigFile are project configuration files that may
	// live next to the buckets.
	ConfigFile       = "config.yml"
	LegacyConfigFile = "config.json"
	// KeepFile marks skeleton directories so version control keeps them.
	KeepFile = ".gitkeep"
	// DefaultRoot is the conventional changelog directory name.
	DefaultRoot = ".changelog"
)

// Entry is a single change description. ID is the file name it was read
// from and only determines ordering.
type Entry struct {
	ID   string
	Text string
}

// ComponentGroup holds the entries of one named subsystem within a category.
type ComponentGroup struct {
	Name    string
	Entries []Entry
}

// Category holds the component groups of one kind of change.
type Category struct {
	Kind   CategoryKind
	Groups []ComponentGroup
}

// EntryCount returns the number of entries across all groups.
func (c Category) EntryCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Entries)
	}
	return n
}

// Label identifies a bucket: either the unreleased bucket or a release.
type Label struct {
	unreleased bool
	version    string
}

// UnreleasedLabel returns the label of the unreleased bucket.
func UnreleasedLabel() Label {
	return Label{unreleased: true}
}

// ReleaseLabel returns the label of a release bucket.
func ReleaseLabel(version string) Label {
	return Label{version: version}
}

// IsUnreleased returns true for the unreleased bucket.
func (l Label) IsUnreleased() bool {
	return l.unreleased
}

// Version returns the release version, or "" for the unreleased bucket.
func (l Label) Version() string {
	return l.version
}

func (l Label) String() string {
	if l.unreleased {
		return UnreleasedDir
	}
	return l.version
}

// Bucket is either the unreleased bucket or a release.
type Bucket struct {
	Label      Label
	Categories []Category
	// Notes is free-form text from the bucket's summary file.
	Notes string
}

// IsEmpty returns true if the bucket has no categories.
func (b Bucket) IsEmpty() bool {
	return len(b.Categories) == 0
}

// EntryCount returns the number of entries across all categories.
func (b Bucket) EntryCount() int {
	n := 0
	for _, c := range b.Categories {
		n += c.EntryCount()
	}
	return n
}

// Changelog is the full document model read from a changelog root.
type Changelog struct {
	// Unreleased is nil when the unreleased directory does not exist, which
	// usually means a release was interrupted.
	Unreleased *Bucket
	// Releases are ordered newest first.
	Releases []Bucket
	// Epilogue is appended verbatim after all buckets.
	Epilogue string
}

// HasPending returns true if the unreleased bucket has at least one entry.
func (c *Changelog) HasPending() bool {
	return c.Unreleased != nil && c.Unreleased.EntryCount() > 0
}

// Release returns the release bucket with the given version.
func (c *Changelog) Release(version string) (*Bucket, bool) {
	for i := range c.Releases {
		if c.Releases[i].Label.Version() == version {
			return &c.Releases[i], true
		}
	}
	return nil, false
}

// Versions returns the release versions, newest first.
func (c *Changelog) Versions() []string {
	versions := make([]string, 0, len(c.Releases))
	for _, r := range c.Releases {
		versions = append(versions, r.Label.Version())
	}
	return versions
}

// isHidden reports whether name should be skipped during scanning.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
