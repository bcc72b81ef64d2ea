package config

import "time"

// GetDefaultConfigTemplate returns a commented project config that documents
// every option.
func GetDefaultConfigTemplate() string {
	return `# unclog configuration
# Values here override ~/.config/unclog/config.yml; UNCLOG_* environment
# variables override both.

heading: "# CHANGELOG"               # First line of the rendered changelog
unreleased_heading: Unreleased       # Title of the pending bucket
bullet: "-"                          # List marker: - | * | +
ignore:                              # Doublestar patterns the scanner skips
  - "*.swp"
  - "*~"
watch_debounce: 200ms                # Quiet period before build --watch re-renders
`
}

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"heading":            "# CHANGELOG",
		"unreleased_heading": "Unreleased",
		"bullet":             "-",
		"ignore":             []string{"*.swp", "*~"},
		"watch_debounce":     200 * time.Millisecond,
	}
}
