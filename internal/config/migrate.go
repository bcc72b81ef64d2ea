package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

const migratedHeader = "# unclog configuration\n# Migrated from config.json\n\n"

// MigrationResult describes what MigrateProjectConfig did or would do.
type MigrationResult struct {
	SourcePath string
	TargetPath string
	// BackupPath is where the JSON file is moved after a migration. The name
	// is hidden so the scanner skips it.
	BackupPath string
	Success    bool
	DryRun     bool
	Message    string
}

// MigrateProjectConfig converts <root>/config.json to <root>/config.yml.
// The JSON values must pass the same validation as Load. Nothing is written
// when config.yml already exists or in dry-run mode.
func MigrateProjectConfig(root string, dryRun bool) (*MigrationResult, error) {
	jsonPath := LegacyProjectConfigPath(root)
	yamlPath := ProjectConfigPath(root)
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		BackupPath: filepath.Join(root, "."+filepath.Base(jsonPath)+".bak"),
		DryRun:     dryRun,
	}

	switch {
	case !fileExists(jsonPath):
		result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
		return result, nil
	case fileExists(yamlPath):
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	legacy, err := loadLegacy(jsonPath)
	if err != nil {
		return nil, err
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s", jsonPath, yamlPath)
		return result, nil
	}

	data, err := yaml.Marshal(legacy.Raw())
	if err != nil {
		return nil, fmt.Errorf("encoding %s as YAML: %w", jsonPath, err)
	}
	if err := os.WriteFile(yamlPath, append([]byte(migratedHeader), data...), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", yamlPath, err)
	}
	if err := os.Rename(jsonPath, result.BackupPath); err != nil {
		return nil, fmt.Errorf("backing up %s: %w", jsonPath, err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}

// loadLegacy reads a JSON config and checks it merges cleanly over the
// defaults. It returns the JSON values alone.
func loadLegacy(path string) (*koanf.Koanf, error) {
	legacy := koanf.New(".")
	if err := legacy.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	merged := koanf.New(".")
	if err := loadDefaults(merged); err != nil {
		return nil, err
	}
	if err := merged.Merge(legacy); err != nil {
		return nil, fmt.Errorf("merging %s: %w", path, err)
	}
	var cfg Configuration
	if err := merged.Unmarshal("", &cfg); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}
	if err := ValidateConfigValues(&cfg, path); err != nil {
		return nil, err
	}
	return legacy, nil
}
