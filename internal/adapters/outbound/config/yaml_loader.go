// Package config implements domain.ConfigLoader by reading .archlint.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/archlint/archlint/internal/domain"
)

const fileName = ".archlint.yaml"

// YAMLLoader reads the optional project configuration file.
type YAMLLoader struct{}

func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .archlint.yaml from projectPath. A missing file yields the
// built-in defaults; a present file overrides sections wholesale and is
// validated before use so a typo fails the run up front rather than
// silently relaxing a rule.
func (l *YAMLLoader) Load(projectPath string) (domain.CheckConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.CheckConfig{}, err
	}

	var override domain.CheckConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.CheckConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg := merge(domain.DefaultConfig(), override)
	if err := cfg.Validate(); err != nil {
		return domain.CheckConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

// merge overlays explicit override values on the defaults. List sections
// replace entirely rather than appending, and a present-but-empty list is an
// explicit override too, so a project can shrink an allowlist to nothing as
// well as grow it. Only an absent key keeps the default.
func merge(base, override domain.CheckConfig) domain.CheckConfig {
	result := base

	if override.SourceRoot != "" {
		result.SourceRoot = override.SourceRoot
	}
	if override.Domains != nil {
		result.Domains = override.Domains
	}
	if override.GeneratedImporters != nil {
		result.GeneratedImporters = override.GeneratedImporters
	}

	t := override.Thresholds
	if t.MaxFileLines > 0 {
		result.Thresholds.MaxFileLines = t.MaxFileLines
	}
	if t.MaxMethodLines > 0 {
		result.Thresholds.MaxMethodLines = t.MaxMethodLines
	}
	if t.MaxParameters > 0 {
		result.Thresholds.MaxParameters = t.MaxParameters
	}
	if t.MaxPublicMethods > 0 {
		result.Thresholds.MaxPublicMethods = t.MaxPublicMethods
	}

	a := override.Allow
	if a.FileLineLimit != nil {
		result.Allow.FileLineLimit = a.FileLineLimit
	}
	if a.MethodLineLimit != nil {
		result.Allow.MethodLineLimit = a.MethodLineLimit
	}
	if a.ParameterLimit != nil {
		result.Allow.ParameterLimit = a.ParameterLimit
	}
	if a.PublicMethodLimit != nil {
		result.Allow.PublicMethodLimit = a.PublicMethodLimit
	}
	if a.SingleExportPatterns != nil {
		result.Allow.SingleExportPatterns = a.SingleExportPatterns
	}
	if a.DefaultChangeDetection != nil {
		result.Allow.DefaultChangeDetection = a.DefaultChangeDetection
	}
	if a.RelativeImportFiles != nil {
		result.Allow.RelativeImportFiles = a.RelativeImportFiles
	}

	return result
}
