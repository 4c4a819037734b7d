package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckConfig holds everything the rule battery is parameterized on:
// thresholds, the domain list, and every per-rule allowlist. Allowlists are
// data, not code, so exemptions can be audited and extended without touching
// rule bodies; each entry carries the justification alongside the identifier.
type CheckConfig struct {
	// SourceRoot is the directory checked, relative to the project path.
	SourceRoot string `yaml:"source_root" json:"source_root"`

	// Domains are the top-level subdirectories of <SourceRoot>/domains that
	// must stay isolated from each other. Each maps to an import alias
	// @<domain>/.
	Domains []string `yaml:"domains" json:"domains"`

	Thresholds Thresholds  `yaml:"thresholds" json:"thresholds"`
	Allow      AllowConfig `yaml:"allow" json:"allow"`

	// GeneratedImporters are the filename suffixes permitted to import the
	// generated API client namespaces.
	GeneratedImporters []string `yaml:"generated_importers" json:"generated_importers"`
}

// Thresholds are the numeric-rule limits. Each limit is inclusive: a value
// exactly at the threshold passes, threshold+1 fails.
type Thresholds struct {
	MaxFileLines     int `yaml:"max_file_lines"     json:"max_file_lines"`
	MaxMethodLines   int `yaml:"max_method_lines"   json:"max_method_lines"`
	MaxParameters    int `yaml:"max_parameters"     json:"max_parameters"`
	MaxPublicMethods int `yaml:"max_public_methods" json:"max_public_methods"`
}

// AllowEntry exempts a file (or filename suffix pattern, depending on the
// consuming rule) from exactly one rule. Reason is documentation only and is
// never evaluated at runtime.
type AllowEntry struct {
	Path   string `yaml:"path" json:"path"`
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// MethodAllowEntry exempts a single method in a single file.
type MethodAllowEntry struct {
	File   string `yaml:"file" json:"file"`
	Method string `yaml:"method" json:"method"`
	Reason string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// AllowConfig groups the per-rule exemption tables. Keys are file paths
// relative to the source root unless the rule documents otherwise.
type AllowConfig struct {
	FileLineLimit     []AllowEntry       `yaml:"file_line_limit,omitempty"     json:"file_line_limit,omitempty"`
	MethodLineLimit   []MethodAllowEntry `yaml:"method_line_limit,omitempty"   json:"method_line_limit,omitempty"`
	ParameterLimit    []MethodAllowEntry `yaml:"parameter_limit,omitempty"     json:"parameter_limit,omitempty"`
	PublicMethodLimit []AllowEntry       `yaml:"public_method_limit,omitempty" json:"public_method_limit,omitempty"`

	// SingleExportPatterns are filename suffixes exempt from the
	// one-export-per-file rule, in addition to index.ts barrels.
	SingleExportPatterns []AllowEntry `yaml:"single_export_patterns,omitempty" json:"single_export_patterns,omitempty"`

	// DefaultChangeDetection lists components allowed to keep the default
	// change-detection strategy.
	DefaultChangeDetection []AllowEntry `yaml:"default_change_detection,omitempty" json:"default_change_detection,omitempty"`

	// RelativeImportFiles are root-level files allowed to use relative
	// import specifiers (barrel index.ts files are always allowed).
	RelativeImportFiles []AllowEntry `yaml:"relative_import_files,omitempty" json:"relative_import_files,omitempty"`
}

// GeneratedSpecifiers are the literal import spellings of the generated API
// client. Any of these appearing outside a permitted importer is a violation.
var GeneratedSpecifiers = []string{
	`"@generated/api`,
	`'@generated/api`,
	`"@generated/models`,
	`'@generated/models`,
}

// DefaultConfig returns the built-in configuration: the thresholds and
// exemption tables the tool ships with. A project .archlint.yaml overrides
// individual sections wholesale.
func DefaultConfig() CheckConfig {
	return CheckConfig{
		SourceRoot: "src",
		Domains:    []string{"admin", "game", "user", "logging", "health"},
		Thresholds: Thresholds{
			MaxFileLines:     800,
			MaxMethodLines:   50,
			MaxParameters:    5,
			MaxPublicMethods: 10,
		},
		GeneratedImporters: []string{".repository.ts", ".repository.spec.ts"},
		Allow: AllowConfig{
			MethodLineLimit: []MethodAllowEntry{
				{
					File:   "domains/game/services/board-renderer.service.ts",
					Method: "drawBoard",
					Reason: "single canvas painting sequence; splitting it obscures draw order",
				},
			},
			ParameterLimit: []MethodAllowEntry{
				{
					File:   "app.config.ts",
					Method: "constructor",
					Reason: "framework bootstrap wiring takes every provider explicitly",
				},
			},
			SingleExportPatterns: []AllowEntry{
				{Path: ".routes.ts", Reason: "route tables co-locate the route constant and its guard"},
				{Path: ".model.ts", Reason: "model files group an entity with its narrow helper types"},
			},
			RelativeImportFiles: []AllowEntry{
				{Path: "main.ts", Reason: "bootstrap file wires the application shell"},
				{Path: "app.config.ts", Reason: "bootstrap file wires the application shell"},
				{Path: "app.routes.ts", Reason: "top-level route table references sibling bootstrap files"},
				{Path: "test-setup.ts", Reason: "test harness loads sibling polyfills"},
			},
		},
	}
}

var domainNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Validate checks the configuration for values the rule battery cannot run
// with, returning a descriptive error for the first problem found.
func (c CheckConfig) Validate() error {
	if strings.Contains(c.SourceRoot, "..") {
		return fmt.Errorf("source_root %q must not traverse upward", c.SourceRoot)
	}

	if len(c.Domains) == 0 {
		return fmt.Errorf("domains list must not be empty")
	}
	seen := make(map[string]bool, len(c.Domains))
	for _, d := range c.Domains {
		if !domainNamePattern.MatchString(d) {
			return fmt.Errorf("domain %q: names must be lowercase alphanumeric", d)
		}
		if seen[d] {
			return fmt.Errorf("domain %q listed twice", d)
		}
		seen[d] = true
	}

	t := c.Thresholds
	for _, lim := range []struct {
		name  string
		value int
	}{
		{"max_file_lines", t.MaxFileLines},
		{"max_method_lines", t.MaxMethodLines},
		{"max_parameters", t.MaxParameters},
		{"max_public_methods", t.MaxPublicMethods},
	} {
		if lim.value <= 0 {
			return fmt.Errorf("threshold %s must be positive, got %d", lim.name, lim.value)
		}
	}

	for _, s := range c.GeneratedImporters {
		if !strings.HasSuffix(s, ".ts") {
			return fmt.Errorf("generated importer suffix %q must end in .ts", s)
		}
	}

	return nil
}

// AllowsFile reports whether path appears in the entry list.
func AllowsFile(entries []AllowEntry, path string) bool {
	for _, e := range entries {
		if e.Path == path {
			return true
		}
	}
	return false
}

// AllowsSuffix reports whether path ends with any entry's pattern.
func AllowsSuffix(entries []AllowEntry, path string) bool {
	for _, e := range entries {
		if strings.HasSuffix(path, e.Path) {
			return true
		}
	}
	return false
}

// AllowsMethod reports whether (file, method) appears in the entry list.
func AllowsMethod(entries []MethodAllowEntry, file, method string) bool {
	for _, e := range entries {
		if e.File == file && e.Method == method {
			return true
		}
	}
	return false
}
