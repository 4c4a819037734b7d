package domain

import "context"

// SourceCollector lists and reads source files under a tree root.
type SourceCollector interface {
	// Collect returns slash-separated paths relative to root for every file
	// whose name ends with suffix, skipping hidden directories and
	// node_modules. A missing root surfaces as an fs.ErrNotExist error;
	// whether that is fatal is each rule's policy, not the collector's.
	Collect(root, suffix string) ([]string, error)

	// ReadAll reads the given root-relative files and returns their contents
	// keyed by the same relative path. Reads may be issued concurrently; the
	// map is complete when ReadAll returns.
	ReadAll(ctx context.Context, root string, paths []string) (map[string]string, error)
}

// ConfigLoader loads the project's check configuration.
type ConfigLoader interface {
	Load(projectPath string) (CheckConfig, error)
}

// RepoInfo exposes version-control metadata for report stamping. The stamp
// is advisory: an empty hash with a nil error means there is nothing to
// stamp (no repository, or no commits yet).
type RepoInfo interface {
	CommitHash(projectPath string) (string, error)
}

// RunHistory persists run summaries across invocations. The checker itself
// is stateless; history is advisory output only and never feeds back into
// rule verdicts.
type RunHistory interface {
	Append(projectPath string, entry RunSummary) error
	Load(projectPath string) ([]RunSummary, error)
}

// MethodSpanCounter measures the body length of a method found at a given
// 0-based line index. It is a strategy port so the default brace-depth
// scanner (which ignores braces inside string literals and comments) can be
// swapped without touching rule call sites.
type MethodSpanCounter interface {
	CountLines(lines []string, start int) int
}
