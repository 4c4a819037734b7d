package domain

import (
	"context"
	"fmt"
	"time"
)

// Rule is one independent, named conformance check. Rules are built once at
// startup and executed exactly once per run, in registry order.
type Rule struct {
	Name    string
	Section string
	Check   func(ctx context.Context) ([]Violation, error)
}

// Violation is a single reported instance of a file failing one rule's
// precondition. File paths are always slash-separated and relative to the
// source root.
type Violation struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	switch {
	case v.File != "" && v.Line > 0:
		return fmt.Sprintf("%s:%d: %s", v.File, v.Line, v.Message)
	case v.File != "":
		return fmt.Sprintf("%s: %s", v.File, v.Message)
	default:
		return v.Message
	}
}

// RuleResult is the recorded outcome of one rule.
type RuleResult struct {
	Name       string      `json:"name"`
	Section    string      `json:"section"`
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
	// Error holds the message of a rule body that failed to execute
	// (collector I/O error, panic). Distinct from violations: the rule
	// still counts as failed either way.
	Error string `json:"error,omitempty"`
}

// Tally accumulates pass/fail counts across a run. It is built by folding
// rule results; Total == Passed + Failed holds after every fold.
type Tally struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Fold returns a new tally with the result counted.
func (t Tally) Fold(r RuleResult) Tally {
	t.Total++
	if r.Passed {
		t.Passed++
	} else {
		t.Failed++
	}
	return t
}

// RunReport is the complete outcome of one checker invocation.
type RunReport struct {
	Root       string       `json:"root"`
	CommitHash string       `json:"commit_hash,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
	Results    []RuleResult `json:"results"`
	Tally      Tally        `json:"tally"`
}

// Ok reports whether every rule passed.
func (r *RunReport) Ok() bool { return r.Tally.Failed == 0 }

// RunSummary is the compact form of a report kept in the run history file.
type RunSummary struct {
	Timestamp  time.Time `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Total      int       `json:"total"`
}

// Summary reduces a report to its history entry.
func (r *RunReport) Summary() RunSummary {
	return RunSummary{
		Timestamp:  r.Timestamp,
		CommitHash: r.CommitHash,
		Passed:     r.Tally.Passed,
		Failed:     r.Tally.Failed,
		Total:      r.Tally.Total,
	}
}
