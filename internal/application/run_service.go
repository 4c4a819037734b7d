// Package application orchestrates the check pipeline:
// load config -> build rule battery -> run each rule -> fold the tally.
package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/rules"
)

// RunService wires the outbound ports into one checker run.
type RunService struct {
	collector domain.SourceCollector
	loader    domain.ConfigLoader
	repo      domain.RepoInfo
}

func NewRunService(
	collector domain.SourceCollector,
	loader domain.ConfigLoader,
	repo domain.RepoInfo,
) *RunService {
	return &RunService{
		collector: collector,
		loader:    loader,
		repo:      repo,
	}
}

// Run executes the full rule battery against the project at projectPath and
// returns the aggregated report. Rules run sequentially in registry order;
// a failing or erroring rule never stops the rules after it. The returned
// error covers setup problems only (bad config, unresolvable path), which
// abort before any rule has run.
func (s *RunService) Run(ctx context.Context, projectPath string) (*domain.RunReport, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	cfg, err := s.loader.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	srcRoot := filepath.Join(absPath, filepath.FromSlash(cfg.SourceRoot))
	battery := rules.Build(srcRoot, cfg, s.collector)

	report := &domain.RunReport{
		Root:      absPath,
		Timestamp: time.Now().UTC(),
	}
	if s.repo != nil {
		// Best effort: a broken repository never blocks the check itself.
		if hash, err := s.repo.CommitHash(absPath); err == nil {
			report.CommitHash = hash
		}
	}

	for _, rule := range battery {
		result := runRule(ctx, rule)
		report.Results = append(report.Results, result)
		report.Tally = report.Tally.Fold(result)
	}

	return report, nil
}

// runRule executes one rule, containing every failure mode at the rule
// boundary: a violation list fails the rule, an error fails the rule with
// the error text, and a panic in a rule body is recovered and reported the
// same way. Nothing a rule does can abort the batch.
func runRule(ctx context.Context, rule domain.Rule) (result domain.RuleResult) {
	result = domain.RuleResult{Name: rule.Name, Section: rule.Section}

	defer func() {
		if r := recover(); r != nil {
			result.Passed = false
			result.Error = fmt.Sprintf("rule panicked: %v", r)
		}
	}()

	violations, err := rule.Check(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Violations = violations
	result.Passed = len(violations) == 0
	return result
}
