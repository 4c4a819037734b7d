package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/adapters/outbound/collector"
	"github.com/archlint/archlint/internal/domain"
)

type stubLoader struct {
	cfg domain.CheckConfig
	err error
}

func (s stubLoader) Load(string) (domain.CheckConfig, error) { return s.cfg, s.err }

func TestRunRule_PanicIsContained(t *testing.T) {
	rule := domain.Rule{
		Name:    "exploding",
		Section: "Test",
		Check: func(context.Context) ([]domain.Violation, error) {
			panic("boom")
		},
	}

	result := runRule(context.Background(), rule)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Error, "rule panicked")
	assert.Contains(t, result.Error, "boom")
}

func TestRunRule_ErrorIsContained(t *testing.T) {
	rule := domain.Rule{
		Name:    "erroring",
		Section: "Test",
		Check: func(context.Context) ([]domain.Violation, error) {
			return nil, errors.New("listing failed")
		},
	}

	result := runRule(context.Background(), rule)
	assert.False(t, result.Passed)
	assert.Equal(t, "listing failed", result.Error)
	assert.Empty(t, result.Violations)
}

func TestRunRule_Verdicts(t *testing.T) {
	clean := domain.Rule{
		Name: "clean", Section: "Test",
		Check: func(context.Context) ([]domain.Violation, error) { return nil, nil },
	}
	dirty := domain.Rule{
		Name: "dirty", Section: "Test",
		Check: func(context.Context) ([]domain.Violation, error) {
			return []domain.Violation{{File: "a.ts", Message: "bad"}}, nil
		},
	}

	assert.True(t, runRule(context.Background(), clean).Passed)

	result := runRule(context.Background(), dirty)
	assert.False(t, result.Passed)
	require.Len(t, result.Violations, 1)
}

func TestRun_MissingSourceRootDoesNotAbortTheBatch(t *testing.T) {
	svc := NewRunService(
		collector.New(),
		stubLoader{cfg: domain.DefaultConfig()},
		nil,
	)

	// Empty project: no src/ tree at all. Rules that require the source root
	// report an error; subtree-scoped rules treat the absence as zero files.
	report, err := svc.Run(context.Background(), t.TempDir())
	require.NoError(t, err, "a missing source tree is a rule failure, not a setup failure")

	assert.Len(t, report.Results, 15)
	assert.Equal(t, report.Tally.Total, report.Tally.Passed+report.Tally.Failed)
	assert.False(t, report.Ok())

	var errored, passed int
	for _, r := range report.Results {
		if r.Error != "" {
			errored++
		}
		if r.Passed {
			passed++
		}
	}
	assert.Greater(t, errored, 0, "root-scoped rules cannot list a missing tree")
	assert.Greater(t, passed, 0, "subtree-scoped rules pass on an absent subtree")
}

func TestRun_BadConfigAbortsBeforeAnyRule(t *testing.T) {
	svc := NewRunService(
		collector.New(),
		stubLoader{err: errors.New("yaml: bad")},
		nil,
	)

	_, err := svc.Run(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestRun_CleanFixturePasses(t *testing.T) {
	svc := NewRunService(
		collector.New(),
		stubLoader{cfg: domain.DefaultConfig()},
		nil,
	)

	report, err := svc.Run(context.Background(), "../../testdata/webapp/clean")
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.Truef(t, r.Passed, "rule %s: %v (error %q)", r.Name, r.Violations, r.Error)
	}
	assert.True(t, report.Ok())
	assert.Equal(t, 15, report.Tally.Passed)
}

func TestRun_ViolatingFixtureFailsExpectedRules(t *testing.T) {
	svc := NewRunService(
		collector.New(),
		stubLoader{cfg: domain.DefaultConfig()},
		nil,
	)

	report, err := svc.Run(context.Background(), "../../testdata/webapp/violating")
	require.NoError(t, err)
	assert.False(t, report.Ok())

	failed := make(map[string]bool)
	for _, r := range report.Results {
		if !r.Passed {
			failed[r.Name] = true
		}
	}
	for _, name := range []string{
		"single-export",
		"file-naming",
		"no-legacy-structural-directives",
		"no-template-function-calls",
		"onpush-change-detection",
		"no-cross-domain-imports",
		"no-multi-domain-imports",
		"shared-independence",
		"generated-client-isolation",
		"relative-import-confinement",
		"no-root-provided-domain-services",
	} {
		assert.Truef(t, failed[name], "expected rule %s to fail against the violating fixture", name)
	}
}
