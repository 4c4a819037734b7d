package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/domain"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "testdata", "webapp", name))
	require.NoError(t, err)
	return abs
}

func TestCheck_CleanTree(t *testing.T) {
	out, err := runCommand(t, "check", "--path", fixture(t, "clean"), "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "[PASS] file-line-limit")
	assert.Contains(t, out, "15 passed")
	assert.NotContains(t, out, "[FAIL]")
}

func TestCheck_ViolatingTree(t *testing.T) {
	out, err := runCommand(t, "check", "--path", fixture(t, "violating"), "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules failed")
	assert.Contains(t, out, "[FAIL] no-cross-domain-imports")
	assert.Contains(t, out, "imports from @game/")
	assert.Contains(t, out, "[FAIL] shared-independence")
}

func TestCheck_JSONOutput(t *testing.T) {
	out, err := runCommand(t, "check", "--path", fixture(t, "violating"), "--json", "--no-history")
	require.Error(t, err)

	var report domain.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, report.Tally.Total, report.Tally.Passed+report.Tally.Failed)
	assert.Greater(t, report.Tally.Failed, 0)
	assert.Len(t, report.Results, 15)
}

func TestCheck_MissingProjectStillRuns(t *testing.T) {
	// A nonexistent source tree is reported per rule, not as a setup error,
	// so the command exits through the rules-failed path.
	_, err := runCommand(t, "check", "--path", t.TempDir(), "--no-history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules failed")
}

func TestRules_ListsRegistry(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Source hygiene")
	assert.Contains(t, out, "Templates")
	assert.Contains(t, out, "Boundaries")
	assert.Contains(t, out, "no-root-provided-domain-services")
}

func TestHistory_EmptyProject(t *testing.T) {
	out, err := runCommand(t, "history", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded runs")
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archlint")
}
