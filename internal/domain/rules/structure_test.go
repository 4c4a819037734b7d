package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/domain"
)

func TestSingleExport(t *testing.T) {
	twoExports := "export class Foo {}\nexport interface FooOptions {}\n"

	vs, err := runRule(t, "single-export", domain.DefaultConfig(),
		map[string]string{"foo.ts": twoExports})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "2 exports")
	assert.Contains(t, vs[0].Message, "Foo, FooOptions")
}

func TestSingleExport_Exemptions(t *testing.T) {
	twoExports := "export const a = 1;\nexport const b = 2;\n"

	vs, err := runRule(t, "single-export", domain.DefaultConfig(), map[string]string{
		"shared/ui/index.ts":  twoExports,
		"app/app.routes.ts":   twoExports,
		"app/foo.spec.ts":     twoExports,
		"app/model.ts":        "export interface Model {}\n",
		"app/empty-helper.ts": "const local = 1;\n",
	})
	require.NoError(t, err)
	assert.Empty(t, vs, "barrels, routes, specs, and zero/one-export files all pass")
}

func TestFileNaming(t *testing.T) {
	cfg := domain.DefaultConfig()

	vs, err := runRule(t, "file-naming", cfg, map[string]string{
		"app/ApiClient.ts":              "export class ApiClient {}\n",
		"app/user-admin.service.ts":     "export class UserAdminService {}\n",
		"shared/util/format-date.ts":    "export function formatDate(): string { return ''; }\n",
		"domains/game/board.service.ts": "export class BoardService {}\n",
	})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "app/ApiClient.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, `"ApiClient"`)
	assert.Contains(t, vs[0].Message, `"api-client"`)
}

func TestFileNaming_UnderscoreStem(t *testing.T) {
	vs, err := runRule(t, "file-naming", domain.DefaultConfig(),
		map[string]string{"app/my_helper.ts": "export const x = 1;\n"})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, `"my-helper"`)
}
