package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/internal/domain"
)

func TestNoCrossDomainImports(t *testing.T) {
	files := map[string]string{
		"domains/admin/roster.service.ts": "import { Engine } from '@game/engine';\nexport class RosterService {}\n",
		"domains/admin/self.service.ts":   "import { Shared } from '@admin/shared';\nexport class SelfService {}\n",
		"domains/game/engine.ts":          "export class Engine {}\n",
	}

	vs, err := runRule(t, "no-cross-domain-imports", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "domains/admin/roster.service.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, "imports from @game/")
}

func TestNoCrossDomainImports_MissingDomainsTreePasses(t *testing.T) {
	vs, err := runRule(t, "no-cross-domain-imports", domain.DefaultConfig(),
		map[string]string{"app.component.ts": "export class AppComponent {}\n"})
	require.NoError(t, err)
	assert.Empty(t, vs)
}

// The cross-domain rule scans raw text, the shared rule strips comment lines
// first. The same commented-out import therefore flags in a domain file but
// not in a shared file.
func TestCommentedImport_FlagsCrossDomainButNotShared(t *testing.T) {
	commented := "// import { Engine } from '@game/engine';\nexport const noop = 1;\n"

	vs, err := runRule(t, "no-cross-domain-imports", domain.DefaultConfig(),
		map[string]string{"domains/admin/stale.ts": commented})
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "imports from @game/")

	vs, err = runRule(t, "shared-independence", domain.DefaultConfig(),
		map[string]string{"shared/util/stale.ts": commented})
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestNoMultiDomainImports(t *testing.T) {
	files := map[string]string{
		"domains/admin/pair.service.ts": "import { A } from '@game/a';\nimport { B } from '@user/b';\n",
		"domains/admin/solo.service.ts": "import { A } from '@game/a';\n",
	}

	vs, err := runRule(t, "no-multi-domain-imports", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "domains/admin/pair.service.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, "references 2 foreign domains (game, user)")
}

func TestSharedIndependence(t *testing.T) {
	files := map[string]string{
		"shared/util/leaky.ts": "import { Roster } from '@admin/roster';\nexport const x = 1;\n",
		"shared/util/clean.ts": "import { formatDate } from '@shared/util';\nexport const y = 2;\n",
	}

	vs, err := runRule(t, "shared-independence", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "shared/util/leaky.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, "@admin/")
}

func TestGeneratedClientIsolation(t *testing.T) {
	files := map[string]string{
		"domains/admin/repositories/user.repository.ts":      "import { UsersApi } from '@generated/api';\n",
		"domains/admin/repositories/user.repository.spec.ts": "import { UsersApi } from '@generated/api';\n",
		"domains/admin/user.service.ts":                      "import { UsersApi } from \"@generated/api\";\n",
		"shared/util/models.ts":                              "import { User } from '@generated/models';\n",
	}

	vs, err := runRule(t, "generated-client-isolation", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, "domains/admin/user.service.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, "@generated/api")
	assert.Equal(t, "shared/util/models.ts", vs[1].File)
	assert.Contains(t, vs[1].Message, "@generated/models")
}

func TestRelativeImportConfinement(t *testing.T) {
	files := map[string]string{
		"domains/game/board.ts":       "import { helper } from '../shared/helper';\nimport { piece } from './piece';\n",
		"domains/game/index.ts":       "export * from './board';\n",
		"main.ts":                     "import { appConfig } from './app.config';\n",
		"domains/game/board.spec.ts":  "import { Board } from './board';\n",
		"domains/game/deep.spec.ts":   "import { fixture } from './fixtures/board';\n",
		"domains/game/parent.spec.ts": "import { Board } from '../board';\n",
	}

	vs, err := runRule(t, "relative-import-confinement", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 4)

	var flagged []string
	for _, v := range vs {
		flagged = append(flagged, v.String())
	}
	assert.Contains(t, flagged[0], `"../shared/helper"`)
	assert.Contains(t, flagged[1], `"./piece"`)
	assert.Contains(t, flagged[2], `"./fixtures/board"`)
	assert.Contains(t, flagged[3], `"../board"`)
}

func TestNoRootProvidedDomainServices(t *testing.T) {
	rooted := "@Injectable({ providedIn: 'root' })\nexport class RosterService {}\n"
	scoped := "@Injectable()\nexport class MatchService {}\n"

	files := map[string]string{
		"domains/admin/services/roster.service.ts":      rooted,
		"domains/admin/services/roster.service.spec.ts": rooted,
		"domains/game/services/match.service.ts":        scoped,
		"shared/data/cache.service.ts":                  "@Injectable({ providedIn: \"root\" })\nexport class CacheService {}\n",
	}

	vs, err := runRule(t, "no-root-provided-domain-services", domain.DefaultConfig(), files)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "domains/admin/services/roster.service.ts", vs[0].File)
	assert.Contains(t, vs[0].Message, "root injector")
}

func TestNoRootProvidedDomainServices_MissingServiceDirsPass(t *testing.T) {
	vs, err := runRule(t, "no-root-provided-domain-services", domain.DefaultConfig(),
		map[string]string{"domains/admin/admin.component.ts": "export class AdminComponent {}\n"})
	require.NoError(t, err)
	assert.Empty(t, vs)
}
