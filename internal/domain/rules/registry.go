// Package rules defines the conformance rule battery. Every rule is an
// independent check over the source tree: it collects candidate files,
// applies the scan package's text scanners, and returns a violation list.
// Rules never depend on each other's output.
package rules

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/scan"
)

// Section names, used by the reporter for group banners.
const (
	SectionHygiene    = "Source hygiene"
	SectionTemplates  = "Templates"
	SectionBoundaries = "Boundaries"
)

// deps is what every rule body closes over.
type deps struct {
	root string // absolute source root
	cfg  domain.CheckConfig
	col  domain.SourceCollector
	span domain.MethodSpanCounter
}

// Build returns the full rule battery in execution order.
func Build(root string, cfg domain.CheckConfig, col domain.SourceCollector) []domain.Rule {
	d := deps{root: root, cfg: cfg, col: col, span: scan.BraceSpanCounter{}}

	return []domain.Rule{
		fileLineLimit(d),
		methodLineLimit(d),
		parameterLimit(d),
		publicMethodLimit(d),
		singleExport(d),
		fileNaming(d),

		noLegacyStructuralDirectives(d),
		noTemplateFunctionCalls(d),
		onPushChangeDetection(d),

		noCrossDomainImports(d),
		noMultiDomainImports(d),
		sharedIndependence(d),
		generatedClientIsolation(d),
		relativeImportConfinement(d),
		noRootProvidedDomainServices(d),
	}
}

// files loads every file under the source root matching suffix. A missing
// source root is fatal here: rules using this helper fail loudly.
func (d deps) files(ctx context.Context, suffix string) (map[string]string, error) {
	paths, err := d.col.Collect(d.root, suffix)
	if err != nil {
		return nil, err
	}
	return d.col.ReadAll(ctx, d.root, paths)
}

// subtree loads files under <root>/<rel>. A subtree that does not exist yet
// yields zero files rather than an error: boundary rules run continuously
// during incremental layout migration and must tolerate not-yet-created
// directories. Returned keys are prefixed with rel so violations stay
// relative to the source root.
func (d deps) subtree(ctx context.Context, rel, suffix string) (map[string]string, error) {
	paths, err := d.col.Collect(path.Join(d.root, rel), suffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	contents, err := d.col.ReadAll(ctx, path.Join(d.root, rel), paths)
	if err != nil {
		return nil, err
	}

	prefixed := make(map[string]string, len(contents))
	for p, c := range contents {
		prefixed[path.Join(rel, p)] = c
	}
	return prefixed, nil
}

// sorted orders violations for stable output across runs.
func sorted(vs []domain.Violation) []domain.Violation {
	sort.Slice(vs, func(i, j int) bool { return vs[i].String() < vs[j].String() })
	return vs
}

// isSpecFile reports whether the path is a test file.
func isSpecFile(p string) bool {
	return len(p) >= len(".spec.ts") && p[len(p)-len(".spec.ts"):] == ".spec.ts"
}
