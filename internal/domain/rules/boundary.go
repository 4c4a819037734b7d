package rules

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/scan"
)

// domainImportPattern matches an import from the named domain's alias,
// either quote style.
func domainImportPattern(domainName string) *regexp.Regexp {
	return regexp.MustCompile(`from ['"]@` + regexp.QuoteMeta(domainName) + `/`)
}

// fileDomain returns the owning domain of a domains-root-relative path
// ("admin/services/roster.service.ts" -> "admin").
func fileDomain(rel string) string {
	rel = strings.TrimPrefix(rel, "domains/")
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return ""
}

// noCrossDomainImports fails for every file under one domain that imports
// from another domain's namespace. Matches inside comments still count: the
// alias convention makes comment mentions rare, and a stale commented-out
// cross-domain import is worth surfacing.
func noCrossDomainImports(d deps) domain.Rule {
	return domain.Rule{
		Name:    "no-cross-domain-imports",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.subtree(ctx, "domains", ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				owner := fileDomain(p)
				for _, other := range d.cfg.Domains {
					if other == owner {
						continue
					}
					if domainImportPattern(other).MatchString(c) {
						vs = append(vs, domain.Violation{
							File:    p,
							Message: fmt.Sprintf("imports from @%s/ (domain %s must not reach into %s)", other, owner, other),
						})
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// noMultiDomainImports fails for every file referencing more than one
// foreign domain namespace, independent of whether each individual
// reference is tolerated elsewhere.
func noMultiDomainImports(d deps) domain.Rule {
	return domain.Rule{
		Name:    "no-multi-domain-imports",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.subtree(ctx, "domains", ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				owner := fileDomain(p)
				var referenced []string
				for _, other := range d.cfg.Domains {
					if other == owner {
						continue
					}
					if domainImportPattern(other).MatchString(c) {
						referenced = append(referenced, other)
					}
				}
				if len(referenced) > 1 {
					sort.Strings(referenced)
					vs = append(vs, domain.Violation{
						File:    p,
						Message: fmt.Sprintf("references %d foreign domains (%s)", len(referenced), strings.Join(referenced, ", ")),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}

// sharedIndependence fails for every shared file importing a domain
// namespace. Comment lines are stripped first: shared modules are imported
// everywhere, so a comment-triggered false positive here is costlier than in
// the cross-domain rule, which deliberately does not strip.
func sharedIndependence(d deps) domain.Rule {
	return domain.Rule{
		Name:    "shared-independence",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.subtree(ctx, "shared", ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				code := scan.StripCommentLines(c)
				for _, domainName := range d.cfg.Domains {
					if domainImportPattern(domainName).MatchString(code) {
						vs = append(vs, domain.Violation{
							File:    p,
							Message: fmt.Sprintf("shared module imports from @%s/; shared must not depend on any domain", domainName),
						})
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// generatedClientIsolation fails for every file outside the permitted
// importer suffixes that mentions a generated API client namespace.
func generatedClientIsolation(d deps) domain.Rule {
	return domain.Rule{
		Name:    "generated-client-isolation",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				if hasAnySuffix(p, d.cfg.GeneratedImporters) {
					continue
				}
				for _, spec := range domain.GeneratedSpecifiers {
					if strings.Contains(c, spec) {
						vs = append(vs, domain.Violation{
							File:    p,
							Message: fmt.Sprintf("imports generated client (%s); only repository files may", strings.Trim(spec, `"'`)),
						})
						break
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// relativeSpecifier matches a relative import specifier.
var relativeSpecifier = regexp.MustCompile(`from\s+['"](\.{1,2}/[^'"]*)['"]`)

// sameDirSpecifier matches a same-directory, single-segment specifier; the
// carve-out granted to spec files.
var sameDirSpecifier = regexp.MustCompile(`^\./[^/]+$`)

// relativeImportConfinement fails for relative import specifiers outside
// barrel files and the allowlisted root-level files. Spec files may use
// same-directory specifiers to reach the unit under test.
func relativeImportConfinement(d deps) domain.Rule {
	return domain.Rule{
		Name:    "relative-import-confinement",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				if path.Base(p) == "index.ts" {
					continue
				}
				if domain.AllowsFile(d.cfg.Allow.RelativeImportFiles, p) {
					continue
				}
				for _, m := range relativeSpecifier.FindAllStringSubmatch(c, -1) {
					spec := m[1]
					if isSpecFile(p) && sameDirSpecifier.MatchString(spec) {
						continue
					}
					vs = append(vs, domain.Violation{
						File:    p,
						Message: fmt.Sprintf("relative import %q; import through the @-alias instead", spec),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}

// rootProviderSpellings are the two quote forms of the root-scoping
// provider annotation.
var rootProviderSpellings = []string{`providedIn: 'root'`, `providedIn: "root"`}

// noRootProvidedDomainServices fails for domain services registered in the
// root injector. Domain services are route-scoped; root provision keeps them
// alive across the whole application.
func noRootProvidedDomainServices(d deps) domain.Rule {
	return domain.Rule{
		Name:    "no-root-provided-domain-services",
		Section: SectionBoundaries,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			var vs []domain.Violation
			for _, domainName := range d.cfg.Domains {
				contents, err := d.subtree(ctx, path.Join("domains", domainName, "services"), ".ts")
				if err != nil {
					return nil, err
				}
				for p, c := range contents {
					if isSpecFile(p) {
						continue
					}
					for _, spelling := range rootProviderSpellings {
						if strings.Contains(c, spelling) {
							vs = append(vs, domain.Violation{
								File:    p,
								Message: "domain service is provided in the root injector; scope it to its route",
							})
							break
						}
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

func hasAnySuffix(p string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}
