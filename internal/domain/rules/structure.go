package rules

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/scan"
)

// singleExport fails for every file declaring more than one primary export.
// Barrel index.ts files and allowlisted filename patterns are exempt.
func singleExport(d deps) domain.Rule {
	return domain.Rule{
		Name:    "single-export",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range contents {
				if path.Base(p) == "index.ts" || isSpecFile(p) {
					continue
				}
				if domain.AllowsSuffix(d.cfg.Allow.SingleExportPatterns, p) {
					continue
				}
				exports := scan.Exports(c)
				if len(exports) > 1 {
					vs = append(vs, domain.Violation{
						File: p,
						Message: fmt.Sprintf("%d exports (%s); one primary export per file",
							len(exports), strings.Join(exports, ", ")),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}

var kebabStem = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// fileNaming fails for .ts files whose name stem is not kebab-case. The
// diagnostic suggests the kebab form derived from the camel-case words.
func fileNaming(d deps) domain.Rule {
	return domain.Rule{
		Name:    "file-naming",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p := range contents {
				stem := fileStem(p)
				if stem == "" || kebabStem.MatchString(stem) {
					continue
				}
				vs = append(vs, domain.Violation{
					File:    p,
					Message: fmt.Sprintf("file name %q is not kebab-case (want %q)", stem, kebabForm(stem)),
				})
			}
			return sorted(vs), nil
		},
	}
}

// fileStem returns the first dot-segment of the base name: the part naming
// conventions apply to ("user-admin" in user-admin.service.spec.ts).
func fileStem(p string) string {
	base := path.Base(p)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// kebabForm converts an identifier-style name to kebab-case.
func kebabForm(stem string) string {
	words := camelcase.Split(strings.ReplaceAll(stem, "_", "-"))
	for i, w := range words {
		words[i] = strings.ToLower(strings.Trim(w, "-"))
	}
	var kept []string
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, "-")
}
