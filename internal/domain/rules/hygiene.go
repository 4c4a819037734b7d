package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/scan"
)

// fileLineLimit fails for every .ts file whose line count exceeds the
// configured maximum. A file at exactly the limit passes.
func fileLineLimit(d deps) domain.Rule {
	return domain.Rule{
		Name:    "file-line-limit",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			limit := d.cfg.Thresholds.MaxFileLines
			var vs []domain.Violation
			for p, c := range contents {
				if domain.AllowsFile(d.cfg.Allow.FileLineLimit, p) {
					continue
				}
				lines := strings.Count(c, "\n") + 1
				if lines > limit {
					vs = append(vs, domain.Violation{
						File:    p,
						Message: fmt.Sprintf("%d lines (max %d)", lines, limit),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}

// methodLineLimit fails for every method whose body, measured by the span
// counter, exceeds the configured maximum.
func methodLineLimit(d deps) domain.Rule {
	return domain.Rule{
		Name:    "method-line-limit",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			limit := d.cfg.Thresholds.MaxMethodLines
			var vs []domain.Violation
			for p, c := range contents {
				lines := strings.Split(c, "\n")
				for _, m := range scan.Methods(c) {
					if domain.AllowsMethod(d.cfg.Allow.MethodLineLimit, p, m.Name) {
						continue
					}
					n := d.span.CountLines(lines, m.Line-1)
					if n > limit {
						vs = append(vs, domain.Violation{
							File:    p,
							Line:    m.Line,
							Message: fmt.Sprintf("%s spans %d lines (max %d)", m.Name, n, limit),
						})
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// parameterLimit fails for every method taking more parameters than the
// configured maximum.
func parameterLimit(d deps) domain.Rule {
	return domain.Rule{
		Name:    "parameter-limit",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			limit := d.cfg.Thresholds.MaxParameters
			var vs []domain.Violation
			for p, c := range contents {
				for _, m := range scan.Methods(c) {
					if domain.AllowsMethod(d.cfg.Allow.ParameterLimit, p, m.Name) {
						continue
					}
					n := scan.CountParams(m.Params)
					if n > limit {
						vs = append(vs, domain.Violation{
							File:    p,
							Line:    m.Line,
							Message: fmt.Sprintf("%s takes %d parameters (max %d)", m.Name, n, limit),
						})
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// publicMethodLimit fails for every file exposing more distinct public
// method names than the configured maximum. Lifecycle hooks do not count
// toward the limit.
func publicMethodLimit(d deps) domain.Rule {
	return domain.Rule{
		Name:    "public-method-limit",
		Section: SectionHygiene,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			contents, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			limit := d.cfg.Thresholds.MaxPublicMethods
			var vs []domain.Violation
			for p, c := range contents {
				if isSpecFile(p) || domain.AllowsFile(d.cfg.Allow.PublicMethodLimit, p) {
					continue
				}
				names := scan.PublicMethodNames(c, nil, true)
				if len(names) > limit {
					vs = append(vs, domain.Violation{
						File: p,
						Message: fmt.Sprintf("%d public methods (max %d): %s",
							len(names), limit, strings.Join(names, ", ")),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}
