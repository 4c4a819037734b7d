package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/archlint/archlint/internal/domain"
	"github.com/archlint/archlint/internal/domain/scan"
)

// legacyDirectives are the structural directive spellings superseded by the
// built-in control-flow syntax.
var legacyDirectives = []string{"*ngIf", "*ngFor", "*ngSwitch"}

// noLegacyStructuralDirectives fails for external templates and component
// source files still containing a legacy structural directive. Source files
// are scanned as raw text, so a directive in a string constant or a
// non-extractable template block is caught too.
func noLegacyStructuralDirectives(d deps) domain.Rule {
	return domain.Rule{
		Name:    "no-legacy-structural-directives",
		Section: SectionTemplates,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			templates, err := d.files(ctx, ".html")
			if err != nil {
				return nil, err
			}
			sources, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range templates {
				for _, directive := range legacyDirectives {
					if strings.Contains(c, directive) {
						vs = append(vs, domain.Violation{
							File:    p,
							Message: fmt.Sprintf("uses legacy directive %s; use built-in control flow", directive),
						})
					}
				}
			}
			for p, c := range sources {
				for _, directive := range legacyDirectives {
					if scan.ContainsPattern(c, directive) {
						vs = append(vs, domain.Violation{
							File:    p,
							Message: fmt.Sprintf("uses legacy directive %s; use built-in control flow", directive),
						})
					}
				}
			}
			return sorted(vs), nil
		},
	}
}

// noTemplateFunctionCalls fails for template interpolations that invoke a
// function. Piped, indexed, ternary, and tracking expressions are on the
// safe-list and never count.
func noTemplateFunctionCalls(d deps) domain.Rule {
	return domain.Rule{
		Name:    "no-template-function-calls",
		Section: SectionTemplates,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			templates, err := d.files(ctx, ".html")
			if err != nil {
				return nil, err
			}
			sources, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range templates {
				for _, call := range scan.InterpolationCalls(c) {
					vs = append(vs, domain.Violation{
						File:    p,
						Message: fmt.Sprintf("function call in interpolation %s", call),
					})
				}
			}
			for p, c := range sources {
				tpl, ok := scan.ExtractInlineTemplate(c)
				if !ok {
					continue
				}
				for _, call := range scan.InterpolationCalls(tpl) {
					vs = append(vs, domain.Violation{
						File:    p,
						Message: fmt.Sprintf("function call in inline template interpolation %s", call),
					})
				}
			}
			return sorted(vs), nil
		},
	}
}

// onPushChangeDetection is a required-pattern rule: every component
// declaration must opt into OnPush change detection unless allowlisted.
func onPushChangeDetection(d deps) domain.Rule {
	return domain.Rule{
		Name:    "onpush-change-detection",
		Section: SectionTemplates,
		Check: func(ctx context.Context) ([]domain.Violation, error) {
			sources, err := d.files(ctx, ".ts")
			if err != nil {
				return nil, err
			}

			var vs []domain.Violation
			for p, c := range sources {
				if isSpecFile(p) {
					continue
				}
				if !strings.Contains(c, "@Component(") {
					continue
				}
				if domain.AllowsFile(d.cfg.Allow.DefaultChangeDetection, p) {
					continue
				}
				if !strings.Contains(c, "ChangeDetectionStrategy.OnPush") {
					vs = append(vs, domain.Violation{
						File:    p,
						Message: "component does not declare ChangeDetectionStrategy.OnPush",
					})
				}
			}
			return sorted(vs), nil
		},
	}
}
