// Package tui renders run reports for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archlint/archlint/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(success)
	failTagStyle  = lipgloss.NewStyle().Bold(true).Foreground(danger)
	detailStyle   = lipgloss.NewStyle().Foreground(dim)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRunReport renders the full report: a banner per rule section,
// [PASS]/[FAIL] per rule with indented violation bullets, and the summary
// line the tool's exit code mirrors.
func RenderRunReport(report *domain.RunReport) string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("archlint"))
	if report.CommitHash != "" {
		short := report.CommitHash
		if len(short) > 12 {
			short = short[:12]
		}
		b.WriteString("  " + dimStyle.Render("@ "+short))
	}
	b.WriteString("\n")

	section := ""
	for _, r := range report.Results {
		if r.Section != section {
			section = r.Section
			b.WriteString("\n  " + sectionStyle.Render(section) + "\n")
			b.WriteString("  " + separatorLine + "\n")
		}
		renderResult(&b, r)
	}

	b.WriteString("\n  " + separatorLine + "\n")
	b.WriteString("  " + renderSummary(report.Tally) + "\n")

	return b.String()
}

func renderResult(b *strings.Builder, r domain.RuleResult) {
	tag := passTagStyle.Render("[PASS]")
	if !r.Passed {
		tag = failTagStyle.Render("[FAIL]")
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", tag, r.Name))

	if r.Error != "" {
		b.WriteString("         " + errorStyle.Render(r.Error) + "\n")
	}
	for _, v := range r.Violations {
		b.WriteString("         " + detailStyle.Render("• "+v.String()) + "\n")
	}
}

func renderSummary(t domain.Tally) string {
	passed := fmt.Sprintf("%d passed", t.Passed)
	if t.Passed > 0 {
		passed = passTagStyle.Render(passed)
	}
	failed := fmt.Sprintf("%d failed", t.Failed)
	if t.Failed > 0 {
		failed = failTagStyle.Render(failed)
	}
	return fmt.Sprintf("%s, %s, %d total", passed, failed, t.Total)
}

// RenderRuleList renders the registry for the rules command.
func RenderRuleList(battery []domain.Rule) string {
	var b strings.Builder

	section := ""
	for _, r := range battery {
		if r.Section != section {
			section = r.Section
			b.WriteString("\n  " + sectionStyle.Render(section) + "\n")
		}
		b.WriteString("  " + r.Name + "\n")
	}
	b.WriteString("\n")

	return b.String()
}

// RenderHistory renders past run summaries, newest last.
func RenderHistory(entries []domain.RunSummary) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("no recorded runs") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		verdict := passTagStyle.Render("ok")
		if e.Failed > 0 {
			verdict = failTagStyle.Render(fmt.Sprintf("%d failed", e.Failed))
		}
		commit := ""
		if e.CommitHash != "" {
			short := e.CommitHash
			if len(short) > 12 {
				short = short[:12]
			}
			commit = "  " + dimStyle.Render(short)
		}
		b.WriteString(fmt.Sprintf("  %s  %d/%d rules  %s%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Passed, e.Total, verdict, commit))
	}
	return b.String()
}
