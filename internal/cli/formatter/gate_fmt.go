package formatter

import (
	"fmt"
	"strings"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
)

// FormatBlockers renders a gate evaluation result. An empty blocker list
// renders as a ready-to-advance confirmation.
func FormatBlockers(phase domain.Phase, blockers []gate.Blocker) string {
	if len(blockers) == 0 {
		return StyleGreen.Render(fmt.Sprintf("✓ phase %s is clear; project may advance", phase)) + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("✗ phase %s has %d blocker categories", phase, len(blockers))))
	b.WriteString("\n")
	for _, blocker := range blockers {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleYellow.Render(fmt.Sprintf("[%d]", blocker.Count)),
			blocker.Message))
	}
	return b.String()
}

// FormatAdvance renders the outcome of a successful phase advance.
func FormatAdvance(p *domain.Project) string {
	return fmt.Sprintf("%s advanced to phase %s\n",
		StyleHeader.Render(p.DisplayID()),
		StyleGreen.Render(string(p.CurrentPhase)))
}

// FormatProjectList renders the project overview table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		start := "-"
		if p.StartDate != nil {
			start = p.StartDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			p.DisplayID(),
			p.Name,
			string(p.Variant),
			StyleBlue.Render(string(p.EffectivePhase())),
			start,
		})
	}
	return RenderTable([]string{"ID", "NAME", "VARIANT", "PHASE", "START"}, rows)
}

// FormatTabs renders the work surfaces visible for a phase.
func FormatTabs(phase domain.Phase, tabs []gate.Tab) string {
	names := make([]string, len(tabs))
	for i, t := range tabs {
		names[i] = string(t)
	}
	return fmt.Sprintf("%s: %s\n", StyleHeader.Render(string(phase)), strings.Join(names, ", "))
}
