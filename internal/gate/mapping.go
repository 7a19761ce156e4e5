// Package gate decides whether a project may advance from its current
// phase and owns the single mapping table from checklist paths and work
// surfaces to phases. Both the evaluator and the tab mapper read the
// same table so the two cannot drift apart.
package gate

import "github.com/janmersch/phasegate/internal/domain"

// Tab names a work surface shown for a phase.
type Tab string

const (
	TabTasks     Tab = "tasks"
	TabChecklist Tab = "checklist"
	TabProducts  Tab = "products"
	TabSchedule  Tab = "schedule"
	TabDocuments Tab = "documents"
)

// pathPhase maps checklist section paths onto the phase that consumes
// them, per variant. Paths absent from the table belong to the ungated
// bucket: they neither block nor count toward any phase.
var pathPhase = map[domain.Variant]map[string]domain.Phase{
	domain.VariantStandard: {
		"planning": domain.PhasePlanning,
		"briefing": domain.PhasePlanning,
		"product":  domain.PhaseProduct,
		"control":  domain.PhaseControl,
		"final":    domain.PhaseFinal,
		"signoff":  domain.PhaseFinal,
	},
	domain.VariantVSVL: {
		"meetings":      domain.PhaseMeetings,
		"planning":      domain.PhasePlanning,
		"development":   domain.PhaseDevelopment,
		"testing":       domain.PhaseTesting,
		"golive":        domain.PhaseTesting,
		"documentation": domain.PhaseDocumentation,
		"closed":        domain.PhaseClosed,
	},
}

var phaseTabs = map[domain.Phase][]Tab{
	domain.PhasePlanning:      {TabTasks, TabChecklist},
	domain.PhaseProduct:       {TabTasks, TabChecklist, TabProducts},
	domain.PhaseControl:       {TabTasks, TabChecklist},
	domain.PhaseFinal:         {TabTasks, TabChecklist, TabDocuments},
	domain.PhaseMeetings:      {TabTasks, TabChecklist},
	domain.PhaseDevelopment:   {TabTasks, TabChecklist, TabSchedule},
	domain.PhaseTesting:       {TabTasks, TabChecklist, TabSchedule},
	domain.PhaseDocumentation: {TabTasks, TabChecklist, TabDocuments},
	domain.PhaseClosed:        {TabDocuments},
}

// PhaseForPath resolves the phase that consumes checklist items under
// path. The second return value is false for ungated paths.
func PhaseForPath(v domain.Variant, path string) (domain.Phase, bool) {
	p, ok := pathPhase[v][path]
	return p, ok
}

// TabsForPhase returns the work surfaces visible in the given phase.
func TabsForPhase(p domain.Phase) []Tab {
	if tabs, ok := phaseTabs[p]; ok {
		return tabs
	}
	return []Tab{TabTasks}
}

// PathsForPhase returns every checklist path that feeds the given phase,
// in no particular order.
func PathsForPhase(v domain.Variant, p domain.Phase) []string {
	var paths []string
	for path, phase := range pathPhase[v] {
		if phase == p {
			paths = append(paths, path)
		}
	}
	return paths
}
