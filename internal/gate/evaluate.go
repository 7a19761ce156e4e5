package gate

import (
	"fmt"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/notes"
)

type BlockerCode string

const (
	BlockerOpenTasks          BlockerCode = "OPEN_TASKS"
	BlockerUncheckedItems     BlockerCode = "UNCHECKED_ITEMS"
	BlockerIncompleteProducts BlockerCode = "INCOMPLETE_PRODUCTS"
)

// Blocker is one category of unfinished work preventing a phase advance.
// A gate refusal always reports every non-empty category together so the
// user sees the complete remaining-work picture in one round.
type Blocker struct {
	Code    BlockerCode
	Count   int
	Message string
}

// Evaluate computes the blocking conditions for advancing the project
// out of its current phase. An empty result means the caller may request
// the advance from the project store; it must then refresh local state
// from the authoritative response rather than assume success.
func Evaluate(p *domain.Project, tasks []*domain.Task, items []*domain.ChecklistItem) []Blocker {
	current := p.EffectivePhase()

	var open int
	for _, t := range tasks {
		if !t.IsDone() && t.EffectivePhase(current) == current {
			open++
		}
	}

	var unchecked int
	for _, it := range items {
		phase, ok := PhaseForPath(p.Variant, it.Path)
		if !ok || phase != current {
			continue
		}
		if !it.Checked {
			unchecked++
		}
	}

	var blockers []Blocker
	if open > 0 {
		blockers = append(blockers, Blocker{
			Code:    BlockerOpenTasks,
			Count:   open,
			Message: fmt.Sprintf("%d open task(s) in phase %s", open, current),
		})
	}
	if unchecked > 0 {
		blockers = append(blockers, Blocker{
			Code:    BlockerUncheckedItems,
			Count:   unchecked,
			Message: fmt.Sprintf("%d unchecked checklist item(s) for phase %s", unchecked, current),
		})
	}

	if current == domain.PhaseProduct {
		var incomplete int
		for _, t := range tasks {
			if t.EffectivePhase(current) != current {
				continue
			}
			if !notes.DecodeProductCounts(t.Notes).Complete() {
				incomplete++
			}
		}
		if incomplete > 0 {
			blockers = append(blockers, Blocker{
				Code:    BlockerIncompleteProducts,
				Count:   incomplete,
				Message: fmt.Sprintf("%d task(s) with incomplete product counts", incomplete),
			})
		}
	}

	return blockers
}
