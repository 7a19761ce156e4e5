package chain

import (
	"time"

	"github.com/janmersch/phasegate/internal/busday"
	"github.com/janmersch/phasegate/internal/domain"
)

// Patch is one pending store write produced by reconciliation. Patches
// are independent and idempotent: each only sets a value that differs
// from the freshly computed expectation, so overlapping reconciliation
// passes converge instead of conflicting.
type Patch struct {
	TaskID string
	Role   domain.ChainRole

	SetDue bool
	Due    time.Time

	// SetDep with a nil Dep clears the dependency link.
	SetDep bool
	Dep    *string
}

// Reconcile diffs every chain role present among tasks against the rule
// table, using the kickoff task's due date as the scheduling root.
// Returns no patches when the root role is absent or has no due date
// (nothing can be scheduled yet). Re-running with an unchanged root due
// date produces zero patches.
func Reconcile(tasks []*domain.Task) []Patch {
	byRole := indexByRole(tasks)
	root := byRole[domain.RoleKickoff]
	if root == nil || root.DueDate == nil {
		return nil
	}
	rootDue := *root.DueDate

	var patches []Patch
	for _, r := range ruleTable {
		task := byRole[r.Role]
		if task == nil {
			continue
		}

		var p Patch
		expected := busday.Add(rootDue, r.Offset)
		// Due dates are compared at day granularity; the root's own due
		// date is the input and never drifts from itself.
		if r.Role != domain.RoleKickoff &&
			(task.DueDate == nil || !busday.SameDay(*task.DueDate, expected)) {
			p.SetDue = true
			p.Due = expected
		}

		wantDep, keep := expectedDependency(r, byRole)
		if !keep && !depEqual(task.DependencyID, wantDep) {
			p.SetDep = true
			p.Dep = wantDep
		}

		if p.SetDue || p.SetDep {
			p.TaskID = task.ID
			p.Role = r.Role
			patches = append(patches, p)
		}
	}
	return patches
}

// expectedDependency resolves the dependency link a rule demands. The
// second return value is true when the link must be left unchanged
// (absent predecessor with keep fallback).
func expectedDependency(r rule, byRole map[domain.ChainRole]*domain.Task) (*string, bool) {
	if r.DependsOn == domain.RoleNone {
		return nil, false // the rule demands no link; clear any existing one
	}
	pred := byRole[r.DependsOn]
	if pred == nil {
		if r.Fallback == fallbackKeep {
			return nil, true
		}
		return nil, false
	}
	id := pred.ID
	return &id, false
}

func depEqual(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
