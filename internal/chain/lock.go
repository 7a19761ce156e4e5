package chain

import (
	"time"

	"github.com/janmersch/phasegate/internal/busday"
	"github.com/janmersch/phasegate/internal/domain"
)

// LockState is the computed edit-lock for a single task. It is advisory:
// callers enforce the refusal, but the combined boolean is authoritative
// and must be consulted before mutating due date, status or assignees.
type LockState struct {
	TimeLocked bool
	// RemainingBusinessDays until the time lock lifts, for display.
	RemainingBusinessDays int

	DependencyLocked bool
	// BlockingTaskID is the unfinished predecessor, when dependency-locked.
	BlockingTaskID string
}

func (l LockState) Locked() bool {
	return l.TimeLocked || l.DependencyLocked
}

// ComputeLock derives the lock state of task at the given instant. The
// anchor is the project's scheduling anchor (start date, or creation
// time when absent); byID indexes the project's tasks. Pure, no side
// effects, safe to call on every render.
func ComputeLock(task *domain.Task, byID map[string]*domain.Task, anchor, now time.Time) LockState {
	var l LockState
	meta := task.Meta()

	if meta != nil && meta.UnlockAfterDays > 0 {
		unlock := busday.Add(anchor, meta.UnlockAfterDays)
		if busday.StartOfDay(now).Before(busday.StartOfDay(unlock)) {
			l.TimeLocked = true
			l.RemainingBusinessDays = busday.Until(now, unlock)
		}
	}

	// The root role's dependency is always forced to none.
	if ResolveRole(task) == domain.RoleKickoff {
		return l
	}

	depID := ""
	if task.DependencyID != nil {
		// The explicit link takes precedence over the meta-encoded id.
		depID = *task.DependencyID
	} else if meta != nil {
		depID = meta.DependencyID
	}
	if depID != "" {
		if pred, ok := byID[depID]; ok && !pred.IsDone() {
			l.DependencyLocked = true
			l.BlockingTaskID = pred.ID
		}
	}

	return l
}

// IndexTasks builds the id lookup consumed by ComputeLock.
func IndexTasks(tasks []*domain.Task) map[string]*domain.Task {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}
