package domain

import (
	"time"

	"github.com/janmersch/phasegate/internal/notes"
)

type Task struct {
	ID        string
	ProjectID string
	Title     string
	Status    TaskStatus
	Priority  TaskPriority

	// Phase tags the task to a stage of the project lifecycle. Empty
	// means the task follows the project's current phase.
	Phase Phase

	// Role marks chain membership explicitly; the normalized-title
	// heuristic is retained only as a backfill for older rows.
	Role ChainRole

	DueDate      *time.Time
	DependencyID *string
	Assignees    []string
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectivePhase resolves the task's phase tag, falling back to the
// given current project phase when the tag is absent.
func (t *Task) EffectivePhase(current Phase) Phase {
	if t.Phase != "" {
		return t.Phase
	}
	return current
}

func (t *Task) IsDone() bool {
	return t.Status == TaskDone
}

// Meta decodes the typed metadata record embedded in Notes. Nil when
// the notes carry no record or the record is malformed.
func (t *Task) Meta() *notes.Meta {
	return notes.DecodeMeta(t.Notes)
}
