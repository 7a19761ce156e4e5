package service

import (
	"context"
	"time"

	"github.com/janmersch/phasegate/internal/chain"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// SetStatus, SetDueDate and SetAssignees consult the task's computed
	// lock first and refuse with ErrTaskLocked while it holds.
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	SetDueDate(ctx context.Context, id string, due *time.Time) (*domain.Task, error)
	SetAssignees(ctx context.Context, id string, assignees []string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type ChecklistService interface {
	Add(ctx context.Context, item *domain.ChecklistItem) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.ChecklistItem, error)
	ListByPath(ctx context.Context, projectID, path string) ([]*domain.ChecklistItem, error)
	SetChecked(ctx context.Context, id string, checked bool) (*domain.ChecklistItem, error)
	SetComment(ctx context.Context, id string, comment string) (*domain.ChecklistItem, error)
}

type GateService interface {
	// Blockers evaluates the gate for the project's current phase.
	Blockers(ctx context.Context, projectID string) ([]gate.Blocker, error)
	// Advance moves the project to the next phase when the gate is
	// clear; otherwise it fails with a *BlockedError carrying every
	// blocker. Returns the authoritative post-advance project.
	Advance(ctx context.Context, projectID string) (*domain.Project, error)
	// Reset administratively returns the project to its first phase.
	Reset(ctx context.Context, projectID string) (*domain.Project, error)
}

// PatchFailure records one reconciliation patch that could not be
// applied. The mismatch persists, so the next pass retries it naturally.
type PatchFailure struct {
	TaskID string
	Role   domain.ChainRole
	Err    error
}

// ReconcileResult summarizes one reconciliation pass.
type ReconcileResult struct {
	Planned int
	Applied int
	Failed  []PatchFailure
}

// TaskLock pairs a task with its computed lock state for display.
type TaskLock struct {
	Task *domain.Task
	Lock chain.LockState
}

type ScheduleService interface {
	// Reconcile loads a fresh snapshot, diffs the dependency chain and
	// applies the resulting patches best-effort in rule order.
	Reconcile(ctx context.Context, projectID string) (*ReconcileResult, error)
	// SetRootDue patches the chain root's due date and reconciles.
	SetRootDue(ctx context.Context, projectID string, due time.Time) (*ReconcileResult, error)
	// SetProjectStart patches the project's start date and reconciles.
	SetProjectStart(ctx context.Context, projectID string, start time.Time) (*ReconcileResult, error)
	// Locks computes the lock state of every task in the project.
	// Pure read, safe to call on every render.
	Locks(ctx context.Context, projectID string) ([]TaskLock, error)
}
