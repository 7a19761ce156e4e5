package repository

import (
	"context"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
)

// ProjectPatch carries the project fields a patch may change. Nil
// pointers mean "leave unchanged"; *Set flags distinguish clearing a
// nullable column from not touching it.
type ProjectPatch struct {
	Name         *string
	CurrentPhase *domain.Phase
	StartDate    *time.Time
	StartDateSet bool
}

// TaskPatch carries the task fields this engine is allowed to change:
// due date, dependency link, status, notes, title and assignees.
type TaskPatch struct {
	Title         *string
	Status        *domain.TaskStatus
	Notes         *string
	Role          *domain.ChainRole
	DueDate       *time.Time
	DueDateSet    bool
	DependencyID  *string
	DependencySet bool
	Assignees     []string
	AssigneesSet  bool
}

type ChecklistPatch struct {
	Title       *string
	Checked     *bool
	Comment     *string
	Position    *int
	PositionSet bool
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Patch applies the given fields and returns the authoritative
	// re-read row.
	Patch(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Patch(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type ChecklistRepo interface {
	Create(ctx context.Context, item *domain.ChecklistItem) error
	GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ChecklistItem, error)
	ListByPath(ctx context.Context, projectID, path string) ([]*domain.ChecklistItem, error)
	Patch(ctx context.Context, id string, patch ChecklistPatch) (*domain.ChecklistItem, error)
	Delete(ctx context.Context, id string) error
}
