package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/chain"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
)

type taskService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	now      func() time.Time
}

func NewTaskService(projects repository.ProjectRepo, tasks repository.TaskRepo) TaskService {
	return &taskService{
		projects: projects,
		tasks:    tasks,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityNormal
	}
	if t.Role == domain.RoleNone {
		t.Role = chain.RoleForTitle(t.Title)
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	if err := s.guardLock(ctx, id); err != nil {
		return nil, err
	}
	return s.tasks.Patch(ctx, id, repository.TaskPatch{Status: &status})
}

func (s *taskService) SetDueDate(ctx context.Context, id string, due *time.Time) (*domain.Task, error) {
	if err := s.guardLock(ctx, id); err != nil {
		return nil, err
	}
	return s.tasks.Patch(ctx, id, repository.TaskPatch{DueDate: due, DueDateSet: true})
}

func (s *taskService) SetAssignees(ctx context.Context, id string, assignees []string) (*domain.Task, error) {
	if err := s.guardLock(ctx, id); err != nil {
		return nil, err
	}
	return s.tasks.Patch(ctx, id, repository.TaskPatch{Assignees: assignees, AssigneesSet: true})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// guardLock recomputes the task's lock from a fresh snapshot and refuses
// the mutation while it holds. The computed boolean is authoritative.
func (s *taskService) guardLock(ctx context.Context, id string) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("loading task: %w", err)
	}
	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	siblings, err := s.tasks.ListByProject(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	lock := chain.ComputeLock(task, chain.IndexTasks(siblings), project.SchedulingAnchor(), s.now())
	if lock.Locked() {
		return fmt.Errorf("task %s: %w", task.ID, ErrTaskLocked)
	}
	return nil
}
