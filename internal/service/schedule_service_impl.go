package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/janmersch/phasegate/internal/chain"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
)

// ErrNoChainRoot is returned when a root-due mutation can't find the
// chain's kickoff task among the project's tasks.
var ErrNoChainRoot = errors.New("project has no chain root task")

type scheduleService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

func NewScheduleService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		projects: projects,
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *scheduleService) Reconcile(ctx context.Context, projectID string) (*ReconcileResult, error) {
	start := time.Now()
	result, err := s.reconcile(ctx, projectID)
	fields := map[string]any{}
	if result != nil {
		fields["planned"] = result.Planned
		fields["applied"] = result.Applied
		fields["failed"] = len(result.Failed)
	}
	observe(ctx, s.observer, "schedule.reconcile", projectID, start, err, fields)
	return result, err
}

func (s *scheduleService) reconcile(ctx context.Context, projectID string) (*ReconcileResult, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	patches := chain.Reconcile(tasks)
	result := &ReconcileResult{Planned: len(patches)}

	// Patches are applied best-effort in rule order. A failed patch is
	// recorded and skipped; the mismatch it addressed still exists, so
	// the next pass retries it without a dedicated retry timer.
	for _, p := range patches {
		taskPatch := repository.TaskPatch{}
		if p.SetDue {
			due := p.Due
			taskPatch.DueDate = &due
			taskPatch.DueDateSet = true
		}
		if p.SetDep {
			taskPatch.DependencyID = p.Dep
			taskPatch.DependencySet = true
		}
		if role := p.Role; role != domain.RoleNone {
			// Backfill the explicit role tag for title-matched rows.
			taskPatch.Role = &role
		}
		if _, err := s.tasks.Patch(ctx, p.TaskID, taskPatch); err != nil {
			result.Failed = append(result.Failed, PatchFailure{TaskID: p.TaskID, Role: p.Role, Err: err})
			continue
		}
		result.Applied++
	}
	return result, nil
}

func (s *scheduleService) SetRootDue(ctx context.Context, projectID string, due time.Time) (*ReconcileResult, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	var root *domain.Task
	for _, t := range tasks {
		if chain.ResolveRole(t) == domain.RoleKickoff {
			root = t
			break
		}
	}
	if root == nil {
		return nil, ErrNoChainRoot
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	lock := chain.ComputeLock(root, chain.IndexTasks(tasks), project.SchedulingAnchor(), s.now())
	if lock.Locked() {
		return nil, fmt.Errorf("task %s: %w", root.ID, ErrTaskLocked)
	}

	patch := repository.TaskPatch{DueDate: &due, DueDateSet: true}
	if _, err := s.tasks.Patch(ctx, root.ID, patch); err != nil {
		return nil, fmt.Errorf("patching root due date: %w", err)
	}
	return s.Reconcile(ctx, projectID)
}

func (s *scheduleService) SetProjectStart(ctx context.Context, projectID string, start time.Time) (*ReconcileResult, error) {
	patch := repository.ProjectPatch{StartDate: &start, StartDateSet: true}
	if _, err := s.projects.Patch(ctx, projectID, patch); err != nil {
		return nil, fmt.Errorf("patching project start date: %w", err)
	}
	return s.Reconcile(ctx, projectID)
}

func (s *scheduleService) Locks(ctx context.Context, projectID string) ([]TaskLock, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	byID := chain.IndexTasks(tasks)
	anchor := project.SchedulingAnchor()
	now := s.now()

	locks := make([]TaskLock, 0, len(tasks))
	for _, t := range tasks {
		locks = append(locks, TaskLock{
			Task: t,
			Lock: chain.ComputeLock(t, byID, anchor, now),
		})
	}
	return locks, nil
}
