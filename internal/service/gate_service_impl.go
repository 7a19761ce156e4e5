package service

import (
	"context"
	"fmt"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
	"github.com/janmersch/phasegate/internal/repository"
)

type gateService struct {
	projects   repository.ProjectRepo
	tasks      repository.TaskRepo
	checklists repository.ChecklistRepo
	observer   UseCaseObserver
}

func NewGateService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	checklists repository.ChecklistRepo,
	observers ...UseCaseObserver,
) GateService {
	return &gateService{
		projects:   projects,
		tasks:      tasks,
		checklists: checklists,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// snapshot loads a fresh project/task/checklist view. The engine always
// re-derives its decisions from the stores; nothing is cached between
// invocations.
func (s *gateService) snapshot(ctx context.Context, projectID string) (*domain.Project, []*domain.Task, []*domain.ChecklistItem, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading project: %w", err)
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading tasks: %w", err)
	}
	items, err := s.checklists.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading checklist: %w", err)
	}
	return project, tasks, items, nil
}

func (s *gateService) Blockers(ctx context.Context, projectID string) ([]gate.Blocker, error) {
	project, tasks, items, err := s.snapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return gate.Evaluate(project, tasks, items), nil
}

func (s *gateService) Advance(ctx context.Context, projectID string) (*domain.Project, error) {
	start := time.Now()
	project, advanceErr := s.advance(ctx, projectID)
	observe(ctx, s.observer, "gate.advance", projectID, start, advanceErr, nil)
	return project, advanceErr
}

func (s *gateService) advance(ctx context.Context, projectID string) (*domain.Project, error) {
	project, tasks, items, err := s.snapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if blockers := gate.Evaluate(project, tasks, items); len(blockers) > 0 {
		return nil, &BlockedError{Phase: project.EffectivePhase(), Blockers: blockers}
	}

	next, ok := project.Variant.NextPhase(project.EffectivePhase())
	if !ok {
		return nil, ErrNoNextPhase
	}

	// The store's response is authoritative; local state is refreshed
	// from it rather than assumed.
	updated, err := s.projects.Patch(ctx, projectID, repository.ProjectPatch{CurrentPhase: &next})
	if err != nil {
		return nil, fmt.Errorf("advancing phase: %w", err)
	}
	return updated, nil
}

func (s *gateService) Reset(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	first := project.Variant.FirstPhase()
	updated, err := s.projects.Patch(ctx, projectID, repository.ProjectPatch{CurrentPhase: &first})
	if err != nil {
		return nil, fmt.Errorf("resetting phase: %w", err)
	}
	return updated, nil
}
