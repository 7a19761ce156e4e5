package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
)

type checklistService struct {
	checklists repository.ChecklistRepo
}

func NewChecklistService(checklists repository.ChecklistRepo) ChecklistService {
	return &checklistService{checklists: checklists}
}

func (s *checklistService) Add(ctx context.Context, item *domain.ChecklistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.checklists.Create(ctx, item)
}

func (s *checklistService) ListByProject(ctx context.Context, projectID string) ([]*domain.ChecklistItem, error) {
	items, err := s.checklists.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	domain.SortChecklist(items)
	return items, nil
}

func (s *checklistService) ListByPath(ctx context.Context, projectID, path string) ([]*domain.ChecklistItem, error) {
	items, err := s.checklists.ListByPath(ctx, projectID, path)
	if err != nil {
		return nil, err
	}
	domain.SortChecklist(items)
	return items, nil
}

func (s *checklistService) SetChecked(ctx context.Context, id string, checked bool) (*domain.ChecklistItem, error) {
	return s.checklists.Patch(ctx, id, repository.ChecklistPatch{Checked: &checked})
}

func (s *checklistService) SetComment(ctx context.Context, id string, comment string) (*domain.ChecklistItem, error) {
	return s.checklists.Patch(ctx, id, repository.ChecklistPatch{Comment: &comment})
}
