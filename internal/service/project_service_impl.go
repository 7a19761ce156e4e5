package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Variant == "" {
		p.Variant = domain.VariantStandard
	}
	if p.CurrentPhase == "" {
		p.CurrentPhase = p.Variant.FirstPhase()
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	return s.projects.GetByShortID(ctx, shortID)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
