package testutil

import (
	"context"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
)

// FailPatchTaskRepo wraps a TaskRepo and injects an error when patching
// the configured task IDs. Reads and other writes pass through. This
// enables fault-isolation tests for reconciliation: one failing patch
// must not block the rest of the queue.
type FailPatchTaskRepo struct {
	repository.TaskRepo
	FailIDs map[string]error
}

func (r *FailPatchTaskRepo) Patch(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if err, ok := r.FailIDs[id]; ok {
		return nil, err
	}
	return r.TaskRepo.Patch(ctx, id, patch)
}

// FailListTaskRepo wraps a TaskRepo and injects an error on ListByProject.
// Everything else passes through.
type FailListTaskRepo struct {
	repository.TaskRepo
	Err error
}

func (r *FailListTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return nil, r.Err
}
