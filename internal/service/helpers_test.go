package service

import (
	"context"
	"testing"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
	"github.com/janmersch/phasegate/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (*repository.SQLiteProjectRepo, *repository.SQLiteTaskRepo, *repository.SQLiteChecklistRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteChecklistRepo(database)
}

func mustCreateProject(t *testing.T, repo repository.ProjectRepo, p *domain.Project) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), p))
}

func mustCreateTask(t *testing.T, repo repository.TaskRepo, task *domain.Task) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), task))
}

func mustCreateItem(t *testing.T, repo repository.ChecklistRepo, item *domain.ChecklistItem) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), item))
}

func taskNotesPatch(notes string) repository.TaskPatch {
	return repository.TaskPatch{Notes: &notes}
}
