package repository

import (
	"context"
	"testing"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(id, projectID string) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Task{
		ID:        id,
		ProjectID: projectID,
		Title:     "task " + id,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTaskRepo_CreateAndGetRoundTrip(t *testing.T) {
	database := newTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := newProject("10")
	require.NoError(t, projects.Create(ctx, p))

	due := time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)
	task := newTask("t-1", p.ID)
	task.Phase = domain.PhaseProduct
	task.Role = domain.RoleTemplate
	task.DueDate = &due
	task.Assignees = []string{"u-1", "u-2"}
	task.Notes = "total_products=3; completed_products=1"
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, domain.PhaseProduct, got.Phase)
	assert.Equal(t, domain.RoleTemplate, got.Role)
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
	assert.Nil(t, got.DependencyID)
	assert.Equal(t, []string{"u-1", "u-2"}, got.Assignees)
	assert.Equal(t, task.Notes, got.Notes)
}

func TestTaskRepo_PatchDueAndDependency(t *testing.T) {
	database := newTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := newProject("11")
	require.NoError(t, projects.Create(ctx, p))
	pred := newTask("t-pred", p.ID)
	succ := newTask("t-succ", p.ID)
	require.NoError(t, repo.Create(ctx, pred))
	require.NoError(t, repo.Create(ctx, succ))

	due := time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)
	depID := pred.ID
	updated, err := repo.Patch(ctx, succ.ID, TaskPatch{
		DueDate:       &due,
		DueDateSet:    true,
		DependencyID:  &depID,
		DependencySet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))
	require.NotNil(t, updated.DependencyID)
	assert.Equal(t, pred.ID, *updated.DependencyID)

	// Clearing the link with a nil id in a set patch.
	updated, err = repo.Patch(ctx, succ.ID, TaskPatch{DependencySet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DependencyID)
}

func TestTaskRepo_PatchLeavesUnsetFieldsAlone(t *testing.T) {
	database := newTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := newProject("12")
	require.NoError(t, projects.Create(ctx, p))
	due := time.Date(2025, 3, 21, 9, 0, 0, 0, time.UTC)
	task := newTask("t-1", p.ID)
	task.DueDate = &due
	require.NoError(t, repo.Create(ctx, task))

	status := domain.TaskInProgress
	updated, err := repo.Patch(ctx, task.ID, TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, updated.Status)
	require.NotNil(t, updated.DueDate, "due date untouched by a status-only patch")
}

func TestTaskRepo_PatchMissingReturnsNotFound(t *testing.T) {
	repo := NewSQLiteTaskRepo(newTestDB(t))
	status := domain.TaskDone
	_, err := repo.Patch(context.Background(), "nope", TaskPatch{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByProjectOrdersByCreation(t *testing.T) {
	database := newTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := newProject("13")
	require.NoError(t, projects.Create(ctx, p))

	first := newTask("t-a", p.ID)
	second := newTask("t-b", p.ID)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	tasks, err := repo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t-a", tasks[0].ID)
	assert.Equal(t, "t-b", tasks[1].ID)
}

func TestTaskRepo_MalformedAssigneesDecodeEmpty(t *testing.T) {
	database := newTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := newProject("14")
	require.NoError(t, projects.Create(ctx, p))
	task := newTask("t-1", p.ID)
	require.NoError(t, repo.Create(ctx, task))

	_, err := database.Exec(`UPDATE tasks SET assignees = 'not json' WHERE id = ?`, task.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Assignees)
}
