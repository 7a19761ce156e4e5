package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/janmersch/phasegate/internal/busday"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/notes"
	"github.com/janmersch/phasegate/internal/repository"
	"github.com/janmersch/phasegate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainMonday is the root due date used across scheduling tests: 2025-03-17.
var chainMonday = time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)

func seedChain(t *testing.T, projects repository.ProjectRepo, tasks repository.TaskRepo) (*domain.Project, map[domain.ChainRole]*domain.Task) {
	t.Helper()
	proj := testutil.NewTestProject("VS Launch", testutil.WithVariant(domain.VariantVSVL))
	mustCreateProject(t, projects, proj)

	byRole := make(map[domain.ChainRole]*domain.Task)
	roles := []domain.ChainRole{
		domain.RoleKickoff, domain.RoleTemplate, domain.RolePricing,
		domain.RoleAssets, domain.RoleLayout, domain.RoleContent,
		domain.RoleReview, domain.RoleApproval, domain.RoleHandover,
		domain.RoleArchive,
	}
	for _, role := range roles {
		opts := []testutil.TaskOption{testutil.WithRole(role)}
		if role == domain.RoleKickoff {
			opts = append(opts, testutil.WithDueDate(chainMonday))
		}
		task := testutil.NewTestTask(proj.ID, string(role), opts...)
		mustCreateTask(t, tasks, task)
		byRole[role] = task
	}
	return proj, byRole
}

func TestScheduleService_ReconcilePropagatesDueDates(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()
	proj, byRole := seedChain(t, projects, tasks)

	svc := NewScheduleService(projects, tasks)
	result, err := svc.Reconcile(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Planned, result.Applied)
	assert.Empty(t, result.Failed)

	template, err := tasks.GetByID(ctx, byRole[domain.RoleTemplate].ID)
	require.NoError(t, err)
	require.NotNil(t, template.DueDate)
	assert.Equal(t, time.Wednesday, template.DueDate.Weekday())
	require.NotNil(t, template.DependencyID)
	assert.Equal(t, byRole[domain.RoleKickoff].ID, *template.DependencyID)

	layout, err := tasks.GetByID(ctx, byRole[domain.RoleLayout].ID)
	require.NoError(t, err)
	content, err := tasks.GetByID(ctx, byRole[domain.RoleContent].ID)
	require.NoError(t, err)
	require.NotNil(t, layout.DueDate)
	require.NotNil(t, content.DueDate)
	assert.Equal(t, time.Friday, layout.DueDate.Weekday())
	assert.True(t, busday.SameDay(*layout.DueDate, *content.DueDate))
	require.NotNil(t, content.DependencyID)
	assert.Equal(t, layout.ID, *content.DependencyID)
}

func TestScheduleService_ReconcileIsIdempotent(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()
	proj, _ := seedChain(t, projects, tasks)

	svc := NewScheduleService(projects, tasks)
	first, err := svc.Reconcile(ctx, proj.ID)
	require.NoError(t, err)
	require.NotZero(t, first.Applied)

	second, err := svc.Reconcile(ctx, proj.ID)
	require.NoError(t, err)
	assert.Zero(t, second.Planned, "no underlying change means no patches")
}

func TestScheduleService_FailedPatchDoesNotBlockOthers(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()
	proj, byRole := seedChain(t, projects, tasks)

	boom := errors.New("store unavailable")
	flaky := &testutil.FailPatchTaskRepo{
		TaskRepo: tasks,
		FailIDs:  map[string]error{byRole[domain.RoleTemplate].ID: boom},
	}

	svc := NewScheduleService(projects, flaky)
	result, err := svc.Reconcile(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, byRole[domain.RoleTemplate].ID, result.Failed[0].TaskID)
	assert.ErrorIs(t, result.Failed[0].Err, boom)
	assert.Equal(t, result.Planned-1, result.Applied, "remaining patches still executed")

	// The mismatch persists, so a healthy pass retries just the failed patch.
	healthy := NewScheduleService(projects, tasks)
	retry, err := healthy.Reconcile(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, retry.Planned)
	assert.Equal(t, 1, retry.Applied)
}

func TestScheduleService_SetRootDueMovesWholeChain(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()
	proj, byRole := seedChain(t, projects, tasks)

	svc := NewScheduleService(projects, tasks)
	_, err := svc.Reconcile(ctx, proj.ID)
	require.NoError(t, err)

	// Root slips one week; everything downstream follows.
	nextMonday := chainMonday.AddDate(0, 0, 7)
	result, err := svc.SetRootDue(ctx, proj.ID, nextMonday)
	require.NoError(t, err)
	assert.NotZero(t, result.Applied)

	template, err := tasks.GetByID(ctx, byRole[domain.RoleTemplate].ID)
	require.NoError(t, err)
	require.NotNil(t, template.DueDate)
	assert.True(t, busday.SameDay(*template.DueDate, busday.Add(nextMonday, 2)))
}

func TestScheduleService_SetRootDueWithoutRootFails(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("No chain here")
	mustCreateProject(t, projects, proj)
	mustCreateTask(t, tasks, testutil.NewTestTask(proj.ID, "write weekly report"))

	svc := NewScheduleService(projects, tasks)
	_, err := svc.SetRootDue(ctx, proj.ID, chainMonday)
	assert.ErrorIs(t, err, ErrNoChainRoot)
}

func TestScheduleService_SetRootDueRespectsTimeLock(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()

	// Anchored at the wall clock: a 10-business-day unlock keeps the
	// root locked for any plausible test run near creation time.
	proj := testutil.NewTestProject("Launch", testutil.WithStartDate(time.Now().UTC()))
	mustCreateProject(t, projects, proj)

	root := testutil.NewTestTask(proj.ID, "Kickoff",
		testutil.WithRole(domain.RoleKickoff),
		testutil.WithNotes(notes.EncodeMeta(notes.Meta{UnlockAfterDays: 10})))
	mustCreateTask(t, tasks, root)

	svc := NewScheduleService(projects, tasks)
	_, err := svc.SetRootDue(ctx, proj.ID, chainMonday)
	assert.ErrorIs(t, err, ErrTaskLocked)

	// The due date must not have moved.
	reread, err := tasks.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, reread.DueDate)
}

func TestScheduleService_SetProjectStartReconciles(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()
	proj, _ := seedChain(t, projects, tasks)

	svc := NewScheduleService(projects, tasks)
	result, err := svc.SetProjectStart(ctx, proj.ID, chainMonday)
	require.NoError(t, err)
	assert.NotZero(t, result.Applied)

	reread, err := projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	require.NotNil(t, reread.StartDate)
	assert.True(t, busday.SameDay(*reread.StartDate, chainMonday))
}

func TestScheduleService_LocksReport(t *testing.T) {
	projects, tasks, _ := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Locks", testutil.WithStartDate(chainMonday))
	mustCreateProject(t, projects, proj)

	pred := testutil.NewTestTask(proj.ID, "layout", testutil.WithRole(domain.RoleLayout))
	mustCreateTask(t, tasks, pred)
	succ := testutil.NewTestTask(proj.ID, "content",
		testutil.WithRole(domain.RoleContent),
		testutil.WithDependency(pred.ID))
	mustCreateTask(t, tasks, succ)

	svc := NewScheduleService(projects, tasks).(*scheduleService)
	svc.now = func() time.Time { return chainMonday }

	locks, err := svc.Locks(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, locks, 2)

	byID := make(map[string]TaskLock, len(locks))
	for _, l := range locks {
		byID[l.Task.ID] = l
	}
	assert.False(t, byID[pred.ID].Lock.Locked())
	assert.True(t, byID[succ.ID].Lock.DependencyLocked)

	// Predecessor done: next evaluation unlocks the successor.
	done := domain.TaskDone
	_, err = tasks.Patch(ctx, pred.ID, repository.TaskPatch{Status: &done})
	require.NoError(t, err)

	locks, err = svc.Locks(ctx, proj.ID)
	require.NoError(t, err)
	for _, l := range locks {
		assert.False(t, l.Lock.Locked())
	}
}
