package service

import (
	"context"
	"testing"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
	"github.com/janmersch/phasegate/internal/notes"
	"github.com/janmersch/phasegate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateService_AdvanceRefusedWithAllBlockers(t *testing.T) {
	projects, tasks, checklists := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch", testutil.WithPhase(domain.PhasePlanning))
	mustCreateProject(t, projects, proj)

	mustCreateTask(t, tasks, testutil.NewTestTask(proj.ID, "define scope",
		testutil.WithTaskPhase(domain.PhasePlanning)))
	mustCreateTask(t, tasks, testutil.NewTestTask(proj.ID, "collect requirements",
		testutil.WithTaskPhase(domain.PhasePlanning),
		testutil.WithStatus(domain.TaskInProgress)))
	mustCreateItem(t, checklists, testutil.NewTestChecklistItem(proj.ID, "planning", "budget approved"))

	svc := NewGateService(projects, tasks, checklists)
	_, err := svc.Advance(ctx, proj.ID)
	require.Error(t, err)

	blocked := AsBlockedError(err)
	require.NotNil(t, blocked)
	assert.Equal(t, domain.PhasePlanning, blocked.Phase)
	require.Len(t, blocked.Blockers, 2, "both categories reported in a single round")
	assert.Equal(t, gate.BlockerOpenTasks, blocked.Blockers[0].Code)
	assert.Equal(t, 2, blocked.Blockers[0].Count)
	assert.Equal(t, gate.BlockerUncheckedItems, blocked.Blockers[1].Code)
	assert.Equal(t, 1, blocked.Blockers[1].Count)

	// The refused project did not move.
	reread, err := projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlanning, reread.CurrentPhase)
}

func TestGateService_AdvanceMovesToNextPhase(t *testing.T) {
	projects, tasks, checklists := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch", testutil.WithPhase(domain.PhasePlanning))
	mustCreateProject(t, projects, proj)

	done := testutil.NewTestTask(proj.ID, "define scope",
		testutil.WithTaskPhase(domain.PhasePlanning),
		testutil.WithStatus(domain.TaskDone))
	mustCreateTask(t, tasks, done)
	mustCreateItem(t, checklists, testutil.NewTestChecklistItem(proj.ID, "planning", "budget approved",
		testutil.WithChecked(true)))

	svc := NewGateService(projects, tasks, checklists)
	updated, err := svc.Advance(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseProduct, updated.CurrentPhase, "authoritative response carries the new phase")
}

func TestGateService_ProductPhaseGate(t *testing.T) {
	projects, tasks, checklists := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch", testutil.WithPhase(domain.PhaseProduct))
	mustCreateProject(t, projects, proj)

	mustCreateTask(t, tasks, testutil.NewTestTask(proj.ID, "assemble catalog",
		testutil.WithTaskPhase(domain.PhaseProduct),
		testutil.WithStatus(domain.TaskDone),
		testutil.WithNotes(notes.EncodeProductCounts(10, 4))))

	svc := NewGateService(projects, tasks, checklists)
	blockers, err := svc.Blockers(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, blockers, 1)
	assert.Equal(t, gate.BlockerIncompleteProducts, blockers[0].Code)

	// Finishing the counts clears the gate.
	updatedNotes := notes.EncodeProductCounts(10, 10)
	all, err := tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	_, err = tasks.Patch(ctx, all[0].ID, taskNotesPatch(updatedNotes))
	require.NoError(t, err)

	blockers, err = svc.Blockers(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, blockers)
}

func TestGateService_AdvancePastFinalPhaseFails(t *testing.T) {
	projects, tasks, checklists := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch", testutil.WithPhase(domain.PhaseFinal))
	mustCreateProject(t, projects, proj)

	svc := NewGateService(projects, tasks, checklists)
	_, err := svc.Advance(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNoNextPhase)
}

func TestGateService_ResetReturnsToFirstPhase(t *testing.T) {
	projects, tasks, checklists := setupRepos(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Launch",
		testutil.WithVariant(domain.VariantVSVL),
		testutil.WithPhase(domain.PhaseTesting))
	mustCreateProject(t, projects, proj)

	svc := NewGateService(projects, tasks, checklists)
	updated, err := svc.Reset(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseMeetings, updated.CurrentPhase)
}
