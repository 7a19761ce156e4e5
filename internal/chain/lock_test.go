package chain

import (
	"testing"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/notes"
	"github.com/stretchr/testify/assert"
)

func TestComputeLock_TimeLockBoundary(t *testing.T) {
	// Project starts Monday; unlock_after_days=3 means locked through
	// Wednesday and unlocked starting Thursday.
	anchor := time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC) // Monday
	task := &domain.Task{
		ID:    "t-1",
		Title: "write copy",
		Notes: notes.EncodeMeta(notes.Meta{UnlockAfterDays: 3}),
	}

	wednesday := time.Date(2025, 3, 19, 23, 0, 0, 0, time.UTC)
	lock := ComputeLock(task, nil, anchor, wednesday)
	assert.True(t, lock.TimeLocked)
	assert.True(t, lock.Locked())
	assert.Equal(t, 1, lock.RemainingBusinessDays)

	thursday := time.Date(2025, 3, 20, 0, 30, 0, 0, time.UTC)
	lock = ComputeLock(task, nil, anchor, thursday)
	assert.False(t, lock.TimeLocked)
	assert.False(t, lock.Locked())
}

func TestComputeLock_DependencyLockFollowsPredecessorStatus(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	pred := &domain.Task{ID: "pred", Title: "layout", Status: domain.TaskInProgress}
	depID := pred.ID
	task := &domain.Task{ID: "succ", Title: "content", DependencyID: &depID}
	byID := IndexTasks([]*domain.Task{pred, task})

	lock := ComputeLock(task, byID, now, now)
	assert.True(t, lock.DependencyLocked)
	assert.Equal(t, "pred", lock.BlockingTaskID)

	// The instant the predecessor flips to done the next evaluation unlocks.
	pred.Status = domain.TaskDone
	lock = ComputeLock(task, byID, now, now)
	assert.False(t, lock.DependencyLocked)
}

func TestComputeLock_DependencyLockRegardlessOfTime(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	pred := &domain.Task{ID: "pred", Status: domain.TaskTodo}
	depID := pred.ID
	task := &domain.Task{ID: "succ", DependencyID: &depID}

	lock := ComputeLock(task, IndexTasks([]*domain.Task{pred, task}), now, now)
	assert.False(t, lock.TimeLocked)
	assert.True(t, lock.Locked())
}

func TestComputeLock_RootNeverDependencyLocked(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	pred := &domain.Task{ID: "pred", Status: domain.TaskTodo}
	depID := pred.ID
	root := &domain.Task{ID: "root", Title: "Kickoff", DependencyID: &depID}

	lock := ComputeLock(root, IndexTasks([]*domain.Task{pred, root}), now, now)
	assert.False(t, lock.DependencyLocked)
}

func TestComputeLock_ExplicitLinkBeatsMetaID(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	doneTask := &domain.Task{ID: "done-pred", Status: domain.TaskDone}
	openTask := &domain.Task{ID: "open-pred", Status: domain.TaskTodo}
	depID := doneTask.ID
	task := &domain.Task{
		ID:           "t",
		DependencyID: &depID,
		Notes:        notes.EncodeMeta(notes.Meta{DependencyID: "open-pred"}),
	}
	byID := IndexTasks([]*domain.Task{doneTask, openTask, task})

	lock := ComputeLock(task, byID, now, now)
	assert.False(t, lock.DependencyLocked, "explicit link to a done task wins over meta id")
}

func TestComputeLock_MetaIDUsedWhenNoExplicitLink(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	openTask := &domain.Task{ID: "open-pred", Status: domain.TaskTodo}
	task := &domain.Task{
		ID:    "t",
		Notes: notes.EncodeMeta(notes.Meta{DependencyID: "open-pred"}),
	}
	lock := ComputeLock(task, IndexTasks([]*domain.Task{openTask, task}), now, now)
	assert.True(t, lock.DependencyLocked)
}

func TestComputeLock_DanglingDependencyDoesNotLock(t *testing.T) {
	now := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)
	depID := "vanished"
	task := &domain.Task{ID: "t", DependencyID: &depID}
	lock := ComputeLock(task, IndexTasks([]*domain.Task{task}), now, now)
	assert.False(t, lock.Locked())
}
