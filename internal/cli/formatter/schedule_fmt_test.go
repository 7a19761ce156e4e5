package formatter

import (
	"testing"
	"time"

	"github.com/janmersch/phasegate/internal/chain"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
	"github.com/janmersch/phasegate/internal/service"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Tests compare raw strings; styling would embed escape codes.
	DisableColor()
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(nil))

	d := time.Date(2026, 3, 17, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-17", FormatDate(&d))
}

func TestFormatReconcile_NothingToDo(t *testing.T) {
	out := FormatReconcile(&service.ReconcileResult{})
	assert.Contains(t, out, "nothing to do")
}

func TestFormatReconcile_ReportsFailures(t *testing.T) {
	res := &service.ReconcileResult{
		Planned: 3,
		Applied: 2,
		Failed: []service.PatchFailure{
			{TaskID: "aaaabbbb-0000", Role: domain.RoleReview, Err: assert.AnError},
		},
	}
	out := FormatReconcile(res)
	assert.Contains(t, out, "planned 3 patches, applied 2")
	assert.Contains(t, out, "aaaabbbb")
	assert.Contains(t, out, "review")
}

func TestFormatTaskList_MergesLockColumn(t *testing.T) {
	task := &domain.Task{ID: "11112222-3333", Title: "Review copy", Status: domain.TaskTodo}
	locks := []service.TaskLock{
		{Task: task, Lock: chain.LockState{TimeLocked: true, RemainingBusinessDays: 2}},
	}

	out := FormatTaskList([]*domain.Task{task}, locks)
	assert.Contains(t, out, "Review copy")
	assert.Contains(t, out, "2d")
}

func TestFormatTaskList_MarksKOTasks(t *testing.T) {
	task := &domain.Task{
		ID:     "11112222-3333",
		Title:  "Catalog pages",
		Status: domain.TaskTodo,
		Notes:  "ko_tab=KO1KO2; total_products=2; completed_products=0",
	}
	out := FormatTaskList([]*domain.Task{task}, nil)
	assert.Contains(t, out, "Catalog pages [KO]")
}

func TestFormatTaskList_DependencyLockNamesBlocker(t *testing.T) {
	task := &domain.Task{ID: "11112222-3333", Title: "Approval", Status: domain.TaskTodo}
	locks := []service.TaskLock{
		{Task: task, Lock: chain.LockState{DependencyLocked: true, BlockingTaskID: "99998888-7777"}},
	}

	out := FormatTaskList([]*domain.Task{task}, locks)
	assert.Contains(t, out, "dep:99998888")
}

func TestFormatBlockers_CleanGate(t *testing.T) {
	out := FormatBlockers(domain.PhasePlanning, nil)
	assert.Contains(t, out, "may advance")
}

func TestFormatBlockers_ListsEachCategory(t *testing.T) {
	blockers := []gate.Blocker{
		{Code: gate.BlockerOpenTasks, Count: 2, Message: "2 open tasks in phase planning"},
		{Code: gate.BlockerUncheckedItems, Count: 1, Message: "1 unchecked checklist item"},
	}
	out := FormatBlockers(domain.PhasePlanning, blockers)
	assert.Contains(t, out, "2 open tasks in phase planning")
	assert.Contains(t, out, "1 unchecked checklist item")
	assert.Contains(t, out, "[2]")
}
