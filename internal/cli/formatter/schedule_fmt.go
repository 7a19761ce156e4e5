package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/notes"
	"github.com/janmersch/phasegate/internal/service"
)

// FormatDate renders a nullable date as yyyy-mm-dd or a dash.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatTaskList renders the task table for one project, with lock
// annotations merged in when available.
func FormatTaskList(tasks []*domain.Task, locks []service.TaskLock) string {
	lockByID := make(map[string]service.TaskLock, len(locks))
	for _, tl := range locks {
		lockByID[tl.Task.ID] = tl
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		status := StatusStyle(t.Status).Render(string(t.Status))
		lock := ""
		if tl, ok := lockByID[t.ID]; ok {
			lock = lockLabel(tl)
		}
		role := string(t.Role)
		if role == "" {
			role = "-"
		}
		title := t.Title
		if notes.IsKOTask(t.Notes) {
			title += " " + StyleHeader.Render("[KO]")
		}
		rows = append(rows, []string{
			shortID(t.ID),
			title,
			role,
			status,
			FormatDate(t.DueDate),
			lock,
		})
	}
	return RenderTable([]string{"ID", "TITLE", "ROLE", "STATUS", "DUE", "LOCK"}, rows)
}

func lockLabel(tl service.TaskLock) string {
	switch {
	case tl.Lock.DependencyLocked:
		return StyleRed.Render("dep:" + shortID(tl.Lock.BlockingTaskID))
	case tl.Lock.TimeLocked:
		return StyleYellow.Render(fmt.Sprintf("%dd", tl.Lock.RemainingBusinessDays))
	default:
		return StyleGreen.Render("open")
	}
}

// FormatReconcile renders the outcome of one reconciliation pass.
func FormatReconcile(res *service.ReconcileResult) string {
	var b strings.Builder
	if res.Planned == 0 {
		b.WriteString(StyleGreen.Render("chain consistent; nothing to do"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("planned %d patches, applied %d\n", res.Planned, res.Applied))
	for _, f := range res.Failed {
		b.WriteString(fmt.Sprintf("  %s %s (%s): %v\n",
			StyleRed.Render("failed"), shortID(f.TaskID), f.Role, f.Err))
	}
	return b.String()
}

// FormatLocks renders the lock table for a project's tasks.
func FormatLocks(locks []service.TaskLock) string {
	rows := make([][]string, 0, len(locks))
	for _, tl := range locks {
		rows = append(rows, []string{
			shortID(tl.Task.ID),
			tl.Task.Title,
			FormatDate(tl.Task.DueDate),
			lockLabel(tl),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "DUE", "LOCK"}, rows)
}

// FormatChecklist renders checklist items grouped in list order.
func FormatChecklist(items []*domain.ChecklistItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		mark := StyleDim.Render("[ ]")
		if it.Checked {
			mark = StyleGreen.Render("[x]")
		}
		comment := it.Comment
		if comment == "" {
			comment = "-"
		}
		rows = append(rows, []string{shortID(it.ID), mark, it.Path, it.Title, comment})
	}
	return RenderTable([]string{"ID", "DONE", "PATH", "TITLE", "COMMENT"}, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
