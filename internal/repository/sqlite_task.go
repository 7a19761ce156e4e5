package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, title, status, priority, phase, role,
		due_date, dependency_task_id, assignees, notes, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, project_id, title, status, priority, phase, role,
		due_date, dependency_task_id, assignees, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		string(t.Status),
		string(t.Priority),
		string(t.Phase),
		string(t.Role),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableStringToValue(t.DependencyID),
		encodeAssignees(t.Assignees),
		t.Notes,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return r.scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Patch(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{nowUTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*patch.Role))
	}
	if patch.DueDateSet {
		sets = append(sets, "due_date = ?")
		args = append(args, nullableTimeToString(patch.DueDate, time.RFC3339))
	}
	if patch.DependencySet {
		sets = append(sets, "dependency_task_id = ?")
		args = append(args, nullableStringToValue(patch.DependencyID))
	}
	if patch.AssigneesSet {
		sets = append(sets, "assignees = ?")
		args = append(args, encodeAssignees(patch.Assignees))
	}

	query := "UPDATE tasks SET " + joinSets(sets) + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("patching task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("patching task %s: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, priority, phase, role, assignees string
	var dueDate, dependencyID sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &status, &priority, &phase, &role,
		&dueDate, &dependencyID, &assignees, &t.Notes, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	t.Phase = domain.Phase(phase)
	t.Role = domain.ChainRole(role)
	t.DueDate = parseNullableTime(dueDate, time.RFC3339)
	if dependencyID.Valid && dependencyID.String != "" {
		dep := dependencyID.String
		t.DependencyID = &dep
	}
	t.Assignees = decodeAssignees(assignees)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = ts
	}
	return &t, nil
}
