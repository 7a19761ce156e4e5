package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/janmersch/phasegate/internal/domain"
)

// checklistColumns is the canonical SELECT column list for checklist items.
const checklistColumns = `id, project_id, path, title, checked, position,
		comment, created_at, updated_at`

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db *sql.DB
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(db *sql.DB) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: db}
}

func (r *SQLiteChecklistRepo) Create(ctx context.Context, item *domain.ChecklistItem) error {
	query := `INSERT INTO checklist_items (id, project_id, path, title, checked,
		position, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProjectID,
		item.Path,
		item.Title,
		boolToInt(item.Checked),
		nullableIntToValue(item.Position),
		item.Comment,
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) GetByID(ctx context.Context, id string) (*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklist_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteChecklistRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklist_items
		WHERE project_id = ? ORDER BY created_at`
	return r.queryItems(ctx, query, projectID)
}

func (r *SQLiteChecklistRepo) ListByPath(ctx context.Context, projectID, path string) ([]*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistColumns + ` FROM checklist_items
		WHERE project_id = ? AND path = ? ORDER BY created_at`
	return r.queryItems(ctx, query, projectID, path)
}

func (r *SQLiteChecklistRepo) Patch(ctx context.Context, id string, patch ChecklistPatch) (*domain.ChecklistItem, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{nowUTC()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Checked != nil {
		sets = append(sets, "checked = ?")
		args = append(args, boolToInt(*patch.Checked))
	}
	if patch.Comment != nil {
		sets = append(sets, "comment = ?")
		args = append(args, *patch.Comment)
	}
	if patch.PositionSet {
		sets = append(sets, "position = ?")
		args = append(args, nullableIntToValue(patch.Position))
	}

	query := "UPDATE checklist_items SET " + joinSets(sets) + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("patching checklist item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("patching checklist item %s: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteChecklistRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) queryItems(ctx context.Context, query string, args ...interface{}) ([]*domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ChecklistItem
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return items, nil
}

func (r *SQLiteChecklistRepo) scanItem(row rowScanner) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	var checked int
	var position sql.NullInt64
	var createdAt, updatedAt string

	err := row.Scan(&item.ID, &item.ProjectID, &item.Path, &item.Title, &checked,
		&position, &item.Comment, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checklist item: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning checklist item: %w", err)
	}

	item.Checked = checked != 0
	if position.Valid {
		pos := int(position.Int64)
		item.Position = &pos
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		item.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		item.UpdatedAt = t
	}
	return &item, nil
}
