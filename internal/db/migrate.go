package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are written to be
// re-runnable; ALTER TABLE duplicates are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		short_id TEXT,
		name TEXT NOT NULL,
		department_id TEXT NOT NULL DEFAULT '',
		variant TEXT NOT NULL DEFAULT 'standard',
		current_phase TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id
		ON projects (short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'todo',
		priority TEXT NOT NULL DEFAULT 'normal',
		phase TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		due_date TEXT,
		dependency_task_id TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		assignees TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_phase ON tasks (project_id, phase)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		title TEXT NOT NULL,
		checked INTEGER NOT NULL DEFAULT 0,
		position INTEGER,
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checklist_project_path
		ON checklist_items (project_id, path)`,
}
