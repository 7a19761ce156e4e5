package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/janmersch/phasegate/internal/cli"
	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/janmersch/phasegate/internal/db"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/repository"
	"github.com/janmersch/phasegate/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath, err := resolveDBPath()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	checklistRepo := repository.NewSQLiteChecklistRepo(database)

	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo),
		Tasks:      service.NewTaskService(projectRepo, taskRepo),
		Checklists: service.NewChecklistService(checklistRepo),
		Gates:      service.NewGateService(projectRepo, taskRepo, checklistRepo, observer),
		Schedules:  service.NewScheduleService(projectRepo, taskRepo, observer),
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// resolveDBPath prefers PHASEGATE_DB, then the legacy PHASEGATE_DB_PATH
// name, then ~/.phasegate/phasegate.db.
func resolveDBPath() (string, error) {
	if path := domain.CoalesceStr(os.Getenv("PHASEGATE_DB"), os.Getenv("PHASEGATE_DB_PATH")); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".phasegate", "phasegate.db"), nil
}
