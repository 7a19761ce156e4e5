package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/chain"
	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/service"
	"github.com/spf13/cobra"
)

func resolveTaskID(ctx context.Context, app *App, projectID, input string) (*domain.Task, error) {
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Task
	for _, t := range tasks {
		if t.ID == input {
			return t, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
		newTaskDueCmd(app),
		newTaskAssignCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, phase, role, due string

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			t := &domain.Task{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Title:     title,
				Phase:     domain.Phase(phase),
				Role:      domain.ChainRole(role),
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				t.DueDate = &d
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Printf("Created task %s [%s]\n", t.Title, t.ID[:8])
			if t.Role != domain.RoleNone {
				res, err := app.Schedules.Reconcile(ctx, projectID)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: chain reconciliation failed: %v\n", err)
				} else if res.Planned > 0 {
					fmt.Print(formatter.FormatReconcile(res))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase tag (defaults to following the project phase)")
	cmd.Flags().StringVar(&role, "role", "", "Chain role (kickoff, template, pricing, ...)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List tasks with their lock state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			locks, err := app.Schedules.Locks(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatTaskList(tasks, locks))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done PROJECT TASK",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			updated, err := app.Tasks.SetStatus(ctx, t.ID, domain.TaskDone)
			if errors.Is(err, service.ErrTaskLocked) {
				return fmt.Errorf("task %q is locked; check `task list` for the blocking task or remaining wait", t.Title)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Task %s marked done.\n", updated.Title)
			return nil
		},
	}
}

func newTaskDueCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "due PROJECT TASK [DATE]",
		Short: "Set or clear a task's due date",
		Long: "Set or clear a task's due date. Moving the chain root's due date\n" +
			"recomputes every downstream due date from the new anchor.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if clear {
				if _, err := app.Tasks.SetDueDate(ctx, t.ID, nil); err != nil {
					return err
				}
				fmt.Printf("Cleared due date on %s.\n", t.Title)
				return nil
			}

			if len(args) < 3 {
				return fmt.Errorf("a date is required unless --clear is set")
			}
			due, err := time.Parse("2006-01-02", args[2])
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", args[2], err)
			}

			// Moving the root reseeds the whole chain.
			if chain.ResolveRole(t) == domain.RoleKickoff {
				res, err := app.Schedules.SetRootDue(ctx, projectID, due)
				if errors.Is(err, service.ErrTaskLocked) {
					return fmt.Errorf("task %q is locked and cannot be rescheduled by hand", t.Title)
				}
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatReconcile(res))
				return nil
			}

			updated, err := app.Tasks.SetDueDate(ctx, t.ID, &due)
			if errors.Is(err, service.ErrTaskLocked) {
				return fmt.Errorf("task %q is locked and cannot be rescheduled by hand", t.Title)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Due date on %s set to %s.\n", updated.Title, formatter.FormatDate(updated.DueDate))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the due date")

	return cmd
}

func newTaskAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign PROJECT TASK [NAME...]",
		Short: "Replace a task's assignees (no names clears them)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			updated, err := app.Tasks.SetAssignees(ctx, t.ID, args[2:])
			if errors.Is(err, service.ErrTaskLocked) {
				return fmt.Errorf("task %q is locked", t.Title)
			}
			if err != nil {
				return err
			}

			if len(updated.Assignees) == 0 {
				fmt.Printf("Cleared assignees on %s.\n", updated.Title)
			} else {
				fmt.Printf("Assigned %s to %s.\n", strings.Join(updated.Assignees, ", "), updated.Title)
			}
			return nil
		},
	}
}
