package cli

import (
	"context"
	"fmt"

	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and repair the task dependency chain",
	}

	cmd.AddCommand(
		newScheduleReconcileCmd(app),
		newScheduleLocksCmd(app),
	)

	return cmd
}

func newScheduleReconcileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile PROJECT",
		Short: "Recompute chain due dates and links from the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			res, err := app.Schedules.Reconcile(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatReconcile(res))
			return nil
		},
	}
}

func newScheduleLocksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "locks PROJECT",
		Short: "Show the computed lock state of every task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			locks, err := app.Schedules.Locks(ctx, projectID)
			if err != nil {
				return err
			}
			if len(locks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Print(formatter.FormatLocks(locks))
			return nil
		},
	}
}
