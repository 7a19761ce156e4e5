package cli

import (
	"context"
	"fmt"

	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/janmersch/phasegate/internal/service"
	"github.com/spf13/cobra"
)

func newGateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gate PROJECT",
		Short: "Report the blockers holding the current phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			blockers, err := app.Gates.Blockers(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatBlockers(p.EffectivePhase(), blockers))
			return nil
		},
	}
}

func newAdvanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance PROJECT",
		Short: "Advance the project to its next phase if the gate is clear",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			p, err := app.Gates.Advance(ctx, projectID)
			if blocked := service.AsBlockedError(err); blocked != nil {
				fmt.Print(formatter.FormatBlockers(blocked.Phase, blocked.Blockers))
				return fmt.Errorf("gate is not clear")
			}
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatAdvance(p))
			return nil
		},
	}
}
