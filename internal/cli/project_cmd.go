package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/janmersch/phasegate/internal/gate"
	"github.com/spf13/cobra"
)

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact short ID match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectStartCmd(app),
		newProjectResetCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, shortID, department, variantStr, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := domain.Variant(variantStr)
			switch variant {
			case domain.VariantStandard, domain.VariantVSVL:
			default:
				return fmt.Errorf("unknown variant %q (use standard or vsvl)", variantStr)
			}

			p := &domain.Project{
				ID:           uuid.New().String(),
				ShortID:      strings.ToUpper(shortID),
				Name:         name,
				DepartmentID: department,
				Variant:      variant,
			}

			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = &startDate
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s] in phase %s\n", p.Name, p.ShortID, p.CurrentPhase)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + 2-4 digits, e.g. VS01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&department, "department", "", "Owning department")
	cmd.Flags().StringVar(&variantStr, "variant", string(domain.VariantStandard), "Workflow variant (standard or vsvl)")
	cmd.Flags().StringVar(&start, "start", "", "Scheduling start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Print(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details and visible work surfaces",
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

			fmt.Printf("%s  %s\n", p.DisplayID(), p.Name)
			fmt.Printf("  variant:    %s\n", p.Variant)
			fmt.Printf("  phase:      %s\n", p.EffectivePhase())
			fmt.Printf("  department: %s\n", valueOrDash(p.DepartmentID))
			fmt.Printf("  start:      %s\n", formatter.FormatDate(p.StartDate))
			fmt.Print(formatter.FormatTabs(p.EffectivePhase(), gate.TabsForPhase(p.EffectivePhase())))
			return nil
		},
	}
}

func newProjectStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start ID DATE",
		Short: "Set the scheduling start date and recompute the chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			start, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[1], err)
			}

			res, err := app.Schedules.SetProjectStart(ctx, projectID, start)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReconcile(res))
			return nil
		},
	}
}

func newProjectResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset ID",
		Short: "Return a project to its first phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Gates.Reset(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Printf("%s returned to phase %s\n", p.DisplayID(), p.CurrentPhase)
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project and all of its tasks and checklist items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Println("Project removed.")
			return nil
		},
	}
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
