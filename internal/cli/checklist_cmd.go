package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/janmersch/phasegate/internal/cli/formatter"
	"github.com/janmersch/phasegate/internal/domain"
	"github.com/spf13/cobra"
)

func newChecklistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage gate checklists",
	}

	cmd.AddCommand(
		newChecklistAddCmd(app),
		newChecklistListCmd(app),
		newChecklistCheckCmd(app),
		newChecklistCommentCmd(app),
	)

	return cmd
}

func newChecklistAddCmd(app *App) *cobra.Command {
	var title, path string
	var position int

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			item := &domain.ChecklistItem{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Path:      path,
				Title:     title,
			}
			if cmd.Flags().Changed("position") {
				item.Position = &position
			}

			if err := app.Checklists.Add(ctx, item); err != nil {
				return err
			}

			fmt.Printf("Added checklist item %s under %s\n", item.Title, item.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&path, "path", "", "Checklist path (e.g. planning, control)")
	cmd.Flags().IntVar(&position, "position", 0, "Sort position within the path")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func newChecklistListCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List checklist items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var items []*domain.ChecklistItem
			if path != "" {
				items, err = app.Checklists.ListByPath(ctx, projectID, path)
			} else {
				items, err = app.Checklists.ListByProject(ctx, projectID)
			}
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No checklist items found.")
				return nil
			}

			fmt.Print(formatter.FormatChecklist(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Limit to one checklist path")

	return cmd
}

func resolveChecklistItem(ctx context.Context, app *App, projectID, input string) (*domain.ChecklistItem, error) {
	items, err := app.Checklists.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var matches []*domain.ChecklistItem
	for _, it := range items {
		if it.ID == input {
			return it, nil
		}
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("checklist item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newChecklistCheckCmd(app *App) *cobra.Command {
	var uncheck bool

	cmd := &cobra.Command{
		Use:   "check PROJECT ITEM",
		Short: "Check (or uncheck) an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := resolveChecklistItem(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			updated, err := app.Checklists.SetChecked(ctx, item.ID, !uncheck)
			if err != nil {
				return err
			}

			state := "checked"
			if uncheck {
				state = "unchecked"
			}
			fmt.Printf("Item %s %s.\n", updated.Title, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&uncheck, "undo", false, "Uncheck instead")

	return cmd
}

func newChecklistCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment PROJECT ITEM TEXT",
		Short: "Set the comment on an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := resolveChecklistItem(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if _, err := app.Checklists.SetComment(ctx, item.ID, args[2]); err != nil {
				return err
			}
			fmt.Println("Comment saved.")
			return nil
		},
	}
}
