package cli

import (
	"github.com/janmersch/phasegate/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects   service.ProjectService
	Tasks      service.TaskService
	Checklists service.ChecklistService
	Gates      service.GateService
	Schedules  service.ScheduleService
}

// NewRootCmd creates the top-level "phasegate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "phasegate",
		Short: "Phase gating and task dependency scheduling",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newChecklistCmd(app),
		newGateCmd(app),
		newAdvanceCmd(app),
		newScheduleCmd(app),
	)

	return root
}
