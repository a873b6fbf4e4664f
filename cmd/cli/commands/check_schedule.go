package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/services"
)

// CheckScheduleCmd creates the checkSchedule command
func CheckScheduleCmd(app *AppContext) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "checkSchedule",
		Short: "Compare the active game dates with the configured recurrence",
		Long: `Expands schedule.rrule from the config file over the given number of weeks
either side of today, then lists expected dates with no active game date and
active game dates the rule does not produce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.Schedule == nil {
				return fmt.Errorf("no schedule.rrule configured")
			}
			if weeks < 1 {
				return fmt.Errorf("weeks must be a positive integer, got: %d", weeks)
			}

			today := app.Today()
			from := today.AddDate(0, 0, -7*weeks)
			until := today.AddDate(0, 0, 7*weeks)

			app.Logger.Debug("checkSchedule command", zap.Int("weeks", weeks))

			report, err := services.CheckSchedule(app.Ctx, app.Database, app.Logger, app.Cfg.Schedule.RRule, from, until)
			if err != nil {
				return err
			}

			newRenderer(cmd.OutOrStdout(), !app.NoColor).schedule(app.Cfg.Schedule.RRule, report)
			return nil
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 8, "Weeks to check before and after today")

	return cmd
}
