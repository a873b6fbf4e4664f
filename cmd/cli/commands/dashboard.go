package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/core/services"
)

// DashboardCmd creates the dashboard command
func DashboardCmd(app *AppContext) *cobra.Command {
	var (
		search   string
		todayArg string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show who is scheduled or present for the current game date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.Today()
			if todayArg != "" {
				d, err := model.ParseDay(todayArg)
				if err != nil {
					return err
				}
				today = d
			}

			app.Logger.Debug("dashboard command", zap.String("today", today.Format(model.DateLayout)), zap.String("search", search))

			dash, err := services.ViewDashboard(app.Ctx, app.Database, app.Logger, today)
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			r := newRenderer(cmd.OutOrStdout(), !app.NoColor)
			r.dashboard(dash, attendance.FilterDashboardGroups(dash.ByDepartment, search), today, app.now().In(app.location()))
			r.duplicates(dash.Duplicates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show volunteers whose name contains this text")
	cmd.Flags().StringVar(&todayArg, "today", "", "Treat this date (YYYY-MM-DD) as today")

	return cmd
}
