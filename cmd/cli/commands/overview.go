package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/core/services"
)

// parseDepartmentFilter accepts a department name or "all"
func parseDepartmentFilter(s string) (model.Department, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(attendance.AllDepartments) {
		return attendance.AllDepartments, nil
	}
	d := model.Department(s)
	if !d.IsValid() {
		names := make([]string, 0, len(model.Departments))
		for _, dept := range model.Departments {
			names = append(names, string(dept))
		}
		return "", fmt.Errorf("unknown department %q (expected all, %s)", s, strings.Join(names, ", "))
	}
	return d, nil
}

// renderOverview writes the overview through the current filter in either layout
func renderOverview(r *renderer, overview *attendance.Overview, filter attendance.Filter, byDepartment bool) {
	if byDepartment {
		r.overviewGroups(overview.Dates, attendance.FilterHistoryGroups(overview.ByDepartment, filter))
	} else {
		r.overviewTable(overview.Dates, attendance.FilterHistories(overview.Volunteers, filter))
	}
	r.duplicates(overview.Duplicates)
}

// OverviewCmd creates the overview command
func OverviewCmd(app *AppContext) *cobra.Command {
	var (
		search       string
		department   string
		showInactive bool
		byDepartment bool
	)

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show every volunteer's attendance across all game dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dept, err := parseDepartmentFilter(department)
			if err != nil {
				return err
			}
			filter := attendance.Filter{Query: search, Department: dept, ShowInactive: showInactive}

			app.Logger.Debug("overview command",
				zap.String("search", search),
				zap.String("department", string(dept)),
				zap.Bool("show_inactive", showInactive),
				zap.Bool("by_department", byDepartment))

			overview, err := services.ViewOverview(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to load overview: %w", err)
			}

			renderOverview(newRenderer(cmd.OutOrStdout(), !app.NoColor), overview, filter, byDepartment)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show volunteers whose name contains this text")
	cmd.Flags().StringVarP(&department, "department", "d", "all", "Only show this department")
	cmd.Flags().BoolVar(&showInactive, "show-inactive", false, "Include inactive volunteers")
	cmd.Flags().BoolVar(&byDepartment, "by-department", false, "Group volunteers into department cards")

	return cmd
}
