package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/core/services"
	"github.com/gamenight/attendance/pkg/db"
)

// VolunteerCmd creates the volunteer detail command
func VolunteerCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "volunteer <id>",
		Short: "Show one volunteer's attendance summary and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("volunteer id must be a UUID, got: %s", args[0])
			}

			app.Logger.Debug("volunteer command", zap.String("id", id.String()))

			detail, err := services.ViewVolunteer(app.Ctx, app.Database, app.Logger, id.String())
			if err != nil {
				if db.IsNotFound(err) {
					return fmt.Errorf("volunteer %s not found", id)
				}
				return err
			}

			r := newRenderer(cmd.OutOrStdout(), !app.NoColor)
			r.volunteer(detail)
			r.duplicates(detail.Duplicates)
			return nil
		},
	}
}
