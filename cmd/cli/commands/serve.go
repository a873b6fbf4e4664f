package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamenight/attendance/pkg/api"
)

// Version is reported by the liveness probe
var Version = "dev"

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, overview and volunteer views as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Cfg.Server.Addr
			}

			server := api.NewApp(app.Logger, app.Cfg.Server.RequestTimeout(), api.RouteConfig{
				Health:     api.NewHealthHandler("attendance", Version, app.StoreName, app.Database),
				Attendance: api.NewAttendanceHandler(app.Database, app.Logger, app.Now, app.Cfg.Location()),
			})

			listenErr := make(chan error, 1)
			go func() {
				app.Logger.Info("Listening", zap.String("addr", addr), zap.String("store", app.StoreName))
				listenErr <- server.Listen(addr)
			}()

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-listenErr:
				return err
			case <-ctx.Done():
				app.Logger.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr from the config file)")

	return cmd
}
