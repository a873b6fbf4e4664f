package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gamenight/attendance/internal/config"
	"github.com/gamenight/attendance/pkg/core/model"
	"github.com/gamenight/attendance/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	StoreName string
	Logger    *zap.Logger
	Ctx       context.Context
	Now       func() time.Time
	NoColor   bool
}

// Today returns the current civil date in the configured timezone
func (a *AppContext) Today() time.Time {
	return model.Day(a.now().In(a.location()))
}

func (a *AppContext) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *AppContext) location() *time.Location {
	if a.Cfg == nil {
		return time.Local
	}
	return a.Cfg.Location()
}
