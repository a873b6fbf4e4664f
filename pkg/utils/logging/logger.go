package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where and how much the CLI logs
type Options struct {
	// Dir receives one JSON log file per run. Empty disables file logging.
	Dir string
	// Level is the console level name ("debug", "info", "warn", "error")
	Level string
	// Console defaults to stderr so that rendered tables on stdout stay clean
	Console io.Writer
	// JSON switches the console encoder to JSON, used by the API server
	JSON bool
}

// DefaultOptions returns the options used by the CLI
func DefaultOptions() Options {
	return Options{Dir: "logs", Level: "info"}
}

// ParseLevel converts a level name to a zap level, falling back to info
func ParseLevel(name string) zapcore.Level {
	level := zapcore.InfoLevel
	if name == "" {
		return level
	}
	if err := level.Set(strings.ToLower(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// InitLogger initializes a zap logger with console and file outputs.
// env is used to prefix the log file name.
func InitLogger(env string, opts Options) (*zap.Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var consoleEncoder zapcore.Encoder
	if opts.JSON {
		consoleEncoder = zapcore.NewJSONEncoder(fileEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfig)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), ParseLevel(opts.Level)),
	}

	if opts.Dir != "" {
		logFile, err := openLogFile(opts.Dir, env, time.Now())
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig()), zapcore.AddSync(logFile), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if env != "" {
		logger = logger.With(zap.String("env", env))
	}

	return logger, nil
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func openLogFile(dir, env string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	prefix := env
	if prefix == "" {
		prefix = "default"
	}
	name := filepath.Join(dir, fmt.Sprintf("%s_%s.log", prefix, now.Format("2006-01-02_15-04-05")))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logFile, nil
}
