// Package telly provides a widget toolkit for building focus driven
// television style applications that are navigated with a remote control.
//
// The widget tree lives in package widget, output backends in package device
// and its subpackages, and lazily loaded screens are resolved through
// package module. This package holds toolkit initialisation, the shared
// logger and the error types used across the others.
package telly

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/internal"
)

// Options configures toolkit initialization.
type Options struct {
	ConfigPath string    // TOML or YAML file; empty reads TELLY_CONFIG
	LogPath    string    // Full path for log file including filename (creates parent directories)
	LogLevel   string    // Overrides the configured level when set
	LogOutput  io.Writer // Console writer for logs; terminal backends pass io.Discard
}

// Init configures logging and loads the application configuration.
// Call it before creating a device.
func Init(options Options) (config.Config, error) {
	if options.LogOutput != nil {
		internal.SetLogOutput(options.LogOutput)
	}

	var (
		cfg config.Config
		err error
	)
	if options.ConfigPath != "" {
		cfg, err = config.Load(options.ConfigPath)
		if err == nil {
			config.ApplyEnv(&cfg)
		}
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return config.Config{}, NewInfrastructureError("load_config", err)
	}

	logPath := options.LogPath
	if logPath == "" {
		logPath = cfg.Logging.Path
	}
	if logPath != "" {
		internal.SetLogPath(logPath)
	}

	level := cfg.Logging.Level
	if options.LogLevel != "" {
		level = options.LogLevel
	}
	internal.SetRawLogLevel(level)

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	}

	internal.GetInternalLogger().Debug("telly initialized",
		"backend", cfg.Device.Backend,
		"locale", cfg.Locale,
		"fade", cfg.FadeEnabled())

	return cfg, nil
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
