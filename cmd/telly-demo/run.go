package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/telly/internal/demo"
	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/device/term"
	"github.com/BrandonKowalski/telly/pkg/telly/device/window"
	"github.com/BrandonKowalski/telly/pkg/telly/i18n"
	"github.com/BrandonKowalski/telly/pkg/telly/input"
	"github.com/BrandonKowalski/telly/pkg/telly/module"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
	"github.com/BrandonKowalski/telly/pkg/telly/widget"
)

// Run command flags
var (
	configPath string
	backend    string
	logLevel   string
	logPath    string
	inputPath  string
	latency    time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (TOML or YAML); defaults to $TELLY_CONFIG")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Output backend (term, sdl); overrides the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "evdev device path or name for remote control input")
	rootCmd.PersistentFlags().DurationVar(&latency, "latency", 300*time.Millisecond, "Simulated module load latency")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo application",
	Example: `  # Run in the terminal
  telly-demo run

  # Run in an SDL window with a config file
  telly-demo run --backend sdl --config telly.toml

  # Read a remote control on Linux
  telly-demo run --input /dev/input/event3`,
	RunE: runDemo,
}

// scheduledDevice is a backend that also runs the application's event loop.
type scheduledDevice interface {
	device.Device
	Post(fn func())
}

func runDemo(cmd *cobra.Command, args []string) error {
	opts := telly.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		LogPath:    logPath,
	}
	if backend == "" || backend == "term" {
		// The terminal belongs to the UI.
		opts.LogOutput = io.Discard
	}

	cfg, err := telly.Init(opts)
	if err != nil {
		return err
	}
	defer telly.Close()

	if backend != "" {
		cfg.Device.Backend = backend
	}
	if inputPath != "" {
		cfg.Device.Input = inputPath
	}

	translator, err := i18n.FromConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	th := theme.FromConfig(cfg.Device.Theme)
	surfaceOpts := []device.SurfaceOption{
		device.WithConfig(cfg),
		device.WithLogger(telly.GetLogger()),
	}

	switch cfg.Device.Backend {
	case "term", "":
		dev := term.New(th, surfaceOpts...)
		app := startApp(ctx, cfg, dev, translator)
		defer app.Destroy()
		return ignoreCanceled(dev.Run(ctx, app))

	case "sdl":
		dev, err := window.New(window.OptionsFromConfig(cfg.Device, th), th, surfaceOpts...)
		if err != nil {
			return err
		}
		defer dev.Close()
		app := startApp(ctx, cfg, dev, translator)
		defer app.Destroy()
		return ignoreCanceled(dev.Run(ctx, app))

	default:
		return fmt.Errorf("unknown backend %q", cfg.Device.Backend)
	}
}

func startApp(ctx context.Context, cfg config.Config, dev scheduledDevice, translator *i18n.Translator) *widget.Application {
	catalog := module.New()
	app := widget.NewApplication(dev,
		widget.WithScheduler(dev),
		widget.WithLoader(catalog),
		widget.WithLocalizer(translator),
	)
	demo.New(app, translator, catalog, latency).Start()

	if cfg.Device.Input != "" {
		startInput(ctx, cfg.Device.Input, app)
	}
	return app
}

func startInput(ctx context.Context, path string, app *widget.Application) {
	src, err := input.Open(path)
	if err != nil {
		app.Logger().Warn("Remote control input unavailable", "input", path, "error", err)
		return
	}

	go func() {
		if err := input.NewDispatcher(app).Run(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
			app.Logger().Error("Remote control input stopped", "input", path, "error", err)
		}
	}()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
