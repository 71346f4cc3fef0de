//go:build !tinygo

// boxdemo bounces a box around a 320x240 canvas.
//
// Usage:
//
//	boxdemo                    - open a window (default)
//	boxdemo --term             - render in the terminal
//	boxdemo --headless --ticks 600
//	boxdemo version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"boxdemo/app"
	"boxdemo/hal"
	"boxdemo/internal/buildinfo"
	"boxdemo/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string
	flagHeadless bool
	flagTerm     bool
	flagHz       int
	flagTicks    uint64
	flagScale    int
	flagTPS      int
	flagHUD      bool
	flagSound    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxdemo",
	Short: "Bounce a box around a pixel canvas",
	Long: `boxdemo animates a 64px box bouncing around a 320x240 canvas and
presents it in a window, in the terminal, or nowhere at all (headless).

Window: close the window to quit. Terminal: Esc, q or Ctrl-C.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to a config YAML")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVar(&flagHeadless, "headless", false, "Run without a window")
	f.BoolVar(&flagTerm, "term", false, "Render in the terminal")
	f.IntVar(&flagHz, "hz", 0, "Tick rate in headless or terminal mode")
	f.Uint64Var(&flagTicks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever)")
	f.IntVar(&flagScale, "scale", 0, "Initial window scale")
	f.IntVar(&flagTPS, "tps", 0, "Window ticks per second")
	f.BoolVar(&flagHUD, "hud", false, "Draw the build/frame overlay")
	f.BoolVar(&flagSound, "sound", false, "Click on every bounce")
	rootCmd.MarkFlagsMutuallyExclusive("headless", "term")

	rootCmd.AddCommand(versionCmd)
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "boxdemo",
		Level:           level,
	})
}

// applyFlags overrides file settings with the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flagHeadless {
		cfg.Presenter = config.PresenterHeadless
	}
	if flagTerm {
		cfg.Presenter = config.PresenterTerminal
	}
	if f.Changed("hz") {
		cfg.Headless.Hz = flagHz
		cfg.Terminal.Hz = flagHz
	}
	if f.Changed("ticks") {
		cfg.Headless.Ticks = flagTicks
	}
	if f.Changed("scale") {
		cfg.Scale = flagScale
	}
	if f.Changed("tps") {
		cfg.TPS = flagTPS
	}
	if f.Changed("hud") {
		cfg.HUD = flagHUD
	}
	if f.Changed("sound") {
		cfg.Sound = flagSound
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	logger := newLogger(log.InfoLevel)

	cfg, used, err := config.Load(flagConfig)
	if err != nil {
		logError(logger, "config.Load", err)
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		logError(logger, "config.Validate", err)
		return err
	}
	logger.SetLevel(cfg.Level())
	if used != "" {
		logger.Debug("config loaded", "path", used)
	}

	newApp := func(h hal.HAL) hal.App {
		return app.New(h, app.Config{HUD: cfg.HUD, Sound: cfg.Sound, Volume: cfg.Volume})
	}
	opts := hal.Options{Logger: logger, Sound: cfg.Sound}

	logger.Info("starting", "presenter", cfg.Presenter, "build", buildinfo.Short())

	// Only the ticker-driven runners watch for Ctrl-C; the window keeps the
	// default signal behaviour.
	var op string
	switch cfg.Presenter {
	case config.PresenterHeadless:
		op = "hal.RunHeadless"
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Hz:    cfg.Headless.Hz,
			Ticks: cfg.Headless.Ticks,
			HAL:   opts,
		})
	case config.PresenterTerminal:
		op = "hal.RunTerminal"
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Hz: cfg.Terminal.Hz, HAL: opts})
	default:
		op = "hal.RunWindow"
		err = hal.RunWindow(newApp, hal.WindowConfig{
			Title: cfg.Title,
			Scale: cfg.Scale,
			TPS:   cfg.TPS,
			HAL:   opts,
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logError(logger, op, err)
		return err
	}
	return nil
}

// logError logs a failed operation followed by every error it wraps. When
// the chain carries a stack from where it was created, that stack goes out
// at debug level.
func logError(l *log.Logger, op string, err error) {
	l.Error(op+"() failed", "err", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		l.Error("  Caused by", "err", cause)
	}
	var ge *goerrors.Error
	if errors.As(err, &ge) {
		l.Debug("stack", "trace", string(ge.Stack()))
	}
}
