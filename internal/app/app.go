// Package app wires configuration, logging, metrics, the evaluation engine
// and the user interfaces into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agbru/qsim/internal/cli"
	"github.com/agbru/qsim/internal/config"
	apperrors "github.com/agbru/qsim/internal/errors"
	"github.com/agbru/qsim/internal/logging"
	"github.com/agbru/qsim/internal/metrics"
	"github.com/agbru/qsim/internal/ui"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/agbru/qsim/internal/app.Version=...".
var Version = "dev"

// Application represents the qsim application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	log      logging.Logger
	recorder *metrics.Recorder
	registry *prometheus.Registry
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(log logging.Logger) AppOption {
	return func(a *Application) { a.log = log }
}

// WithRecorder sets a custom metrics recorder for the application.
func WithRecorder(r *metrics.Recorder) AppOption {
	return func(a *Application) { a.recorder = r }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full command line, including the program name.
//   - errWriter: Destination for usage and configuration errors.
//   - opts: Optional overrides for logging and metrics.
//
// Returns:
//   - *Application: The configured application.
//   - error: Non-nil when the command line is invalid.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.log == nil {
		app.log = logging.NewLogger(errWriter, "app")
	}
	if app.recorder == nil {
		app.recorder = metrics.NewRecorder()
	}
	app.registry = prometheus.NewRegistry()
	if err := app.recorder.Register(app.registry); err != nil {
		return nil, err
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	if a.Config.REPL {
		return a.runREPL(out)
	}
	if a.Config.Calibrate {
		if code := a.runCalibrate(ctx, out); code != apperrors.ExitSuccess || a.Config.Circuit == "" {
			return code
		}
	}

	return a.runEvaluate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
