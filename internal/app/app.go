// Package app wires configuration, logging, metrics and tracing around the
// bigcalc command tree.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/ui"
)

const tracerName = "github.com/agbru/bigcalc/internal/app"

// Application represents the bigcalc application instance.
type Application struct {
	Config   config.AppConfig
	Registry *calc.Registry
	Logger   logging.Logger
	Metrics  *metrics.Metrics

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	tracer trace.Tracer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom operation registry for the application.
func WithRegistry(r *calc.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(a *Application) {
		a.In, a.Out, a.ErrOut = in, out, errOut
	}
}

// WithTracer sets the tracer spans are started from. The default is the
// global provider's tracer, a no-op unless an SDK is installed.
func WithTracer(t trace.Tracer) AppOption {
	return func(a *Application) { a.tracer = t }
}

// New creates an Application with the default configuration.
func New(opts ...AppOption) *Application {
	a := &Application{
		Config: config.DefaultConfig(),
		Logger: logging.Nop(),
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Registry == nil {
		a.Registry = calc.NewDefaultRegistry()
	}
	if a.tracer == nil {
		a.tracer = otel.Tracer(tracerName)
	}
	return a
}

// Execute runs the command line args and writes the metrics file, if one is
// configured, whatever the outcome.
func (a *Application) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if ferr := a.finish(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		a.Logger.Debug("command failed", logging.Err(err), logging.Int("exit_code", apperrors.ExitCodeFor(err)))
	}
	return err
}

// setup resolves the configuration once flags are parsed and builds the
// logger, the theme and the metrics.
func (a *Application) setup(cmd *cobra.Command) error {
	if err := config.Resolve(&a.Config, cmd.Flags()); err != nil {
		return err
	}

	logger, err := logging.NewLevelLogger(a.ErrOut, "bigcalc", a.Config.LogLevel)
	if err != nil {
		return apperrors.NewConfigError("invalid log level %q", a.Config.LogLevel)
	}
	a.Logger = logger

	ui.InitTheme(a.Config.NoColor || !isTerminal(a.Out))

	a.Metrics = metrics.New()
	a.Registry.SetRecorder(a.Metrics)

	a.Logger.Debug("configuration resolved",
		logging.String("command", cmd.Name()),
		logging.String("config", a.Config.String()))
	return nil
}

// finish exports the metrics file.
func (a *Application) finish() error {
	if a.Metrics == nil || a.Config.MetricsFile == "" {
		return nil
	}
	a.Metrics.RecordMemory()
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		return err
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return nil
}

// run executes fn inside a span and under the configured timeout. A missed
// deadline is reported as an apperrors.TimeoutError.
func (a *Application) run(ctx context.Context, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := a.tracer.Start(ctx, "bigcalc."+name, trace.WithAttributes(attrs...))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	err := fn(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: name, Limit: a.Config.Timeout}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// spinnerEnabled reports whether progress may be drawn on ErrOut.
func (a *Application) spinnerEnabled() bool {
	return !a.Config.Quiet && isTerminal(a.ErrOut)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}
