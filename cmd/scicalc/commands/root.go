// Package commands implements the scicalc command line.
package commands

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/config"
	"github.com/zephyrtronium/scicalc/display"
	"github.com/zephyrtronium/scicalc/history"
	"github.com/zephyrtronium/scicalc/logger"
)

// app is what every command works with, built from configuration before the
// command runs.
type app struct {
	cfg     *config.Config
	ev      *scicalc.Evaluator
	display *display.Formatter
	history *history.Store // nil when history is disabled
	log     *zap.SugaredLogger
	close   func() error
}

type rootFlags struct {
	configPath string
	jsonLog    bool
	verbose    int
}

// NewRoot creates the scicalc command tree.
func NewRoot() *cobra.Command {
	var (
		flags rootFlags
		a     app
	)
	root := &cobra.Command{
		Use:   "scicalc",
		Short: "Scientific calculator",
		Long: `scicalc - a scientific calculator.

Expressions use + - * / % ^, parentheses, postfix ! for factorial, the
constants PI (π) and E, and the functions sqrt, pow, abs, sin, cos, tan, log,
ln, deg, and factorial. Adjacent terms multiply: 2π, 3(1+1).

Configuration sources (in order of precedence):
1. Environment variables (SCICALC_* prefix, e.g. SCICALC_EVALUATOR_DECIMAL_PRECISION)
2. The file given by --config, or ./scicalc.toml, or scicalc.toml in the
   user config directory
3. Default values

Examples:
  scicalc eval '2+3*4' 'sqrt(2)'   # Evaluate expressions
  scicalc repl                     # Interactive calculator
  scicalc history list             # Show past calculations
  scicalc config show --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "configuration file (default ./"+config.FileName+" or user config dir)")
	root.PersistentFlags().BoolVar(&flags.jsonLog, "json-log", false, "write logs as JSON")
	root.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (repeat for more detail: -v, -vv)")

	root.AddCommand(newEvalCmd(&a))
	root.AddCommand(newReplCmd(&a))
	root.AddCommand(newHistoryCmd(&a))
	root.AddCommand(newConfigCmd(&a))
	return root
}

func (a *app) setup(flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	level := logger.VerbosityToLevel(logger.ParseLevel(cfg.Log.Level), flags.verbose)
	if err := logger.Initialize(cfg.Log.JSON || flags.jsonLog, level); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	a.cfg = cfg
	a.log = logger.Named("scicalc")

	a.ev, err = scicalc.New(scicalc.WithConfig(cfg.EvalConfig()))
	if err != nil {
		return err
	}
	tag, err := language.Parse(cfg.Display.Locale)
	if err != nil {
		return errors.Wrap(err, "invalid display.locale")
	}
	a.display = display.New(display.Locale(tag), display.Places(cfg.Evaluator.DecimalPrecision))

	a.close = func() error { return nil }
	if cfg.History.Enabled {
		st, closer, err := openStorage(cfg.History, a.log)
		if err != nil {
			return err
		}
		a.close = closer
		a.history = history.New(st,
			history.WithLimit(cfg.History.Limit),
			history.WithKey(cfg.History.Key),
			history.WithLogger(logger.Named("history")),
		)
	}
	a.log.Debugw("Configured",
		"decimal_precision", cfg.Evaluator.DecimalPrecision,
		"history_backend", cfg.History.Backend,
		"history_enabled", cfg.History.Enabled,
		"json_log", logger.JSONOutput,
		"locale", tag.String(),
	)
	return nil
}

// run wraps a command so that resources from setup are released however the
// command ends.
func (a *app) run(f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.teardown(); err == nil {
				err = cerr
			}
		}()
		return f(cmd, args)
	}
}

func (a *app) teardown() error {
	_ = logger.Logger.Sync()
	if a.close == nil {
		return nil
	}
	err := a.close()
	a.close = nil
	return err
}

// openStorage opens the configured history backend.
func openStorage(cfg config.HistoryConfig, log *zap.SugaredLogger) (history.Storage, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendMemory:
		return history.NewMemoryStorage(), nop, nil
	case config.BackendFile:
		st, err := history.NewFileStorage(cfg.Path)
		return st, nop, err
	case config.BackendSQLite:
		path := cfg.Path
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			path = filepath.Join(path, "history.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, errors.Wrap(err, "failed to create history directory")
		}
		st, err := history.OpenSQLite(path, log)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
	return nil, nil, errors.Newf("unknown history backend %q", cfg.Backend)
}
