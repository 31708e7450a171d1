package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/respvars/packages/capture"
	"github.com/abdul-hamid-achik/respvars/packages/core/config"
	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/hook"
	"github.com/abdul-hamid-achik/respvars/packages/logging"
	"github.com/abdul-hamid-achik/respvars/packages/output"
	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag    string
	storeFlag     string
	logLevelFlag  string
	logFormatFlag string
	outputFlag    string
	noColorFlag   bool
	verboseFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "respvars",
	Short: "Save values from API responses as variables.",
	Long: `respvars extracts values from HTTP responses into a persistent store.

Queue variable definitions with "define", then run the hook on a response
with "apply" or "fetch". Every match of a definition's JSONPath is saved
under "variable-<name>" and the definitions are cleared afterwards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", getEnvString("RESPVARS_CONFIG", ""), "Path to config file (env: RESPVARS_CONFIG)")
	pf.StringVarP(&storeFlag, "store", "s", getEnvString("RESPVARS_STORE", ""), "Store connection string: memory:, sqlite://path, redis://host:port/db (env: RESPVARS_STORE)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error, off (env: RESPVARS_LOG_LEVEL)")
	pf.StringVar(&logFormatFlag, "log-format", getEnvString("RESPVARS_LOG_FORMAT", ""), "Log format: text or json (env: RESPVARS_LOG_FORMAT)")
	pf.StringVarP(&outputFlag, "output", "o", getEnvString("RESPVARS_OUTPUT", "console"), "Output format: console, json (env: RESPVARS_OUTPUT)")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("RESPVARS_NO_COLOR", false), "Disable colored output (env: RESPVARS_NO_COLOR)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("RESPVARS_VERBOSE", false), "Show why definitions were skipped (env: RESPVARS_VERBOSE)")

	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

// settings holds what every command derives from config and flags.
type settings struct {
	cfg       *config.Config
	logger    *slog.Logger
	formatter output.Formatter
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	overrides := &config.Config{
		Store:     storeFlag,
		LogLevel:  logLevelFlag,
		LogFormat: logFormatFlag,
	}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}
	if verboseFlag {
		overrides.Verbose = config.BoolPtr(true)
	}
	cfg = cfg.Merge(overrides)

	return &settings{
		cfg:       cfg,
		logger:    logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat),
		formatter: output.New(outputFlag, cmd.OutOrStdout(), cfg.GetVerbose(), cfg.GetNoColor()),
	}, nil
}

func (s *settings) openStore() (store.Store, error) {
	st, err := store.Open(s.cfg.Store, store.WithPrefix(s.cfg.RedisPrefix))
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("failed to open store: %w", err))
	}
	s.logger.Debug("store opened", slog.String("store", s.cfg.Store))
	return st, nil
}

// runHook applies pending definitions to a response and prints the outcome.
func (s *settings) runHook(ctx context.Context, st store.Store, response capture.Accessor) error {
	saver := hook.NewSaver(hook.WithLogger(s.logger))
	result, err := saver.Apply(ctx, hook.Context{Response: response, Store: st})
	if err != nil {
		if errors.Is(err, definition.ErrMalformed) {
			return withExitCode(ExitDefinitionError, err)
		}
		return withExitCode(ExitHookError, err)
	}

	entries, err := st.All(ctx)
	if err != nil {
		return withExitCode(ExitHookError, fmt.Errorf("failed to list store: %w", err))
	}
	s.formatter.FormatResult(result, entries)
	return nil
}
