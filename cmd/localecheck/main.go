// Command localecheck reports translation keys that are present in a reference locale
// file but missing from the other locale files next to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"localecheck/internal/config"
	"localecheck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitOK         = 0
	exitIncomplete = 1
	exitFatal      = 2
)

var errIncomplete = errors.New("some locale files still have missing keys")

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code   int
	err    error
	silent bool // already reported on stdout
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fatal(err error) error {
	return &exitError{code: exitFatal, err: err}
}

// cliOptions holds raw flag values; they override the config file when set.
type cliOptions struct {
	configPath string
	dir        string
	reference  string
	locales    []string
	format     string
	showExtra  bool
	noColor    bool
	watch      bool
	verbose    bool
	force      bool
}

type app struct {
	opts   cliOptions
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "localecheck [dir]",
		Short: "Report translation keys missing from locale files",
		Long: `Compares every target locale file against the reference locale (en.json by
default) and lists the top-level keys each target is missing.

Targets are checked in the configured order. A target that cannot be read is
reported and the remaining targets are still checked. A reference that cannot
be read aborts the run.

Exit status: 0 when every locale is complete, 1 when any locale is incomplete
or unreadable, 2 when the reference or the configuration is unusable.

Examples:
  localecheck                      # check ./en.json against the default locales
  localecheck src/locales          # same, in another directory
  localecheck --locales de.json,fr.json --show-extra
  localecheck --watch              # re-check on change; stop with Ctrl-C (exit status is always 0)`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runCheck,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", config.DefaultPath, "Config file")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.Flags().StringVarP(&a.opts.dir, "dir", "d", "", "Directory holding the locale files")
	rootCmd.Flags().StringVarP(&a.opts.reference, "reference", "r", "", "Reference locale file")
	rootCmd.Flags().StringSliceVarP(&a.opts.locales, "locales", "l", nil, "Target locale files, in order (empty: every *.json in dir)")
	rootCmd.Flags().StringVarP(&a.opts.format, "format", "f", "", "Report format: text or json")
	rootCmd.Flags().BoolVar(&a.opts.showExtra, "show-extra", false, "Also list keys that are not in the reference")
	rootCmd.Flags().BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVarP(&a.opts.watch, "watch", "w", false, "Re-run the check whenever a locale file changes (exits 0 on interrupt regardless of the last result)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Writes the default configuration (reference, target list, output format) to the
config file so the target list can be edited instead of hardcoded.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{Verbose: a.opts.verbose, Output: cmd.ErrOrStderr()})
			if err != nil {
				return fatal(fmt.Errorf("failed to initialize logger: %w", err))
			}
			a.logger = logger
			return nil
		},
		RunE: a.runInit,
	}
	initCmd.Flags().BoolVar(&a.opts.force, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)

	return rootCmd
}

// setup loads the config, applies flags over it and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return fatal(err)
	}
	a.applyFlags(cmd, cfg, args)

	if err := cfg.Validate(); err != nil {
		return fatal(fmt.Errorf("invalid configuration: %w", err))
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: a.opts.verbose,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}
	a.logger = logger
	a.logger.Debug("Configuration loaded",
		zap.String("config", a.opts.configPath),
		zap.String("dir", cfg.Dir),
		zap.String("reference", cfg.Reference),
		zap.Strings("locales", cfg.Locales))
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	if flags.Changed("dir") {
		cfg.Dir = a.opts.dir
	}
	if flags.Changed("reference") {
		cfg.Reference = a.opts.reference
	}
	if flags.Changed("locales") {
		cfg.Locales = a.opts.locales
	}
	if flags.Changed("format") {
		cfg.Format = a.opts.format
	}
	if flags.Changed("show-extra") {
		cfg.ShowExtra = a.opts.showExtra
	}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and maps its error to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintf(stderr, "localecheck: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "localecheck: %v\n", err)
	return exitFatal
}
