// Package cli provides the Cobra command structure for condflat.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamaar/condflat/internal/config"
	"github.com/mamaar/condflat/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options carries the global flag state shared by subcommands.
type options struct {
	debug      bool
	configPath string
	write      bool
}

// NewRootCommand creates the root condflat command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "condflat",
		Short: "Flatten conditionals into guard clauses and expand ternaries",
		Long: `condflat performs structural rewrites of conditional constructs in
JavaScript-style source files: it flattens an if/else into a guard clause
plus fallthrough code (optionally inverting the condition), and expands a
nested ternary expression into an equivalent tree of if/else statements.

Positions are given as FILE:LINE:COL with 1-based line and column.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&opts.write, "write", false, "apply the edit in place instead of printing a preview")

	rootCmd.AddCommand(newGuardCommand(opts))
	rootCmd.AddCommand(newInvertCommand(opts))
	rootCmd.AddCommand(newExpandCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig resolves the effective config for a run: an explicit --config
// path wins, otherwise discovery from the working directory.
func loadConfig(opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return nil, &exitError{code: ExitConfigError, err: err}
		}
		return cfg, nil
	}
	cfg, err := config.Discover(".")
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}
	return cfg, nil
}

// exitError pairs an error with the process exit code it should produce.
// silent marks errors already reported via logging.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ee, ok := err.(*exitError); ok {
		return ee.code
	}
	return ExitInternalError
}

// IsSilent reports whether the error was already reported via logging and
// should not be printed again by main.
func IsSilent(err error) bool {
	ee, ok := err.(*exitError)
	return ok && (ee.silent || ee.err == nil)
}
