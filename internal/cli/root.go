package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lhci-action/internal/logging"
	"lhci-action/internal/plan"
	"lhci-action/internal/workflow"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1 // step failed: fatal resolution error or I/O failure
	ExitUsage   = 2 // bad flags or arguments
)

// Options contain configuration for the CLI.
type Options struct {
	Environ []string  // process environment, "KEY=VALUE"
	WorkDir string    // base for relative paths
	Stdout  io.Writer // workflow commands and diagnostics
	Stderr  io.Writer // logs
}

// CLI is the lhci-action command tree.
type CLI struct {
	opts     Options
	environ  []string
	settings *viper.Viper
	logger   zerolog.Logger
	rootCmd  *cobra.Command
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}

	cli := &CLI{
		opts:    opts,
		environ: opts.Environ,
		logger:  logging.New(opts.Stderr, false),
	}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lhci-action",
		Short: "Prepare Lighthouse CI runs and annotate their assertion results",
		Long: `lhci-action reconciles GitHub Action inputs, the environment and an optional
lighthouserc file into one execution plan, and turns Lighthouse CI assertion
results into problem-matcher annotations.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(cli.opts.Stdout)
	cmd.SetErr(cli.opts.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("env-file", "", "Load missing environment variables from a dotenv file")

	cmd.AddCommand(cli.newResolveCmd())
	cmd.AddCommand(cli.newAnnotateCmd())
	cmd.AddCommand(cli.newMatcherCmd())

	return cmd
}

// setup binds settings, applies --env-file and attaches the logger to the
// command context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	v, err := newSettings(cmd.Flags(), cli.opts.Environ)
	if err != nil {
		return err
	}
	cli.settings = v

	logger := logging.New(cli.opts.Stderr, v.GetBool("verbose"))
	cli.logger = logger

	if envFile := v.GetString("env-file"); envFile != "" {
		path := cli.resolvePath(envFile)
		environ, err := loadEnvFile(cli.opts.Environ, path)
		if err != nil {
			return fmt.Errorf("cannot load env file: %w", err)
		}
		cli.environ = environ
		logger.Debug().Str("path", path).Msg("loaded env file")
	}

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// Run executes the command named by args and returns the process exit code.
func (cli *CLI) Run(ctx context.Context, args []string) int {
	// cobra reads os.Args when args is nil
	if args == nil {
		args = []string{}
	}
	cli.rootCmd.SetArgs(args)
	err := cli.rootCmd.ExecuteContext(ctx)
	return cli.report(err)
}

// report prints err the way the runner expects and maps it to an exit code.
func (cli *CLI) report(err error) int {
	if err == nil {
		return ExitOK
	}

	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(cli.opts.Stderr, "Error: %v\n", err)
		fmt.Fprintf(cli.opts.Stderr, "Run '%s --help' for usage.\n", cli.rootCmd.Name())
		return ExitUsage
	}

	var fe *plan.FatalError
	if errors.As(err, &fe) {
		fmt.Fprintln(cli.opts.Stdout, workflow.Error(fe.Error()))
		return ExitFailure
	}

	cli.logger.Error().Err(err).Msg("command failed")
	fmt.Fprintln(cli.opts.Stdout, workflow.Error(err.Error()))
	return ExitFailure
}
