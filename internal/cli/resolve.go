package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lhci-action/internal/inputs"
	"lhci-action/internal/plan"
	"lhci-action/internal/rcfile"
	"lhci-action/internal/workflow"
)

func (cli *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve action inputs into an execution plan",
		Long: `Reads the action inputs (INPUT_* variables), GITHUB_REF and the optional
lighthouserc file, validates them and derives the execution plan.

Fatal conditions are reported as ::error:: and exit with status 1.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: cli.runResolve,
	}

	cmd.Flags().String("plan-file", "", "Write the full plan, secrets included, as JSON to this path")
	cmd.Flags().Bool("json", false, "Print the plan as JSON with secrets redacted")

	return cmd
}

func (cli *CLI) runResolve(cmd *cobra.Command, _ []string) error {
	logger := zerolog.Ctx(cmd.Context())
	out := cmd.OutOrStdout()

	in := inputs.Read(cli.environ)

	// Masks go out before anything else can echo a secret.
	for _, secret := range in.Secrets() {
		fmt.Fprintln(out, workflow.AddMask(secret))
	}

	res, err := plan.Resolve(in, func(path string) (rcfile.File, error) {
		return rcfile.Load(cli.resolvePath(path))
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(out, workflow.Warning(w))
	}

	p := res.Plan
	if p.PreferStaticDir() {
		logger.Debug().Str("staticDistDir", p.StaticDistDir).Msg("serving static directory")
	} else {
		logger.Debug().Strs("urls", p.URLs).Msg("target urls")
	}
	logger.Info().
		Int("urls", len(p.URLs)).
		Str("staticDistDir", p.StaticDistDir).
		Bool("canUpload", p.CanUpload).
		Bool("server", p.HasServer()).
		Str("logLevel", p.LogLevel).
		Msg("resolved execution plan")

	if cli.settings.GetBool("json") {
		data, err := p.Redacted().ToJSON()
		if err != nil {
			return fmt.Errorf("cannot serialize plan: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	if planFile := cli.settings.GetString("plan-file"); planFile != "" {
		path := cli.resolvePath(planFile)
		if err := p.WriteToFile(path); err != nil {
			return fmt.Errorf("cannot write plan: %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("wrote plan file")
	}

	if outputPath, ok := inputs.Lookup(in.Env, workflow.OutputEnvVar); ok && outputPath != "" {
		if err := workflow.WriteOutputs(outputPath, planOutputs(p)); err != nil {
			return err
		}
	}

	return nil
}

// planOutputs exposes the plan as step outputs for later workflow steps.
func planOutputs(p plan.ExecutionPlan) []workflow.Output {
	runs := ""
	if p.NumberOfRuns != nil {
		runs = strconv.Itoa(*p.NumberOfRuns)
	}
	return []workflow.Output{
		{Name: "urls", Value: strings.Join(p.URLs, "\n")},
		{Name: "static-dist-dir", Value: p.StaticDistDir},
		{Name: "can-upload", Value: strconv.FormatBool(p.CanUpload)},
		{Name: "log-level", Value: p.LogLevel},
		{Name: "runs", Value: runs},
	}
}
