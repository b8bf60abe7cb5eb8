package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lhci-action/internal/assertion"
	"lhci-action/internal/matcher"
)

func (cli *CLI) newAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Print assertion results as problem-matcher lines",
		Long: `Activates the problem matcher, prints one line per failed assertion in the
results artifact and deactivates the matcher again.

A missing results artifact produces no diagnostics and succeeds.
An unreadable or malformed artifact fails the step after the matcher is
deactivated.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: cli.runAnnotate,
	}

	cmd.Flags().String("results", assertion.DefaultResultsPath, "Assertion results artifact written by lhci assert")
	cmd.Flags().String("matcher", matcher.DefaultPath, "Problem matcher definition file")

	return cmd
}

func (cli *CLI) runAnnotate(cmd *cobra.Command, _ []string) error {
	logger := zerolog.Ctx(cmd.Context())

	resultsPath := cli.resolvePath(cli.settings.GetString("results"))
	matcherPath := cli.resolvePath(cli.settings.GetString("matcher"))

	emitter := matcher.NewEmitter(cmd.OutOrStdout(), matcherPath)
	summary, err := emitter.Emit(func() ([]assertion.Group, error) {
		groups, err := assertion.LoadGroups(resultsPath)
		if errors.Is(err, assertion.ErrResultsNotFound) {
			logger.Warn().Str("path", resultsPath).Msg("no assertion results, nothing to annotate")
			return nil, nil
		}
		return groups, err
	})
	if err != nil {
		return fmt.Errorf("cannot annotate assertion results: %w", err)
	}

	logger.Info().
		Int("urls", summary.URLs).
		Int("errors", summary.Errors).
		Int("warnings", summary.Warnings).
		Msg("annotated assertion results")
	return nil
}
