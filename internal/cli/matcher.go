package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lhci-action/internal/matcher"
)

func (cli *CLI) newMatcherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matcher",
		Short: "Write the problem matcher definition used by annotate",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  cli.runMatcher,
	}

	cmd.Flags().String("matcher", matcher.DefaultPath, "Where to write the definition")

	return cmd
}

func (cli *CLI) runMatcher(cmd *cobra.Command, _ []string) error {
	path := cli.resolvePath(cli.settings.GetString("matcher"))
	if err := matcher.DefaultDefinition().WriteToFile(path); err != nil {
		return fmt.Errorf("cannot write matcher: %s: %w", path, err)
	}
	zerolog.Ctx(cmd.Context()).Info().Str("path", path).Msg("wrote problem matcher")
	return nil
}
