// Package commands implements the rt6 command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	sess := newSession()

	rootCmd := &cobra.Command{
		Use:     "rt6",
		Short:   "Inflation restatement (RT6) of financial statements",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&sess.repoDir, "repo", ".", "workspace directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newBalancesCommand(sess),
		newTreeCommand(sess),
		newMonetaryCommand(sess),
		newOverrideCommand(sess),
		newAnalyzeCommand(sess),
		newPartidasCommand(sess),
		newIndicesCommand(sess),
		newReportCommand(sess),
		newLogCommand(sess),
	)

	return rootCmd
}
