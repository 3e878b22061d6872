package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verbose bool

// NewRootCmd returns the root command for the Lookout CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lookout",
		Short:         "Lookout CLI: ask questions from the terminal",
		Long:          "Lookout CLI runs the query engine locally against the configured tool server and LLM, and prints the answer.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			fmt.Fprintln(cmd.OutOrStdout(), "\nTip: run 'lookout ask \"how does TCP congestion control work\"'.")
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
