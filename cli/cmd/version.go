package cmd

import (
	"fmt"

	fwv "frameworks/pkg/version"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := fwv.GetInfo()
			info.ComponentName = "lookout-cli"
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
