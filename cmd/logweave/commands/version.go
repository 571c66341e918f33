package commands

import (
	"fmt"

	"github.com/livp123/logweave/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// Short: 显示版本信息
	Long: `Show the current version of logweave`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logweave %s\n", version.Version)
	},
}
