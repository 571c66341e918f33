package commands

import (
	"fmt"

	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/utils/logger"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented configuration template",
	// Short: 写出带注释的配置模板
	Long: `Write a commented configuration template to path (default: the --config path).
Existing files are never overwritten.
将带注释的配置模板写入 path（默认为 --config 路径），不会覆盖已有文件。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteTemplate(path); err != nil {
			return err
		}
		logger.Get(cmd.Context()).Infof("[INIT] Configuration template written to %s", path)
		fmt.Fprintf(cmd.OutOrStdout(), "[OK] Configuration written to %s\n", path)
		return nil
	},
}
