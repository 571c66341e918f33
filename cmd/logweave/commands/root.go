package commands

import (
	"fmt"
	"os"

	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/runtime"
	"github.com/livp123/logweave/internal/utils/logger"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "logweave",
	Short: "Merge time-ordered log streams into sessions",
	// Short: 将按时间排序的日志流合并为会话
	Long: `logweave merges several pre-sorted log streams into one timeline.
Declarative rules decide which lines are kept and where new sessions begin.
logweave 将多个已排序的日志流合并为一条时间线。
声明式规则决定保留哪些行以及新会话从何处开始。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		logCfg := logger.LoggingConfig{Level: "info"}
		if globalCfg, err := config.LoadGlobalConfig(config.GetConfigPath()); err == nil {
			logCfg = globalCfg.Logging
		}
		if runtime.LogLevel != "" {
			logCfg.Level = runtime.LogLevel
		}
		logger.Init(logCfg)

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
		cmd.SetContext(ctx)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	// Config file path
	// 配置文件路径
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))

	// Log level override
	// 日志级别覆盖
	RootCmd.PersistentFlags().StringVar(&runtime.LogLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	RootCmd.AddCommand(mergeCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.CompletionOptions.DisableDescriptions = true
}

// Execute runs the root command and exits non-zero on error.
// Execute 运行根命令，出错时以非零状态退出。
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
