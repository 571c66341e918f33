package commands

import (
	"fmt"

	"github.com/livp123/logweave/internal/correlate"
	"github.com/livp123/logweave/internal/source"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and compile rules",
	// Short: 验证配置并编译规则
	Long: `Validate the configuration file and compile every rule without reading any log.
Exits non-zero when the configuration cannot be merged.
验证配置文件并编译所有规则，不读取任何日志。配置无法用于合并时以非零状态退出。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := checkConfig(out, cfg); err != nil {
			return err
		}

		// Declared sources resolve to empty streams so only rule structure is checked.
		// 已声明的数据源解析为空流，因此只检查规则结构。
		store := source.NewStore()
		for _, s := range cfg.Sources {
			if err := store.Add(s.Name, nil); err != nil {
				return err
			}
		}
		groups, err := correlate.Compile(cfg.Rules, store)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "[OK] Configuration valid: %d sources, %d rules in %d groups\n",
			len(cfg.Sources), len(cfg.Rules), len(groups))
		return nil
	},
}
