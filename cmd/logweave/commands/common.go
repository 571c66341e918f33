package commands

import (
	"fmt"
	"io"

	"github.com/livp123/logweave/internal/config"
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// loadConfig loads the configuration selected by --config.
// loadConfig 加载 --config 指定的配置。
func loadConfig() (*config.GlobalConfig, error) {
	path := config.GetConfigPath()
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// checkConfig runs the validator, prints its findings to w and fails on errors.
// checkConfig 运行验证器，将结果打印到 w，出现错误时返回失败。
func checkConfig(w io.Writer, cfg *config.GlobalConfig) error {
	result := config.NewConfigValidator().Validate(cfg)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "[ERROR] %s: %s", e.Field, e.Message)
		if e.Value != nil {
			fmt.Fprintf(w, " (%v)", e.Value)
		}
		fmt.Fprintln(w)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "[WARN]  %s: %s", warn.Field, warn.Message)
		if warn.Value != nil {
			fmt.Fprintf(w, " (%v)", warn.Value)
		}
		fmt.Fprintln(w)
	}
	if !result.Valid {
		return fmt.Errorf("%w: %d error(s)", lwerrors.ErrConfigInvalid, len(result.Errors))
	}
	return nil
}
