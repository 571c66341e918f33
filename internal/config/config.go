package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/livp123/logweave/internal/runtime"
	"github.com/livp123/logweave/internal/utils/fileutil"
	"github.com/livp123/logweave/internal/utils/logger"
	lwerrors "github.com/livp123/logweave/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigMu protects concurrent access to the configuration file.
// ConfigMu 保护对配置文件的并发访问。
var ConfigMu sync.RWMutex

// DefaultGlobalConfig returns the configuration used before a file is applied.
// DefaultGlobalConfig 返回应用配置文件之前使用的默认配置。
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Format:     logger.FormatConsole,
			Path:       "logweave.log",
			MaxSize:    10, // 10MB
			MaxBackups: 3,
			MaxAge:     30, // 30 days
			Compress:   true,
		},
		Report: ReportConfig{
			Format:       ReportText,
			DefaultTitle: DefaultSessionTitle,
		},
	}
}

// LoadGlobalConfig reads a YAML configuration file on top of the defaults.
// Source paths are resolved relative to the configuration file directory.
// LoadGlobalConfig 在默认值之上读取 YAML 配置文件。数据源路径相对于配置文件目录解析。
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	ConfigMu.RLock()
	defer ConfigMu.RUnlock()

	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", lwerrors.ErrConfigNotFound, safePath)
		}
		return nil, err
	}

	cfg, err := ParseGlobalConfig(data)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(safePath)
	for i := range cfg.Sources {
		p := cfg.Sources[i].Path
		if p != "" && !filepath.IsAbs(p) {
			cfg.Sources[i].Path = filepath.Join(baseDir, p)
		}
	}
	return cfg, nil
}

// ParseGlobalConfig decodes configuration bytes and fills defaults for empty fields.
// ParseGlobalConfig 解码配置字节并为空字段填充默认值。
func ParseGlobalConfig(data []byte) (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", lwerrors.ErrConfigInvalid, err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *GlobalConfig) normalize() {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "" {
		c.Report.Format = ReportText
	}
	if c.Report.DefaultTitle == "" {
		c.Report.DefaultTitle = DefaultSessionTitle
	}
	for i := range c.Sources {
		s := &c.Sources[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Format = strings.ToLower(strings.TrimSpace(s.Format))
		if s.Format == "" {
			s.Format = FormatText
		}
		if s.Format == FormatText && s.Pattern == "" {
			s.Pattern = DefaultTextPattern
		}
	}
	for i := range c.Rules {
		c.Rules[i].Source = strings.TrimSpace(c.Rules[i].Source)
	}
}

// SaveGlobalConfig writes the configuration atomically.
// SaveGlobalConfig 以原子方式写入配置。
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	ConfigMu.Lock()
	defer ConfigMu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0600)
}

// WriteTemplate writes DefaultConfigTemplate to path, refusing to overwrite.
// WriteTemplate 将 DefaultConfigTemplate 写入 path，拒绝覆盖已有文件。
func WriteTemplate(path string) error {
	if fileutil.Exists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return fileutil.AtomicWriteFile(path, []byte(DefaultConfigTemplate), 0644)
}

// GetConfigPath resolves the configuration file path.
// It prioritizes the CLI flag (runtime.ConfigPath) over the default.
// GetConfigPath 解析配置文件路径。优先使用 CLI 标志 (runtime.ConfigPath)，其次是默认值。
func GetConfigPath() string {
	if runtime.ConfigPath != "" {
		return runtime.ConfigPath
	}
	return DefaultConfigPath
}
