package logger

// LoggingConfig controls where logweave's own diagnostics go.
// Without a file they go to stderr, keeping stdout free for reports.
// LoggingConfig 控制 logweave 自身诊断日志的去向；未配置文件时写到 stderr。
type LoggingConfig struct {
	// Enabled turns on the rotated log file at Path.
	// Enabled 启用 Path 处的轮转日志文件。
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	// Format: "console" (default) or "json"
	// Format: "console"（默认）或 "json"
	Format string `yaml:"format"`
	Path   string `yaml:"path"`

	// Rotation, passed to lumberjack: size in MB, age in days.
	// 轮转参数（传给 lumberjack）：大小单位 MB，保留时间单位天。
	MaxSize    int  `yaml:"max_size"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"`
	Compress   bool `yaml:"compress"`
}

// Encoding formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)
