package config

import (
	"strconv"

	"github.com/livp123/logweave/internal/utils/logger"
)

// GlobalConfig is the root of the logweave configuration file.
// GlobalConfig 是 logweave 配置文件的根结构。
type GlobalConfig struct {
	Logging logger.LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig        `yaml:"metrics"`
	Sources []SourceConfig       `yaml:"sources"`
	Report  ReportConfig         `yaml:"report"`
	Rules   []RuleConfig         `yaml:"rules"`
}

// MetricsConfig controls run metrics.
// MetricsConfig 控制运行指标。
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Textfile: path of a Prometheus textfile written after each merge
	// Textfile: 每次合并后写入的 Prometheus 文本文件路径
	Textfile string `yaml:"textfile"`
}

// SourceConfig declares a named, time-ordered log source.
// SourceConfig 声明一个有名称且按时间排序的日志源。
type SourceConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	// Format: "text" (default) or "jsonl"
	// Format: "text"（默认）或 "jsonl"
	Format string `yaml:"format"`
	// Pattern: regexp with named groups ts, tag, msg (text format only)
	// Pattern: 带有 ts、tag、msg 命名分组的正则（仅 text 格式）
	Pattern string `yaml:"pattern"`
}

// ReportConfig controls how the session tree is rendered.
// ReportConfig 控制会话树的渲染方式。
type ReportConfig struct {
	// Format: "text" (default), "json" or "yaml"
	Format string `yaml:"format"`
	// Output: file path; empty means stdout
	// Output: 文件路径；为空时输出到 stdout
	Output       string `yaml:"output"`
	DefaultTitle string `yaml:"default_title"`
}

// RuleConfig is one declarative routing rule. Unset patterns match anything.
// RuleConfig 是一条声明式路由规则。未设置的模式匹配任意内容。
type RuleConfig struct {
	// ID: optional name used in logs
	// ID: 可选名称，用于日志
	ID     string `yaml:"id,omitempty"`
	Source string `yaml:"source"`
	// Tag / Message / Raw: regular expressions, unanchored
	// Tag / Message / Raw: 正则表达式（非锚定）
	Tag     string `yaml:"tag,omitempty"`
	Message string `yaml:"message,omitempty"`
	Raw     string `yaml:"raw,omitempty"`
	// When: optional expr-lang boolean expression over the line
	// When: 可选的 expr-lang 布尔表达式
	When       string `yaml:"when,omitempty"`
	IgnoreCase bool   `yaml:"ignore_case,omitempty"`
	// NewSession: a match starts a new session before the line is appended
	// NewSession: 匹配时在追加该行之前开启新会话
	NewSession   bool   `yaml:"new_session,omitempty"`
	SessionTitle string `yaml:"session_title,omitempty"`
}

// IsCatchAll reports whether the rule has no condition at all.
// IsCatchAll 报告规则是否没有任何条件。
func (r RuleConfig) IsCatchAll() bool {
	return r.Tag == "" && r.Message == "" && r.Raw == "" && r.When == ""
}

// Name returns the rule ID, or a positional name when no ID is set.
func (r RuleConfig) Name(index int) string {
	if r.ID != "" {
		return r.ID
	}
	return "rule#" + strconv.Itoa(index)
}

// DefaultConfigTemplate is written by "logweave init". It documents every section.
// DefaultConfigTemplate 由 "logweave init" 写出，记录了每个配置段。
const DefaultConfigTemplate = `# logweave configuration / logweave 配置文件

# Logging / 日志
logging:
  # Write logs to a rotated file instead of stderr.
  # 写入轮转日志文件而不是 stderr。
  enabled: false
  level: info
  # console or json / console 或 json
  format: console
  path: "logweave.log"
  max_size: 10
  max_backups: 3
  max_age: 30
  compress: true

# Run metrics / 运行指标
metrics:
  enabled: false
  # Prometheus textfile written after every merge.
  # 每次合并后写入的 Prometheus 文本文件。
  textfile: ""

# Sources: pre-sorted log streams. The order of this list breaks timestamp ties.
# 数据源：已排序的日志流。时间戳相同时按本列表顺序排列。
sources:
  - name: system
    path: "dump/system.log"
    format: text
  - name: event
    path: "dump/event.log"
    format: text

# Report / 报告
report:
  # text, json or yaml / text、json 或 yaml
  format: text
  # Empty writes to stdout. / 为空时输出到 stdout。
  output: ""
  default_title: "Default"

# Rules: evaluated top-down per source, first match wins.
# 规则：按数据源自上而下评估，首个匹配生效。
rules:
  - source: system
  - source: event
    message: "boot_progress_start"
    new_session: true
    session_title: "Boot at {timestamp}"
  - source: event
`
