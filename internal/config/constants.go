package config

const (
	// DefaultConfigPath is the configuration file used when no --config flag is given.
	// DefaultConfigPath 是未提供 --config 标志时使用的配置文件。
	DefaultConfigPath = "logweave.yaml"

	// Source formats / 数据源格式
	FormatText  = "text"
	FormatJSONL = "jsonl"

	// Report formats / 报告格式
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"

	// DefaultTextPattern splits "<timestamp> <tag>: <message>" lines.
	// The named groups ts, tag and msg are required in custom patterns too.
	// DefaultTextPattern 拆分 "<时间戳> <标签>: <消息>" 格式的行。
	DefaultTextPattern = `^(?P<ts>-?\d+)\s+(?P<tag>[^:\s]+):\s?(?P<msg>.*)$`

	// DefaultSessionTitle names the session that is open before any rule opens one.
	// DefaultSessionTitle 是任何规则开启新会话之前的默认会话标题。
	DefaultSessionTitle = "Default"
)
