package correlate

// LogLine is one pre-parsed log entry. The source store owns it; the engine
// only passes pointers into the store's slices.
// LogLine 是一条预解析的日志条目，由数据源存储持有；引擎只传递指针。
type LogLine struct {
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Tag       string `json:"tag" yaml:"tag"`
	Message   string `json:"message" yaml:"message"`
	Raw       string `json:"raw" yaml:"raw"`
	// ID is a stable identity used for deep links.
	// ID 是用于深度链接的稳定标识。
	ID string `json:"id" yaml:"id"`
}

// SourceResolver supplies the pre-sorted lines of a named source.
// ok is false when no source with that name exists; an existing source may be empty.
// SourceResolver 提供已排序的命名数据源行。
type SourceResolver interface {
	Lines(name string) (lines []LogLine, ok bool)
}

// Match is a line paired with the rule that routed it.
type Match struct {
	Source string
	Line   *LogLine
	Rule   *Rule
}
