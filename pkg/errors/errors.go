package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNotFound  = errors.New("config not found")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrInvalidPattern  = errors.New("invalid pattern")
	ErrUnknownSource   = errors.New("unknown source")
	ErrMissingSource   = errors.New("missing or empty source")
	ErrUnsortedSource  = errors.New("source is not sorted by timestamp")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrFileNotFound    = errors.New("file not found")
	ErrIterationLimit  = errors.New("merge iteration limit exceeded")
	ErrSessionClosed   = errors.New("session is finalized")
	ErrCanceled        = errors.New("operation canceled")
)

// NewConfigError reports an invalid configuration field.
// NewConfigError 报告无效的配置字段。
func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

// NewPatternError reports a rule pattern that failed to compile.
// It wraps both ErrConfigInvalid and ErrInvalidPattern so callers can match either.
// NewPatternError 报告编译失败的规则模式。
func NewPatternError(field, pattern string, reason error) error {
	return fmt.Errorf("%w: %w: %s=%q: %v", ErrConfigInvalid, ErrInvalidPattern, field, pattern, reason)
}

// NewUnknownSourceError reports a rule that references a source nobody can resolve.
// NewUnknownSourceError 报告引用了无法解析的数据源的规则。
func NewUnknownSourceError(name string) error {
	return fmt.Errorf("%w: %w: %s", ErrConfigInvalid, ErrUnknownSource, name)
}

// NewMissingSourceError reports a source that resolved to zero lines.
func NewMissingSourceError(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingSource, name)
}

// NewUnsortedSourceError reports a source whose timestamps go backwards.
// NewUnsortedSourceError 报告时间戳倒退的数据源。
func NewUnsortedSourceError(name string, line int, prev, cur int64) error {
	return fmt.Errorf("%w: %s line %d: %d < %d", ErrUnsortedSource, name, line, cur, prev)
}

func NewFormatError(format string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, format)
}

// NewFilePathError reports a path that exists but cannot be read as a log file.
// NewFilePathError 报告存在但无法作为日志文件读取的路径。
func NewFilePathError(path, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidFilePath, path, reason)
}

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, reason)
}

// NewIterationLimitError signals a cursor that never reported exhaustion.
// This is an implementation defect, not a data error.
// NewIterationLimitError 表示游标从未报告耗尽，属于实现缺陷而非数据错误。
func NewIterationLimitError(limit int) error {
	return fmt.Errorf("%w: %d", ErrIterationLimit, limit)
}
