package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/correlate"
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// lineNamespace scopes line ids so they are stable across runs.
var lineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("logweave:line"))

// LineID derives the stable identity of the n-th line (1-based) of a source.
// LineID 生成数据源第 n 行（从 1 开始）的稳定标识。
func LineID(source string, n int) string {
	return uuid.NewSHA1(lineNamespace, []byte(source+":"+strconv.Itoa(n))).String()
}

// Parser turns one raw line into a LogLine. ok is false for lines to skip.
// Parser 将一行原始文本转换为 LogLine，ok 为 false 表示跳过该行。
type Parser interface {
	Parse(text string) (line correlate.LogLine, ok bool)
}

// NewParser returns the parser for a source's configured format.
func NewParser(cfg config.SourceConfig) (Parser, error) {
	switch cfg.Format {
	case config.FormatText, "":
		pattern := cfg.Pattern
		if pattern == "" {
			pattern = config.DefaultTextPattern
		}
		return NewTextParser(pattern)
	case config.FormatJSONL:
		return JSONLParser{}, nil
	default:
		return nil, lwerrors.NewFormatError(cfg.Format)
	}
}

// TextParser extracts ts, tag and msg named groups with a regular expression.
type TextParser struct {
	re                    *regexp.Regexp
	tsIdx, tagIdx, msgIdx int
}

// NewTextParser compiles pattern, which must define the groups ts, tag and msg.
// NewTextParser 编译 pattern，其必须定义 ts、tag、msg 命名分组。
func NewTextParser(pattern string) (*TextParser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, lwerrors.NewPatternError("pattern", pattern, err)
	}
	p := &TextParser{
		re:     re,
		tsIdx:  re.SubexpIndex("ts"),
		tagIdx: re.SubexpIndex("tag"),
		msgIdx: re.SubexpIndex("msg"),
	}
	if p.tsIdx < 0 || p.tagIdx < 0 || p.msgIdx < 0 {
		return nil, lwerrors.NewPatternError("pattern", pattern, fmt.Errorf("named groups ts, tag and msg are required"))
	}
	return p, nil
}

// Parse implements Parser.
func (p *TextParser) Parse(text string) (correlate.LogLine, bool) {
	sub := p.re.FindStringSubmatch(text)
	if sub == nil {
		return correlate.LogLine{}, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(sub[p.tsIdx]), 10, 64)
	if err != nil {
		return correlate.LogLine{}, false
	}
	return correlate.LogLine{
		Timestamp: ts,
		Tag:       sub[p.tagIdx],
		Message:   sub[p.msgIdx],
		Raw:       text,
	}, true
}

// jsonRecord is the JSON lines schema: {"ts":1,"tag":"x","msg":"y"}.
type jsonRecord struct {
	TS  *int64 `json:"ts"`
	Tag string `json:"tag"`
	Msg string `json:"msg"`
}

// JSONLParser parses one JSON object per line.
// JSONLParser 每行解析一个 JSON 对象。
type JSONLParser struct{}

// Parse implements Parser. Records without "ts" are skipped.
func (JSONLParser) Parse(text string) (correlate.LogLine, bool) {
	var rec jsonRecord
	if err := sonic.UnmarshalString(text, &rec); err != nil || rec.TS == nil {
		return correlate.LogLine{}, false
	}
	return correlate.LogLine{
		Timestamp: *rec.TS,
		Tag:       rec.Tag,
		Message:   rec.Msg,
		Raw:       text,
	}, true
}
