package correlate

import (
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
)

// Env is the environment a rule's "when" expression runs against.
// Env 是规则 "when" 表达式的执行环境。
type Env struct {
	Timestamp int64
	Tag       string
	Message   string
	Raw       string
	Source    string
	ID        string
}

var envPool = sync.Pool{
	New: func() interface{} {
		return &Env{}
	},
}

var (
	regexCache sync.Map
	regexCount int64
)

// maxCachedRegex bounds regexCache; patterns beyond it are compiled per call.
const maxCachedRegex = 1000

// Reset resets the environment for reuse.
// Reset 重置环境以便复用。
func (e *Env) Reset() {
	*e = Env{}
}

func (e *Env) load(source string, line *LogLine) {
	e.Timestamp = line.Timestamp
	e.Tag = line.Tag
	e.Message = line.Message
	e.Raw = line.Raw
	e.Source = source
	e.ID = line.ID
}

// Contains reports whether haystack contains needle.
func (e *Env) Contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// IContains is the case-insensitive Contains.
// IContains 是不区分大小写的 Contains。
func (e *Env) IContains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Match checks if s matches the given regular expression. Invalid patterns never match.
// Match 检查 s 是否匹配给定的正则表达式；无效模式永不匹配。
func (e *Env) Match(s, pattern string) bool {
	if v, ok := regexCache.Load(pattern); ok {
		return v.(*regexp.Regexp).MatchString(s)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	if atomic.LoadInt64(&regexCount) < maxCachedRegex {
		regexCache.Store(pattern, re)
		atomic.AddInt64(&regexCount, 1)
	}
	return re.MatchString(s)
}

// Fields splits the message on whitespace.
func (e *Env) Fields() []string {
	return strings.Fields(e.Message)
}

// Get returns the value of key=value or key: value inside the message.
// Get 返回消息中 key=value 或 key: value 的值。
func (e *Env) Get(key string) string {
	msg := e.Message
	idx := strings.Index(msg, key+"=")
	if idx == -1 {
		idx = strings.Index(msg, key+":")
		if idx == -1 {
			return ""
		}
	}
	rest := strings.TrimLeft(msg[idx+len(key)+1:], " ")
	if rest == "" {
		return ""
	}
	if rest[0] == '"' {
		end := strings.IndexByte(rest[1:], '"')
		if end == -1 {
			return rest[1:]
		}
		return rest[1 : end+1]
	}
	if end := strings.IndexByte(rest, ' '); end != -1 {
		return rest[:end]
	}
	return rest
}
