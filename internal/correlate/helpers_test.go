package correlate

import (
	"fmt"
	"time"
)

// mapResolver is an in-memory SourceResolver for tests
// mapResolver 是用于测试的内存 SourceResolver
type mapResolver map[string][]LogLine

func (m mapResolver) Lines(name string) ([]LogLine, bool) {
	lines, ok := m[name]
	return lines, ok
}

// orderedResolver also reports a declared source order
// orderedResolver 同时报告数据源的声明顺序
type orderedResolver struct {
	mapResolver
	names []string
}

func (o orderedResolver) Names() []string {
	return o.names
}

// mkLines builds lines from timestamp/message pairs with ids "<source>-<n>"
func mkLines(source string, pairs ...interface{}) []LogLine {
	var lines []LogLine
	for i := 0; i+1 < len(pairs); i += 2 {
		ts := int64(pairs[i].(int))
		msg := pairs[i+1].(string)
		lines = append(lines, LogLine{
			Timestamp: ts,
			Tag:       source,
			Message:   msg,
			Raw:       fmt.Sprintf("%d %s: %s", ts, source, msg),
			ID:        fmt.Sprintf("%s-%d", source, i/2),
		})
	}
	return lines
}

// sessionView flattens a result to titles and "msg@ts" entries for comparisons
type sessionView struct {
	Title   string
	Entries []string
}

func view(sessions []*Session) []sessionView {
	out := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		v := sessionView{Title: s.Title, Entries: []string{}}
		for _, e := range s.Entries {
			v.Entries = append(v.Entries, fmt.Sprintf("%s@%d", e.Line.Message, e.Timestamp()))
		}
		out = append(out, v)
	}
	return out
}

// recorder captures Recorder calls
// recorder 捕获 Recorder 调用
type recorder struct {
	sources  map[string][3]int
	empty    []string
	sessions int
	duration time.Duration
}

func newRecorder() *recorder {
	return &recorder{sources: make(map[string][3]int)}
}

func (r *recorder) ObserveSource(source string, lines, scanned, delivered int) {
	r.sources[source] = [3]int{lines, scanned, delivered}
}

func (r *recorder) ObserveEmptySource(source string) {
	r.empty = append(r.empty, source)
}

func (r *recorder) ObserveSessions(opened int) {
	r.sessions = opened
}

func (r *recorder) ObserveDuration(d time.Duration) {
	r.duration = d
}
