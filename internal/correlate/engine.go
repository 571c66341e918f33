package correlate

import (
	"context"
	"sort"
	"time"

	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/utils/logger"
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// Recorder receives run statistics. internal/metrics provides the Prometheus one.
// Recorder 接收运行统计信息。
type Recorder interface {
	ObserveSource(source string, lines, scanned, delivered int)
	ObserveEmptySource(source string)
	ObserveSessions(opened int)
	ObserveDuration(d time.Duration)
}

// SourceStats summarises one cursor after a run.
// SourceStats 汇总一次运行后单个游标的情况。
type SourceStats struct {
	Name      string `json:"name" yaml:"name"`
	Lines     int    `json:"lines" yaml:"lines"`
	Scanned   int    `json:"scanned" yaml:"scanned"`
	Delivered int    `json:"delivered" yaml:"delivered"`
}

// Result is the output of a merge: the session tree plus diagnostics.
// Result 是合并的输出：会话树及诊断信息。
type Result struct {
	Sessions []*Session
	Sources  []SourceStats
	// Warnings holds recoverable problems such as empty sources.
	// Warnings 保存可恢复的问题，例如空数据源。
	Warnings []error
	Duration time.Duration
}

// Lines returns the number of input lines across the merged sources.
// Declared sources that no rule references are not counted.
// Lines 返回参与合并的数据源输入行总数，不计未被规则引用的数据源。
func (r *Result) Lines() int {
	n := 0
	for _, s := range r.Sources {
		n += s.Lines
	}
	return n
}

// Delivered returns the total number of delivered lines.
func (r *Result) Delivered() int {
	n := 0
	for _, s := range r.Sessions {
		n += s.Len()
	}
	return n
}

// SourceOrder is implemented by resolvers that know the declared order of
// their sources. That order breaks timestamp ties.
// SourceOrder 由知道数据源声明顺序的解析器实现，该顺序用于打破时间戳平局。
type SourceOrder interface {
	Names() []string
}

// orderGroups puts groups in declared source order. Sources the resolver does
// not list follow, in first rule reference order.
// orderGroups 按声明顺序排列规则组，未声明的数据源按首次被规则引用的顺序排在其后。
func orderGroups(groups []*RuleGroup, resolver SourceResolver) []*RuleGroup {
	order, ok := resolver.(SourceOrder)
	if !ok {
		return groups
	}
	names := order.Names()
	rank := make(map[string]int, len(names))
	for i, name := range names {
		rank[name] = i
	}
	rankOf := func(g *RuleGroup) int {
		if r, ok := rank[g.Source]; ok {
			return r
		}
		return len(names)
	}

	sorted := append([]*RuleGroup(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankOf(sorted[i]) < rankOf(sorted[j])
	})
	return sorted
}

// Engine compiles rules and runs merges against a source resolver.
// Engine 编译规则并基于数据源解析器执行合并。
type Engine struct {
	resolver     SourceResolver
	defaultTitle string
	recorder     Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaultTitle sets the title of the session open before any rule opens one.
func WithDefaultTitle(title string) Option {
	return func(e *Engine) {
		if title != "" {
			e.defaultTitle = title
		}
	}
}

// WithRecorder attaches a statistics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates an Engine.
func New(resolver SourceResolver, opts ...Option) *Engine {
	e := &Engine{
		resolver:     resolver,
		defaultTitle: config.DefaultSessionTitle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge compiles rules, builds one cursor per referenced source in source
// order and runs the scheduler to completion. Config errors abort before any line is delivered.
// Merge 编译规则，为每个被引用的数据源创建游标，并运行调度器直至完成。
func (e *Engine) Merge(ctx context.Context, rules []config.RuleConfig) (*Result, error) {
	log := logger.Get(ctx)
	start := time.Now()

	groups, err := Compile(rules, e.resolver)
	if err != nil {
		log.Errorf("[ERROR] Rule compilation failed: %v", err)
		return nil, err
	}
	groups = orderGroups(groups, e.resolver)

	result := &Result{}
	cursors := make([]*Cursor, 0, len(groups))
	streams := make([]Stream, 0, len(groups))
	for _, g := range groups {
		lines, _ := e.resolver.Lines(g.Source)
		if len(lines) == 0 {
			warn := lwerrors.NewMissingSourceError(g.Source)
			log.Warnf("[WARN]  %v", warn)
			result.Warnings = append(result.Warnings, warn)
			if e.recorder != nil {
				e.recorder.ObserveEmptySource(g.Source)
			}
		}
		c := NewCursor(g, lines)
		cursors = append(cursors, c)
		streams = append(streams, c)
		log.Debugf("[MERGE] Source %s: %d lines, %d rules", g.Source, len(lines), len(g.Rules))
	}

	sink := NewSink(e.defaultTitle)
	run := NewRun(streams, sink)
	if err := run.Execute(ctx); err != nil {
		log.Errorf("[ERROR] Merge aborted: %v", err)
		return nil, err
	}
	sink.Finish()

	for i, c := range cursors {
		stats := SourceStats{
			Name:      c.Source(),
			Lines:     c.Len(),
			Scanned:   c.Scanned(),
			Delivered: run.Delivered(i),
		}
		result.Sources = append(result.Sources, stats)
		if e.recorder != nil {
			e.recorder.ObserveSource(stats.Name, stats.Lines, stats.Scanned, stats.Delivered)
		}
	}
	result.Sessions = sink.Sessions()
	result.Duration = time.Since(start)

	if e.recorder != nil {
		e.recorder.ObserveSessions(run.SessionsOpened())
		e.recorder.ObserveDuration(result.Duration)
	}
	log.Infof("[MERGE] Delivered %d lines into %d sessions from %d sources in %v",
		result.Delivered(), len(result.Sessions), len(cursors), result.Duration)
	return result, nil
}
