package correlate

import (
	"context"
	"testing"

	lwerrors "github.com/livp123/logweave/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stuckStream never reports exhaustion, simulating a broken Stream
// stuckStream 从不报告耗尽，模拟有缺陷的 Stream
type stuckStream struct {
	line LogLine
	rule *Rule
}

func (s *stuckStream) Source() string { return "stuck" }
func (s *stuckStream) Len() int       { return 3 }
func (s *stuckStream) Consume()       {}
func (s *stuckStream) Peek() (*Match, bool) {
	return &Match{Source: "stuck", Line: &s.line, Rule: s.rule}, true
}

// TestRun_IterationLimit tests the defensive bound
// TestRun_IterationLimit 测试防御性上限
func TestRun_IterationLimit(t *testing.T) {
	stream := &stuckStream{line: LogLine{Timestamp: 1, ID: "s"}, rule: &Rule{ID: "r"}}
	sink := NewSink("Default")
	run := NewRun([]Stream{stream}, sink)

	err := run.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, lwerrors.ErrIterationLimit)
	assert.Equal(t, 3, sink.Active().Len(), "exactly the bound is delivered before aborting")
}

// TestRun_Canceled tests a cancelled context stops the run
// TestRun_Canceled 测试取消的上下文会停止运行
func TestRun_Canceled(t *testing.T) {
	lines := mkLines("system", 1, "a", 2, "b")
	c := NewCursor(groupFor(t, "system", ruleAll("system")), lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRun([]Stream{c}, NewSink("Default")).Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, lwerrors.ErrCanceled)
}

// TestRun_NoStreams tests the trivial terminal state
// TestRun_NoStreams 测试平凡终止状态
func TestRun_NoStreams(t *testing.T) {
	sink := NewSink("Default")
	require.NoError(t, NewRun(nil, sink).Execute(context.Background()))
	require.Len(t, sink.Sessions(), 1)
	assert.Equal(t, 0, sink.Active().Len())
}

// TestRun_TieBreakByStreamOrder tests equal timestamps
// TestRun_TieBreakByStreamOrder 测试相同时间戳的处理
func TestRun_TieBreakByStreamOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		first := NewCursor(groupFor(t, "radio", ruleAll("radio")), mkLines("radio", 50, "R"))
		second := NewCursor(groupFor(t, "main", ruleAll("main")), mkLines("main", 50, "M"))
		sink := NewSink("Default")
		run := NewRun([]Stream{first, second}, sink)
		require.NoError(t, run.Execute(context.Background()))

		entries := sink.Active().Entries
		require.Len(t, entries, 2)
		assert.Equal(t, "radio", entries[0].Source)
		assert.Equal(t, "main", entries[1].Source)
		assert.Equal(t, 1, run.Delivered(0))
		assert.Equal(t, 1, run.Delivered(1))
	}
}
