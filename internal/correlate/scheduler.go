package correlate

import (
	"context"
	"fmt"

	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// ctxCheckInterval is how many deliveries pass between context checks.
const ctxCheckInterval = 1024

// Run is one merge over a fixed set of streams into a sink.
// Streams are kept in source order; that order breaks timestamp ties.
// Run 是一次将固定数据流合并到 Sink 的过程。数据流按注册顺序保存，用于打破时间戳平局。
type Run struct {
	streams   []Stream
	sink      *Sink
	limit     int
	delivered []int
	sessions  int
}

// NewRun creates a run. The delivery limit is the total number of input lines.
// NewRun 创建一次运行，投递上限为输入行总数。
func NewRun(streams []Stream, sink *Sink) *Run {
	limit := 0
	for _, s := range streams {
		limit += s.Len()
	}
	return &Run{
		streams:   streams,
		sink:      sink,
		limit:     limit,
		delivered: make([]int, len(streams)),
	}
}

// next returns the index of the stream holding the globally earliest match.
// Strict less-than keeps the earlier stream on equal timestamps.
func (r *Run) next() (int, *Match) {
	best := -1
	var bestMatch *Match
	for i, s := range r.streams {
		m, ok := s.Peek()
		if !ok {
			continue
		}
		if best < 0 || m.Line.Timestamp < bestMatch.Line.Timestamp {
			best, bestMatch = i, m
		}
	}
	return best, bestMatch
}

// Execute delivers matches until no stream has one left.
// Exceeding the delivery limit means a stream never reported exhaustion.
// Execute 持续投递匹配项，直到所有数据流都没有剩余匹配。
func (r *Run) Execute(ctx context.Context) error {
	total := 0
	for {
		idx, m := r.next()
		if idx < 0 {
			return nil
		}
		if total >= r.limit {
			return lwerrors.NewIterationLimitError(r.limit)
		}
		if total%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %v", lwerrors.ErrCanceled, err)
			}
		}

		if m.Rule.NewSession {
			if _, err := r.sink.NewSession(RenderTitle(m)); err != nil {
				return err
			}
			r.sessions++
		}
		if err := r.sink.Append(LineRef{ID: m.Line.ID, Source: m.Source, Line: m.Line}); err != nil {
			return err
		}

		r.streams[idx].Consume()
		r.delivered[idx]++
		total++
	}
}

// Delivered returns the number of lines delivered from the i-th stream.
func (r *Run) Delivered(i int) int {
	return r.delivered[i]
}

// SessionsOpened returns how many sessions rules opened during the run.
func (r *Run) SessionsOpened() int {
	return r.sessions
}
