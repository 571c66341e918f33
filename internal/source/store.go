package source

import (
	"sync"

	"github.com/livp123/logweave/internal/correlate"
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// Store holds the materialized lines of every source. It implements
// correlate.SourceResolver. Lines are never mutated after Add.
// Store 保存所有数据源的已物化行，实现 correlate.SourceResolver。
type Store struct {
	mu    sync.RWMutex
	order []string
	lines map[string][]correlate.LogLine
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lines: make(map[string][]correlate.LogLine),
	}
}

// Add registers a source. Lines must be sorted ascending by timestamp;
// the store never re-sorts. Re-adding a name replaces its lines.
// Add 注册一个数据源。行必须按时间戳升序排列，存储不会重新排序。
func (s *Store) Add(name string, lines []correlate.LogLine) error {
	for i := 1; i < len(lines); i++ {
		if lines[i].Timestamp < lines[i-1].Timestamp {
			return lwerrors.NewUnsortedSourceError(name, i+1, lines[i-1].Timestamp, lines[i].Timestamp)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lines[name]; !ok {
		s.order = append(s.order, name)
	}
	s.lines[name] = lines
	return nil
}

// Lines implements correlate.SourceResolver.
func (s *Store) Lines(name string) ([]correlate.LogLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines, ok := s.lines[name]
	return lines, ok
}

// Names returns source names in registration order.
// Names 按注册顺序返回数据源名称。
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Total returns the number of lines across all sources.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, lines := range s.lines {
		n += len(lines)
	}
	return n
}
