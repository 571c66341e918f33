package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/livp123/logweave/internal/config"
	"github.com/livp123/logweave/internal/correlate"
	"github.com/livp123/logweave/internal/utils/logger"
	lwerrors "github.com/livp123/logweave/pkg/errors"
	"github.com/nxadm/tail"
)

// LoadStats describes how one source file was read.
// LoadStats 描述单个数据源文件的读取情况。
type LoadStats struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Read    int    `json:"read" yaml:"read"`
	Parsed  int    `json:"parsed" yaml:"parsed"`
	Skipped int    `json:"skipped" yaml:"skipped"`
	Missing bool   `json:"missing" yaml:"missing"`
}

// Loader reads configured source files into a Store.
// Loader 将配置的数据源文件读取到 Store 中。
type Loader struct {
	stats []LoadStats
}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Stats returns per-source statistics of the last Load, in configuration order.
func (l *Loader) Stats() []LoadStats {
	return l.stats
}

type loadResult struct {
	lines []correlate.LogLine
	stats LoadStats
	err   error
}

// Load reads every source concurrently. Missing files become empty sources
// and are only logged; unsorted or unreadable files and paths that are not
// regular files fail the whole load.
// Sources are registered in configuration order regardless of read timing.
// Load 并发读取所有数据源。缺失文件成为空数据源并仅记录日志；未排序或不可读的文件会使加载失败。
func (l *Loader) Load(ctx context.Context, sources []config.SourceConfig) (*Store, error) {
	log := logger.Get(ctx)
	results := make([]loadResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src config.SourceConfig) {
			defer wg.Done()
			lines, stats, err := readSource(ctx, src)
			results[i] = loadResult{lines: lines, stats: stats, err: err}
		}(i, src)
	}
	wg.Wait()

	store := NewStore()
	l.stats = l.stats[:0]
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("source %s: %w", sources[i].Name, res.err)
		}
		if res.stats.Missing {
			log.Warnf("[WARN]  Source %s: file %s not found, treating as empty", res.stats.Name, res.stats.Path)
		} else {
			log.Infof("[LOAD] Source %s: %d lines read, %d parsed, %d skipped",
				res.stats.Name, res.stats.Read, res.stats.Parsed, res.stats.Skipped)
		}
		if err := store.Add(sources[i].Name, res.lines); err != nil {
			return nil, err
		}
		l.stats = append(l.stats, res.stats)
	}
	return store, nil
}

// readSource reads a whole file once with tail (no follow) and parses each line.
func readSource(ctx context.Context, src config.SourceConfig) ([]correlate.LogLine, LoadStats, error) {
	stats := LoadStats{Name: src.Name, Path: src.Path}

	parser, err := NewParser(src)
	if err != nil {
		return nil, stats, err
	}
	info, err := os.Stat(src.Path)
	switch {
	case os.IsNotExist(err):
		stats.Missing = true
		return nil, stats, nil
	case err != nil:
		return nil, stats, lwerrors.NewFileError(src.Path, err)
	case !info.Mode().IsRegular():
		return nil, stats, lwerrors.NewFilePathError(src.Path, "not a regular file")
	}

	t, err := tail.TailFile(src.Path, tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: 0},
		Follow:    false,
		ReOpen:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, stats, lwerrors.NewFileError(src.Path, err)
	}
	defer t.Cleanup()

	var lines []correlate.LogLine
	lineNo := 0
	for line := range t.Lines {
		if line.Err != nil {
			_ = t.Stop()
			return nil, stats, fmt.Errorf("read %s: %w", src.Path, line.Err)
		}
		lineNo++
		stats.Read++
		if lineNo%4096 == 0 && ctx.Err() != nil {
			_ = t.Stop()
			return nil, stats, fmt.Errorf("%w: %v", lwerrors.ErrCanceled, ctx.Err())
		}

		text := strings.TrimRight(line.Text, "\r")
		if strings.TrimSpace(text) == "" {
			stats.Skipped++
			continue
		}
		parsed, ok := parser.Parse(text)
		if !ok {
			stats.Skipped++
			continue
		}
		if n := len(lines); n > 0 && parsed.Timestamp < lines[n-1].Timestamp {
			_ = t.Stop()
			return nil, stats, lwerrors.NewUnsortedSourceError(src.Name, lineNo, lines[n-1].Timestamp, parsed.Timestamp)
		}
		parsed.ID = LineID(src.Name, lineNo)
		lines = append(lines, parsed)
		stats.Parsed++
	}
	if err := t.Wait(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", src.Path, err)
	}
	return lines, stats, nil
}
