package report

import (
	"strconv"

	"github.com/livp123/logweave/internal/correlate"
)

// Entry is one delivered line inside a chapter.
// Entry 是章节中的一条已投递行。
type Entry struct {
	ID        string `json:"id" yaml:"id"`
	Anchor    string `json:"anchor" yaml:"anchor"`
	Source    string `json:"source" yaml:"source"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Tag       string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Message   string `json:"message" yaml:"message"`
}

// Chapter is the rendered form of one session.
// Chapter 是单个会话的渲染形式。
type Chapter struct {
	Index   int     `json:"index" yaml:"index"`
	Title   string  `json:"title" yaml:"title"`
	Anchor  string  `json:"anchor" yaml:"anchor"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Document is a complete merge report.
// Document 是完整的合并报告。
type Document struct {
	Sessions []Chapter               `json:"sessions" yaml:"sessions"`
	Sources  []correlate.SourceStats `json:"sources,omitempty" yaml:"sources,omitempty"`
	Warnings []string                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// SessionAnchor returns the deep-link anchor of the n-th session.
func SessionAnchor(n int) string {
	return "session-" + strconv.Itoa(n)
}

// LineAnchor returns the deep-link anchor of a line id.
func LineAnchor(id string) string {
	return "line-" + id
}

// Build converts a merge result into a Document. Sessions keep their
// creation order and entries keep delivery order; empty sessions are kept.
// Build 将合并结果转换为 Document，保持会话的创建顺序和条目的投递顺序。
func Build(result *correlate.Result) *Document {
	doc := &Document{
		Sessions: make([]Chapter, 0, len(result.Sessions)),
		Sources:  result.Sources,
	}
	for _, s := range result.Sessions {
		ch := Chapter{
			Index:   s.Index,
			Title:   s.Title,
			Anchor:  SessionAnchor(s.Index),
			Entries: make([]Entry, 0, len(s.Entries)),
		}
		for _, ref := range s.Entries {
			ch.Entries = append(ch.Entries, Entry{
				ID:        ref.ID,
				Anchor:    LineAnchor(ref.ID),
				Source:    ref.Source,
				Timestamp: ref.Timestamp(),
				Tag:       ref.Line.Tag,
				Message:   ref.Line.Message,
			})
		}
		doc.Sessions = append(doc.Sessions, ch)
	}
	for _, w := range result.Warnings {
		doc.Warnings = append(doc.Warnings, w.Error())
	}
	return doc
}
