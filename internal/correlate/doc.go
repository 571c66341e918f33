// Package correlate merges several time-ordered log sources into one
// session-partitioned narrative.
//
// Rules are grouped per source and evaluated top-down; the first rule that
// matches a line routes it. One Cursor per source caches its next matching
// line, and the scheduler repeatedly delivers the globally earliest cached
// match. A rule may open a new session before its line is appended, so the
// output is an ordered list of sessions holding references to the original
// lines.
//
// correlate 包将多个按时间排序的日志源合并为按会话划分的单一叙述。
package correlate
