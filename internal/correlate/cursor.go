package correlate

// Stream is what the scheduler pulls matches from. Cursor is the only
// production implementation.
// Stream 是调度器获取匹配项的来源，Cursor 是唯一的生产实现。
type Stream interface {
	Source() string
	Len() int
	Peek() (*Match, bool)
	Consume()
}

// Cursor is a per-source scan position with a one-slot cache of the next match.
// pos never moves backwards, so each line is examined at most once.
// Cursor 是单个数据源的扫描位置，附带下一个匹配项的单槽缓存。pos 只前进不后退。
type Cursor struct {
	group     *RuleGroup
	lines     []LogLine
	pos       int
	cached    *Match
	exhausted bool
}

// NewCursor creates a cursor over lines for the given rule group.
func NewCursor(group *RuleGroup, lines []LogLine) *Cursor {
	return &Cursor{
		group:     group,
		lines:     lines,
		exhausted: len(lines) == 0,
	}
}

// Source returns the source name.
func (c *Cursor) Source() string {
	return c.group.Source
}

// Len returns the number of lines in the source.
func (c *Cursor) Len() int {
	return len(c.lines)
}

// Scanned returns how many lines have been examined so far.
func (c *Cursor) Scanned() int {
	return c.pos
}

// Exhausted reports whether the cursor will never produce another match.
func (c *Cursor) Exhausted() bool {
	return c.exhausted && c.cached == nil
}

// Peek returns the cached match or scans forward for the next one.
// Every examined line is passed, matched or not.
// Peek 返回缓存的匹配项，或向前扫描下一个匹配项。所有检查过的行都会被越过。
func (c *Cursor) Peek() (*Match, bool) {
	if c.cached != nil {
		return c.cached, true
	}
	if c.exhausted {
		return nil, false
	}
	for c.pos < len(c.lines) {
		line := &c.lines[c.pos]
		c.pos++
		if rule, ok := c.group.Match(line); ok {
			c.cached = &Match{Source: c.group.Source, Line: line, Rule: rule}
			return c.cached, true
		}
	}
	c.exhausted = true
	return nil, false
}

// Consume drops the cached match. It never rescans.
// Consume 丢弃缓存的匹配项，不会重新扫描。
func (c *Cursor) Consume() {
	c.cached = nil
}
