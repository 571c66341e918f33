package correlate

import (
	lwerrors "github.com/livp123/logweave/pkg/errors"
)

// SessionState is the lifecycle state of a Session.
type SessionState int

const (
	SessionOpen SessionState = iota
	SessionFinalized
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// LineRef is a lightweight reference to a delivered line. It carries the
// stable identity and a display hook, never a copy of the line content.
// LineRef 是已投递行的轻量引用，携带稳定标识和显示钩子，而不复制行内容。
type LineRef struct {
	ID     string
	Source string
	Line   *LogLine
}

// Timestamp returns the referenced line's timestamp.
func (r LineRef) Timestamp() int64 {
	return r.Line.Timestamp
}

// Display renders the one-line stub used in report views.
func (r LineRef) Display() string {
	if r.Line.Tag == "" {
		return r.Line.Message
	}
	return r.Line.Tag + ": " + r.Line.Message
}

// Session is an ordered partition of merged output.
// Session 是合并输出中的一个有序分区。
type Session struct {
	Index   int
	Title   string
	Entries []LineRef
	state   SessionState
}

// State returns the session's lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Len returns the number of entries.
func (s *Session) Len() int {
	return len(s.Entries)
}

// Sink accumulates delivered lines into sibling sessions in creation order.
// Only the last session is ever open.
// Sink 按创建顺序将投递的行累积到同级会话中，只有最后一个会话处于打开状态。
type Sink struct {
	sessions []*Session
}

// NewSink creates a sink whose initial default session is titled defaultTitle.
// NewSink 创建一个 Sink，其初始默认会话标题为 defaultTitle。
func NewSink(defaultTitle string) *Sink {
	s := &Sink{}
	s.open(defaultTitle)
	return s
}

func (s *Sink) open(title string) *Session {
	session := &Session{Index: len(s.sessions), Title: title, state: SessionOpen}
	s.sessions = append(s.sessions, session)
	return session
}

func (s *Sink) active() *Session {
	return s.sessions[len(s.sessions)-1]
}

// Append adds ref to the active session.
func (s *Sink) Append(ref LineRef) error {
	session := s.active()
	if session.state != SessionOpen {
		return lwerrors.ErrSessionClosed
	}
	session.Entries = append(session.Entries, ref)
	return nil
}

// NewSession finalizes the active session and opens the next sibling.
// NewSession 结束当前会话并开启下一个同级会话。
func (s *Sink) NewSession(title string) (*Session, error) {
	current := s.active()
	if current.state != SessionOpen {
		return nil, lwerrors.ErrSessionClosed
	}
	current.state = SessionFinalized
	return s.open(title), nil
}

// Finish finalizes the active session. It is idempotent.
func (s *Sink) Finish() {
	s.active().state = SessionFinalized
}

// Active returns the session that receives appends.
func (s *Sink) Active() *Session {
	return s.active()
}

// Sessions returns all sessions in creation order.
func (s *Sink) Sessions() []*Session {
	return s.sessions
}
