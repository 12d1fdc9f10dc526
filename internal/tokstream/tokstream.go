// Package tokstream provides the token cursor the parser drives: a
// mutable view over the remaining argument vector that supports peeking,
// skipping, and mid-stream splicing (for replacer expansion and the
// lone-token value lookahead used by the short-cluster and long-option
// handlers). Keeping this cursor separate lets the higher-level
// classifier and value-collection code stay a plain loop instead of a
// hand-rolled index juggling act.
package tokstream

import "github.com/cmdargs/cmdargs/internal/util"

// Stream is a cursor over a token slice.
type Stream struct {
	pos  int
	args []string
}

// New creates a Stream positioned just before the first token.
func New(args []string) *Stream {
	return &Stream{pos: -1, args: args}
}

// Pos returns the index of the current token (-1 before the first Advance).
func (s *Stream) Pos() int { return s.pos }

// SetPos rewinds or fast-forwards the cursor to an arbitrary index.
func (s *Stream) SetPos(pos int) { s.pos = pos }

// Len returns the total number of tokens in the underlying slice,
// consumed or not.
func (s *Stream) Len() int { return len(s.args) }

// Args exposes the underlying slice (read-only use expected).
func (s *Stream) Args() []string { return s.args }

// Current returns the token at the cursor. Panics if Advance was never
// called or the stream is exhausted - callers only call this from inside
// the main loop immediately after a successful Advance.
func (s *Stream) Current() string { return s.args[s.pos] }

// Advance moves the cursor to the next token and reports whether one
// exists.
func (s *Stream) Advance() bool {
	if s.pos+1 < len(s.args) {
		s.pos++
		return true
	}
	return false
}

// Peek returns the next token without consuming it, or "" at the end.
func (s *Stream) Peek() string {
	if s.pos+1 < len(s.args) {
		return s.args[s.pos+1]
	}
	return ""
}

// HasNext reports whether Peek would return a real token.
func (s *Stream) HasNext() bool {
	return s.pos+1 < len(s.args)
}

// Skip consumes the next token (used after a lookahead confirms it
// belongs to the current value collection) and returns it.
func (s *Stream) Skip() string {
	s.pos++
	return s.args[s.pos]
}

// Rest returns every token from just past the cursor to the end.
func (s *Stream) Rest() []string {
	if s.pos+1 >= len(s.args) {
		return nil
	}
	return s.args[s.pos+1:]
}

// SpliceNext inserts the replacement tokens right after the cursor,
// ahead of the upcoming token, which is kept. Replacer expansion first
// advances onto the replaced token, so that token is consumed and its
// replacement is read next.
func (s *Stream) SpliceNext(replacement []string) {
	keep := s.args[:s.pos+1]
	tail := s.args[s.pos+1:]
	out := make([]string, 0, len(keep)+len(replacement)+len(tail))
	out = append(out, keep...)
	out = append(out, replacement...)
	out = append(out, tail...)
	s.args = out
}

// InsertAt splices extra tokens into the stream starting at an arbitrary
// position without moving the cursor.
func (s *Stream) InsertAt(pos int, elements ...string) {
	s.args = util.InsertSlice(s.args, pos, elements...)
}

// RewindOne moves the cursor back by one, never before the start. The
// parser does not call it.
func (s *Stream) RewindOne() {
	if s.pos > -1 {
		s.pos--
	}
}
