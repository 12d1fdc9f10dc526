package tokstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvancePeekHasNext(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	assert.Equal(t, -1, s.Pos())
	assert.True(t, s.HasNext())
	assert.Equal(t, "a", s.Peek())

	assert.True(t, s.Advance())
	assert.Equal(t, "a", s.Current())

	assert.True(t, s.Advance())
	assert.Equal(t, "b", s.Current())

	assert.True(t, s.Advance())
	assert.Equal(t, "c", s.Current())
	assert.False(t, s.HasNext())
	assert.False(t, s.Advance())
}

func TestSpliceNextReplacesUpcomingToken(t *testing.T) {
	s := New([]string{"--alias", "tail"})
	s.Advance()
	s.SpliceNext([]string{"--long", "value"})
	assert.Equal(t, []string{"--alias", "--long", "value", "tail"}, s.Args())
}

func TestRewindOneNeverGoesBelowStart(t *testing.T) {
	s := New([]string{"a"})
	s.RewindOne()
	assert.Equal(t, -1, s.Pos())
	s.Advance()
	s.RewindOne()
	assert.Equal(t, -1, s.Pos())
}

func TestInsertAtSplicesWithoutMovingCursor(t *testing.T) {
	s := New([]string{"a", "c"})
	s.Advance()
	s.InsertAt(1, "b")
	assert.Equal(t, []string{"a", "b", "c"}, s.Args())
	assert.Equal(t, 0, s.Pos())
}
