package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineColSingleLine(t *testing.T) {
	src := New("int x = 5;")
	start, end := src.LineCol(Span{Start: 4, End: 5})
	assert.Equal(t, Position{Line: 1, Col: 5}, start)
	assert.Equal(t, Position{Line: 1, Col: 6}, end)
}

func TestLineColSecondLine(t *testing.T) {
	src := New("first\nsecond line\nthird")
	start, end := src.LineCol(Span{Start: 6, End: 12})
	assert.Equal(t, Position{Line: 2, Col: 1}, start)
	assert.Equal(t, Position{Line: 2, Col: 7}, end)
}

func TestLineColSpanningLines(t *testing.T) {
	src := New("abc\ndef\nghi")
	start, end := src.LineCol(Span{Start: 2, End: 9})
	assert.Equal(t, Position{Line: 1, Col: 3}, start)
	assert.Equal(t, Position{Line: 3, Col: 2}, end)
}

func TestText(t *testing.T) {
	src := New("hello world")
	assert.Equal(t, "hello", src.Text(Span{Start: 0, End: 5}))
	assert.Equal(t, "world", src.Text(Span{Start: 6, End: 11}))
}

func TestTextOutOfRange(t *testing.T) {
	src := New("abc")
	assert.Equal(t, "", src.Text(Span{Start: -1, End: 2}))
	assert.Equal(t, "", src.Text(Span{Start: 0, End: 100}))
}

func TestLines(t *testing.T) {
	src := New("one\ntwo\nthree")
	assert.Equal(t, "one\ntwo", src.Lines(Span{Start: 0, End: 6}))
	assert.Equal(t, "two", src.Lines(Span{Start: 5, End: 6}))
}

func TestLinesLastLineNoTrailingNewline(t *testing.T) {
	src := New("only line")
	assert.Equal(t, "only line", src.Lines(Span{Start: 0, End: 4}))
}
