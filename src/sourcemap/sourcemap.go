// Package sourcemap implements the position-indexing bookkeeping a lexer/parser
// would normally carry alongside its tokens: byte-span to substring, byte-span to
// (line, column) pairs, and byte-span to the full source lines it overlaps. It is
// not a lexer or parser (spec.md §1 treats those as external collaborators); it
// only gives diag's highlight formatter and the AST's tests something concrete to
// call, the same bookkeeping the teacher's frontend/lexer.go does inline while
// scanning, pulled out into a standalone utility.
package sourcemap

import "strings"

// Span is a half-open byte range [Start, End) into a Source's text.
type Span struct {
	Start int
	End   int
}

// Position is a 1-indexed (line, column) pair.
type Position struct {
	Line int
	Col  int
}

// Source indexes a source text for span lookups.
type Source struct {
	text       string
	lineStarts []int // byte offset of the first byte of each line; lineStarts[0] == 0
}

// New indexes src for span lookups.
func New(src string) *Source {
	starts := []int{0}
	for i, b := range []byte(src) {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{text: src, lineStarts: starts}
}

// Text returns the substring of the source text covered by span.
func (s *Source) Text(span Span) string {
	if span.Start < 0 || span.End > len(s.text) || span.Start > span.End {
		return ""
	}
	return s.text[span.Start:span.End]
}

// lineOf returns the 0-indexed line number containing byte offset.
func (s *Source) lineOf(offset int) int {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineCol returns the 1-indexed (line, column) of span's start and end offsets.
func (s *Source) LineCol(span Span) (start, end Position) {
	sl := s.lineOf(span.Start)
	el := s.lineOf(span.End)
	start = Position{Line: sl + 1, Col: span.Start - s.lineStarts[sl] + 1}
	end = Position{Line: el + 1, Col: span.End - s.lineStarts[el] + 1}
	return start, end
}

// lineText returns the text of the 0-indexed line i, without its trailing newline.
func (s *Source) lineText(i int) string {
	start := s.lineStarts[i]
	var end int
	if i+1 < len(s.lineStarts) {
		end = s.lineStarts[i+1] - 1 // exclude the newline
	} else {
		end = len(s.text)
	}
	if end < start {
		end = start
	}
	return s.text[start:end]
}

// Lines returns every full source line that span overlaps, joined by newlines.
func (s *Source) Lines(span Span) string {
	sl := s.lineOf(span.Start)
	el := s.lineOf(span.End)
	lines := make([]string, 0, el-sl+1)
	for i := sl; i <= el; i++ {
		lines = append(lines, s.lineText(i))
	}
	return strings.Join(lines, "\n")
}
