package diag

import (
	"strings"

	"vslc/src/sourcemap"
)

// Highlight renders span's source text with a caret row underlining the offending
// columns, following spec.md §4.1: for every source line the span overlaps, emit
// the line followed by a caret row; the first line's carets start at the span's
// start column, every following line is underlined from its first column, in
// full for lines before the last and up to the span's end on the last line.
func Highlight(src *sourcemap.Source, span sourcemap.Span) string {
	start, end := src.LineCol(span)
	lines := strings.Split(src.Lines(span), "\n")

	var b strings.Builder
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	b.WriteString(first)
	b.WriteByte('\n')
	for i := 0; i < start.Col-1; i++ {
		b.WriteByte(' ')
	}
	endOfFirst := end.Col
	if len(lines) > 1 {
		endOfFirst = len(first) + 1
	}
	for i := start.Col; i < endOfFirst; i++ {
		b.WriteByte('^')
	}

	for i := 1; i < len(lines); i++ {
		next := lines[i]
		b.WriteByte('\n')
		b.WriteString(next)
		b.WriteByte('\n')
		endOfNext := end.Col
		if i+1 < len(lines) {
			endOfNext = len(next) + 1
		}
		for j := 1; j < endOfNext; j++ {
			b.WriteByte('^')
		}
	}
	return b.String()
}
