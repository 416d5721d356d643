package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vslc/src/sourcemap"
)

func TestExitCodeMapping(t *testing.T) {
	src := sourcemap.New("x")
	span := sourcemap.Span{Start: 0, End: 1}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"io", IO(errors.New("disk full")), 1},
		{"sanity", Sanity("unreachable"), 1},
		{"undeclared", Undeclared(src, "x", span), 10},
		{"redeclared", Redeclared(src, "x", span, span), 11},
		{"wrongtype", WrongType(src, "int", "float", span), 30},
		{"stringtox", StringToX(src, "int", span), 31},
		{"chartox", CharToX(src, "int", span), 32},
		{"stringtoolarge", StringTooLarge(src, 4, 8, span), 33},
		{"stringvector", StringVector(src, span), 34},
		{"missingargs", MissingArgs("f"), 40},
		{"excessargs", ExcessArgs("f"), 41},
		{"wrongtypeargs", WrongTypeArgs("f", 1), 42},
		{"functionstring", FunctionString("f"), 43},
		{"inputtype", InputType(), 50},
		{"outputtype", OutputType(), 51},
		{"returntype", ReturnType(), 52},
		{"shiftamount", ShiftAmount(17), 53},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExitCode(c.err))
		})
	}
}

func TestExitCodeNilIsZero(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

func TestExitCodeUnknownErrorIsOne(t *testing.T) {
	assert.Equal(t, 1, ExitCode(errors.New("not a diag.Error")))
}

func TestClassMisuseSelectsKind(t *testing.T) {
	src := sourcemap.New("v")
	span := sourcemap.Span{Start: 0, End: 1}

	err := ClassMisuse(src, "variable", "v", span, span, "function")
	assert.Equal(t, 20, ExitCode(err))

	err = ClassMisuse(src, "vector", "v", span, span, "variable")
	assert.Equal(t, 21, ExitCode(err))

	err = ClassMisuse(src, "function", "v", span, span, "variable")
	assert.Equal(t, 22, ExitCode(err))
}

func TestIOWrapsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := IO(cause)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestHighlightSingleLine(t *testing.T) {
	src := sourcemap.New("int x = 5;")
	h := Highlight(src, sourcemap.Span{Start: 4, End: 5})
	assert.Equal(t, "int x = 5;\n    ^", h)
}

func TestHighlightMultiLine(t *testing.T) {
	src := sourcemap.New("a = 1\n  + 2;")
	h := Highlight(src, sourcemap.Span{Start: 4, End: 10})
	assert.Contains(t, h, "a = 1")
	assert.Contains(t, h, "  + 2")
}

func TestUndeclaredMessageHasLineAndColumn(t *testing.T) {
	src := sourcemap.New("output z;")
	err := Undeclared(src, "z", sourcemap.Span{Start: 7, End: 8})
	assert.Contains(t, err.Error(), `"z"`)
	assert.Contains(t, err.Error(), "line 1, column 8")
}
