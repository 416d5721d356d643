package diag

import (
	"fmt"

	"github.com/pkg/errors"

	"vslc/src/sourcemap"
)

// Error is a diagnostic of the closed taxonomy in kind.go. It renders its own
// fully-formed message (including any source highlight) so that cmd/vslc can
// simply print Error() and exit with ExitCode(err).
type Error struct {
	Kind  Kind
	msg   string
	cause error // wrapped internal cause for the infra-class kinds, or nil
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap exposes the wrapped internal cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// ExitCode returns the process exit code for err: the Kind's code if err is a
// *Error, or 1 for any other non-nil error (spec.md §6: "otherwise the kind's
// numeric code").
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var d *Error
	if errors.As(err, &d) {
		return d.Kind.Code()
	}
	return 1
}

// --- Internal/infra diagnostics (exit 1) ---

// IO wraps an I/O failure (reading source, writing output) with pkg/errors so the
// original cause is preserved for %+v stack traces while still satisfying the
// spec.md §4.1 contract that I/O failures are exit code 1.
func IO(err error) *Error {
	return &Error{Kind: KindIO, msg: fmt.Sprintf("reading input file failure: %s", err), cause: errors.WithStack(err)}
}

// Lexical reports a lexical error. The lexer itself is an external collaborator
// (spec.md §1); this exists only so the driver can surface one uniformly.
func Lexical(msg string) *Error {
	return &Error{Kind: KindLexical, msg: fmt.Sprintf("lexical error: %s", msg)}
}

// Parse reports a parse error.
func Parse(msg string) *Error {
	return &Error{Kind: KindParse, msg: fmt.Sprintf("parsing errors: %s", msg)}
}

// TreeBuild reports a tree-construction error.
func TreeBuild(msg string) *Error {
	return &Error{Kind: KindTreeBuild, msg: fmt.Sprintf("tree building error: %s", msg)}
}

// Scoping reports a scope-stack invariant violation (popping with no frames left).
func Scoping() *Error {
	return &Error{Kind: KindScoping, msg: "error in scope, this should not happen"}
}

// Sanity reports an "impossible in correct input" invariant violation, e.g. a
// LabelPromise with no matching add_fn_label, or popping an empty operand stack.
func Sanity(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: KindSanity, msg: err.Error(), cause: errors.WithStack(err)}
}

// --- Semantic declaration diagnostics ---

// Undeclared reports use of an identifier with no matching declaration (kind 10).
func Undeclared(src *sourcemap.Source, id string, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindUndeclared,
		msg: fmt.Sprintf("Usage of undeclared identifier: %q\nOccurrence at line %d, column %d:\n%s",
			id, pos.Line, pos.Col, Highlight(src, span)),
	}
}

// Redeclared reports a same-scope redeclaration (kind 11).
func Redeclared(src *sourcemap.Source, id string, first, second sourcemap.Span) *Error {
	fp, _ := src.LineCol(first)
	sp, _ := src.LineCol(second)
	return &Error{
		Kind: KindRedeclared,
		msg: fmt.Sprintf(
			"Same-scope identifier redeclaration: %q\nFirst occurrence at line %d, column %d:\n%s\nAnd again at line %d, column %d:\n%s",
			id, fp.Line, fp.Col, Highlight(src, first), sp.Line, sp.Col, Highlight(src, second)),
	}
}

// classNoun names the class for Etapa-5's "Variable/Vector/Function identifier
// used as <class>" messages.
func classNoun(class string) string { return class }

// ClassMisuse reports using an identifier declared as one class (variable, vector,
// function) where a different class was expected (kinds 20/21/22). foundClass
// names the class the identifier was actually declared as (selects the Kind);
// wantClass names the class it was used as.
func ClassMisuse(src *sourcemap.Source, foundClass, id string, first, second sourcemap.Span, wantClass string) *Error {
	var k Kind
	switch foundClass {
	case "variable":
		k = KindVariableMisuse
	case "vector":
		k = KindVectorMisuse
	case "function":
		k = KindFunctionMisuse
	default:
		return Sanity("ClassMisuse: unexpected found class %q", foundClass)
	}
	fp, _ := src.LineCol(first)
	sp, _ := src.LineCol(second)
	noun := map[string]string{"variable": "Variable", "vector": "Vector", "function": "Function"}[foundClass]
	return &Error{
		Kind: k,
		msg: fmt.Sprintf(
			"%s identifier used as %s: %q\nFirst occurrence at line %d, column %d:\n%s\nAnd again at line %d, column %d:\n%s",
			noun, classNoun(wantClass), id, fp.Line, fp.Col, Highlight(src, first), sp.Line, sp.Col, Highlight(src, second)),
	}
}

// --- Type mismatch diagnostics ---

// WrongType reports an incompatible type in a cast/assignment (kind 30).
func WrongType(src *sourcemap.Source, validType, receivedType string, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindWrongType,
		msg: fmt.Sprintf("invalid type conversion: expected %q, got %q\nOccurrence at line %d, column %d:\n%s",
			validType, receivedType, pos.Line, pos.Col, Highlight(src, span)),
	}
}

// StringToX reports an illegal cast from string to invalidType (kind 31).
func StringToX(src *sourcemap.Source, invalidType string, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindStringToX,
		msg: fmt.Sprintf("invalid type conversion from \"string\" to %q\nOccurrence at line %d, column %d:\n%s",
			invalidType, pos.Line, pos.Col, Highlight(src, span)),
	}
}

// CharToX reports an illegal cast from char to invalidType (kind 32).
func CharToX(src *sourcemap.Source, invalidType string, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindCharToX,
		msg: fmt.Sprintf("invalid type conversion from \"char\" to %q\nOccurrence at line %d, column %d:\n%s",
			invalidType, pos.Line, pos.Col, Highlight(src, span)),
	}
}

// StringTooLarge reports a string literal that overflows its destination's
// declared size (kind 33).
func StringTooLarge(src *sourcemap.Source, declaredSize, incomingSize uint32, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindStringTooLarge,
		msg: fmt.Sprintf(
			"invalid attribution of type \"string\" value, size %d exceeds declared size %d\nOccurrence at line %d, column %d:\n%s",
			incomingSize, declaredSize, pos.Line, pos.Col, Highlight(src, span)),
	}
}

// StringVector reports a string-typed vector element declaration (kind 34).
func StringVector(src *sourcemap.Source, span sourcemap.Span) *Error {
	pos, _ := src.LineCol(span)
	return &Error{
		Kind: KindStringVector,
		msg: fmt.Sprintf("invalid usage of \"string\" for vector data type\nOccurrence at line %d, column %d:\n%s",
			pos.Line, pos.Col, Highlight(src, span)),
	}
}

// --- Call arity/types diagnostics ---

// MissingArgs reports a function call with too few arguments (kind 40).
func MissingArgs(fn string) *Error {
	return &Error{Kind: KindMissingArgs, msg: fmt.Sprintf("missing args in function call %q()", fn)}
}

// ExcessArgs reports a function call with too many arguments (kind 41).
func ExcessArgs(fn string) *Error {
	return &Error{Kind: KindExcessArgs, msg: fmt.Sprintf("excess args in function call %q()", fn)}
}

// WrongTypeArgs reports a function call argument of incompatible type (kind 42).
func WrongTypeArgs(fn string, pos int) *Error {
	return &Error{Kind: KindWrongTypeArgs, msg: fmt.Sprintf("invalid type in function call %q() argument %d", fn, pos)}
}

// FunctionString reports a string used as an argument or parameter (kind 43).
func FunctionString(fn string) *Error {
	return &Error{Kind: KindFunctionString, msg: fmt.Sprintf("function %q argument or parameter of invalid type \"string\"", fn)}
}

// --- Command parameter type diagnostics ---

// InputType reports an "input" target that isn't an int/float variable (kind 50).
func InputType() *Error {
	return &Error{Kind: KindInputType, msg: "invalid type for \"input\" command; expected identifier of type \"int\" or \"float\""}
}

// OutputType reports an "output" operand that isn't int/float (kind 51).
func OutputType() *Error {
	return &Error{Kind: KindOutputType, msg: "invalid type for \"output\" command; expected identifier or literal, of type \"int\" or \"float\""}
}

// ReturnType reports a "return" expression incompatible with the enclosing
// function's declared return type (kind 52).
func ReturnType() *Error {
	return &Error{Kind: KindReturnType, msg: "invalid return for function; expected \"return\" command with compatible type"}
}

// ShiftAmount reports a shift amount greater than 16 (kind 53).
func ShiftAmount(amount int) *Error {
	return &Error{Kind: KindShiftAmount, msg: fmt.Sprintf(
		"invalid number parameter on shift command; expected number lower or equal to 16, got %d", amount)}
}
