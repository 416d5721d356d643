// Package diag implements the structured diagnostic framework of spec.md §4.1:
// a closed taxonomy of error kinds with stable numeric exit codes, and a
// multi-line source-highlight formatter. Every semantic condition the AST
// evaluator can hit is reported as one of these typed diagnostics; none are
// recovered locally (spec.md §7).
package diag

// Kind is one entry in the closed error taxonomy of spec.md §4.1. Exit codes are
// part of the external contract and must never be renumbered.
type Kind int

const (
	// Internal/infra — exit code 1.
	KindIO Kind = iota
	KindLexical
	KindParse
	KindTreeBuild
	KindScoping
	KindSanity

	// Semantic declaration.
	KindUndeclared  // 10
	KindRedeclared  // 11

	// Class misuse.
	KindVariableMisuse // 20
	KindVectorMisuse   // 21
	KindFunctionMisuse // 22

	// Type mismatch.
	KindWrongType      // 30
	KindStringToX      // 31
	KindCharToX        // 32
	KindStringTooLarge // 33
	KindStringVector   // 34

	// Call arity/types.
	KindMissingArgs   // 40
	KindExcessArgs    // 41
	KindWrongTypeArgs // 42
	KindFunctionString // 43

	// Command parameter types.
	KindInputType   // 50
	KindOutputType  // 51
	KindReturnType  // 52
	KindShiftAmount // 53
)

// exitCodes maps every Kind to its spec.md §4.1 exit code.
var exitCodes = map[Kind]int{
	KindIO:        1,
	KindLexical:   1,
	KindParse:     1,
	KindTreeBuild: 1,
	KindScoping:   1,
	KindSanity:    1,

	KindUndeclared: 10,
	KindRedeclared: 11,

	KindVariableMisuse: 20,
	KindVectorMisuse:   21,
	KindFunctionMisuse: 22,

	KindWrongType:      30,
	KindStringToX:      31,
	KindCharToX:        32,
	KindStringTooLarge: 33,
	KindStringVector:   34,

	KindMissingArgs:    40,
	KindExcessArgs:     41,
	KindWrongTypeArgs:  42,
	KindFunctionString: 43,

	KindInputType:   50,
	KindOutputType:  51,
	KindReturnType:  52,
	KindShiftAmount: 53,
}

// Code returns the exit code for k.
func (k Kind) Code() int {
	return exitCodes[k]
}
