package sem

import "vslc/src/sourcemap"

// CallSymbol is a use-site record that ScopeStack.PushCall/PopCall keep on the
// current frame's operand stack, spec.md §4.2. The ast evaluator does not push
// CallSymbols: evalFnCall matches each argument's EvalResult against the
// callee's declared Parameter list directly.
type CallSymbol struct {
	Id   string
	Span sourcemap.Span
	Pos  sourcemap.Position
	Type SymbolType
}

// NewCallSymbol constructs a CallSymbol, deriving Pos from span via src.
func NewCallSymbol(id string, span sourcemap.Span, src *sourcemap.Source, typ SymbolType) CallSymbol {
	pos, _ := src.LineCol(span)
	return CallSymbol{Id: id, Span: span, Pos: pos, Type: typ}
}
