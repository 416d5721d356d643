package sem

// ClassKind discriminates the four symbol classes of spec.md §3: function,
// variable, vector, literal.
type ClassKind int

const (
	ClassVariable ClassKind = iota
	ClassVector
	ClassFunction
	ClassLiteral
)

func (c ClassKind) String() string {
	switch c {
	case ClassVariable:
		return "variable"
	case ClassVector:
		return "vector"
	case ClassFunction:
		return "function"
	case ClassLiteral:
		return "literal"
	default:
		return "?"
	}
}

// Parameter is one entry of a function DefSymbol's parameter list.
type Parameter struct {
	Name string
	Type SymbolType
}

// SymbolClass carries the class tag and, for functions, the parameter list.
type SymbolClass struct {
	Kind   ClassKind
	Params []Parameter // only meaningful when Kind == ClassFunction
}

func Variable() SymbolClass { return SymbolClass{Kind: ClassVariable} }
func Vector() SymbolClass   { return SymbolClass{Kind: ClassVector} }
func Fn(params []Parameter) SymbolClass {
	return SymbolClass{Kind: ClassFunction, Params: params}
}
func LiteralClass() SymbolClass { return SymbolClass{Kind: ClassLiteral} }

// Equal compares class tags only, ignoring the parameter list (mirrors
// SymbolType.Equal and Etapa-5's SymbolClass PartialEq impl).
func (c SymbolClass) Equal(o SymbolClass) bool {
	return c.Kind == o.Kind
}
