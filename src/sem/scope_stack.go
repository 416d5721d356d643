package sem

import (
	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sourcemap"
	"vslc/src/util"
)

// frame is one lexical scope: its own definition table, the return type and
// epilogue label it must satisfy/target if it's a function body (zero values
// otherwise), and the CallSymbol operand stack behind PushCall/PopCall (the ast
// evaluator does not use it).
type frame struct {
	defs       map[string]*DefSymbol
	returnType *SymbolType
	epilogue   *iloc.Label
	fnName     string
	operands   util.Stack[CallSymbol]
}

// ScopeStack is the lexical scope stack of spec.md §4.3: a stack of frames, each
// with its own definition table and running byte offset, mirroring Etapa-5's
// ScopeStack.
type ScopeStack struct {
	frames  util.Stack[*frame]
	offsets util.Stack[uint32]
}

// NewScopeStack returns an empty ScopeStack with no frames pushed.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// Push opens a new lexical scope. returnType/epilogue/fnName are non-zero when
// the new frame is a function body, so Return-statement evaluation can
// type-check against returnType and jump to epilogue; block scopes (If/While/
// For/CommandBlock) pass nil/nil/"".
func (s *ScopeStack) Push(returnType *SymbolType, epilogue *iloc.Label, fnName string) {
	s.frames.Push(&frame{defs: map[string]*DefSymbol{}, returnType: returnType, epilogue: epilogue, fnName: fnName})
	s.offsets.Push(0)
}

// Pop closes the innermost lexical scope.
func (s *ScopeStack) Pop() error {
	if _, ok := s.frames.Pop(); !ok {
		return diag.Scoping()
	}
	if _, ok := s.offsets.Pop(); !ok {
		return diag.Scoping()
	}
	return nil
}

// CheckDuplicate reports diag.Redeclared if id is already defined in the
// innermost scope.
func (s *ScopeStack) CheckDuplicate(src *sourcemap.Source, id string, span sourcemap.Span) error {
	top, ok := s.frames.Peek()
	if !ok {
		return diag.Scoping()
	}
	if prev, found := top.defs[id]; found {
		return diag.Redeclared(src, id, prev.Span, span)
	}
	return nil
}

// AddDef installs def in the innermost scope. Callers must run CheckDuplicate
// first; AddDef itself does not re-check.
func (s *ScopeStack) AddDef(def *DefSymbol) error {
	top, ok := s.frames.Peek()
	if !ok {
		return diag.Scoping()
	}
	top.defs[def.Id] = def
	return nil
}

// GetPreviousDef searches outward from the innermost scope for id, erroring with
// diag.Undeclared if no scope defines it, or diag.ClassMisuse (kind 20, 21 or
// 22, chosen by the class it was declared as) if it is found but declared as a
// different class than expected.
func (s *ScopeStack) GetPreviousDef(src *sourcemap.Source, id string, span sourcemap.Span, expected ClassKind) (*DefSymbol, error) {
	n := s.frames.Size()
	for i := 1; i <= n; i++ {
		f, ok := s.frames.Get(i)
		if !ok {
			return nil, diag.Scoping()
		}
		if def, found := f.defs[id]; found {
			if def.Class.Kind != expected {
				return nil, diag.ClassMisuse(src, def.Class.Kind.String(), id, def.Span, span, expected.String())
			}
			return def, nil
		}
	}
	return nil, diag.Undeclared(src, id, span)
}

// GetPreviousDefStringNoError searches outward from the innermost scope for id
// and returns it regardless of class, or nil if no scope defines it. Used for
// the "<name>[<i>]" vector-element pseudo-symbol lookups, where a miss is
// reported as an out-of-range index rather than an undeclared identifier.
func (s *ScopeStack) GetPreviousDefStringNoError(id string) *DefSymbol {
	n := s.frames.Size()
	for i := 1; i <= n; i++ {
		f, ok := s.frames.Get(i)
		if !ok {
			return nil
		}
		if def, found := f.defs[id]; found {
			return def
		}
	}
	return nil
}

// PushCall pushes call onto the innermost frame's operand stack.
func (s *ScopeStack) PushCall(call CallSymbol) error {
	top, ok := s.frames.Peek()
	if !ok {
		return diag.Scoping()
	}
	top.operands.Push(call)
	return nil
}

// PopCall pops the innermost frame's operand stack.
func (s *ScopeStack) PopCall() (CallSymbol, error) {
	top, ok := s.frames.Peek()
	if !ok {
		return CallSymbol{}, diag.Scoping()
	}
	call, ok := top.operands.Pop()
	if !ok {
		return CallSymbol{}, diag.Sanity("PopCall: empty operand stack")
	}
	return call, nil
}

// GetCurrentScopeType searches outward from the innermost scope for the nearest
// enclosing function's declared return type.
func (s *ScopeStack) GetCurrentScopeType() (SymbolType, error) {
	n := s.frames.Size()
	for i := 1; i <= n; i++ {
		f, ok := s.frames.Get(i)
		if !ok {
			return SymbolType{}, diag.Scoping()
		}
		if f.returnType != nil {
			return *f.returnType, nil
		}
	}
	return SymbolType{}, diag.Sanity("GetCurrentScopeType: no enclosing function frame")
}

// GetEpilogueLabel searches outward from the innermost scope for the nearest
// enclosing function's epilogue label, so Return can emit a jump to it.
func (s *ScopeStack) GetEpilogueLabel() (iloc.Label, error) {
	n := s.frames.Size()
	for i := 1; i <= n; i++ {
		f, ok := s.frames.Get(i)
		if !ok {
			return iloc.Label{}, diag.Scoping()
		}
		if f.epilogue != nil {
			return *f.epilogue, nil
		}
	}
	return iloc.Label{}, diag.Sanity("GetEpilogueLabel: no enclosing function frame")
}

// GetCurrentScopeFnName searches outward from the innermost scope for the
// nearest enclosing function's identifier, used to name diagnostics raised
// about its return/parameter types.
func (s *ScopeStack) GetCurrentScopeFnName() (string, error) {
	n := s.frames.Size()
	for i := 1; i <= n; i++ {
		f, ok := s.frames.Get(i)
		if !ok {
			return "", diag.Scoping()
		}
		if f.returnType != nil {
			return f.fnName, nil
		}
	}
	return "", diag.Sanity("GetCurrentScopeFnName: no enclosing function frame")
}

// AddOffset bumps the innermost scope's running byte offset by n and returns the
// offset a definition of that size should be placed at (the value before the
// bump), mirroring Etapa-5's add_offset.
func (s *ScopeStack) AddOffset(n uint32) (uint32, error) {
	cur, ok := s.offsets.Pop()
	if !ok {
		return 0, diag.Scoping()
	}
	s.offsets.Push(cur + n)
	return cur, nil
}

// GetOffset returns the innermost scope's current running byte offset without
// changing it.
func (s *ScopeStack) GetOffset() (uint32, error) {
	cur, ok := s.offsets.Peek()
	if !ok {
		return 0, diag.Scoping()
	}
	return cur, nil
}
