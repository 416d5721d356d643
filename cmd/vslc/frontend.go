package main

import (
	"vslc/src/ast"
	"vslc/src/sourcemap"
)

// Frontend turns source text into a tree ready for ast.Node.Evaluate. The
// lexer and LR parser are genuinely external collaborators (spec.md §1); this
// interface is the seam where a real one plugs in. Two implementations ship:
// StaticFrontend, which hands back a tree built ahead of time by calling ast's
// constructors directly — the moral equivalent of a parser's output, used by
// tests — and main.go's defaultFrontend, which always fails.
type Frontend interface {
	Build(text string, src *sourcemap.Source) (*ast.Node, error)
}

// StaticFrontend implements Frontend by ignoring the source text entirely and
// returning a tree built ahead of time.
type StaticFrontend struct {
	Root *ast.Node
}

func (f StaticFrontend) Build(text string, src *sourcemap.Source) (*ast.Node, error) {
	return f.Root, nil
}
