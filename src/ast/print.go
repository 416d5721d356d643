package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders the tree with teacher-style indentation, one node per line,
// indented two spaces per depth level.
func (n *Node) Print(depth int) string {
	var b strings.Builder
	n.print(&b, depth)
	return b.String()
}

func (n *Node) print(b *strings.Builder, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Type.String())
	if label := n.leafLabel(); label != "" {
		b.WriteString(" ")
		b.WriteString(label)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.print(b, depth+1)
	}
}

func (n *Node) leafLabel() string {
	switch d := n.Data.(type) {
	case declData:
		return fmt.Sprintf("%s: %s", d.Name, d.TypeName)
	case fnDefData:
		return fmt.Sprintf("%s -> %s", d.Name, d.TypeName)
	case nameData:
		return d.Name
	case binData:
		return d.Op.String()
	case unData:
		return d.Op.String()
	case int32:
		return strconv.Itoa(int(d))
	case float64:
		return strconv.FormatFloat(d, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(d)
	case byte:
		return "'" + string(rune(d)) + "'"
	case string:
		return strconv.Quote(d)
	default:
		return ""
	}
}

// dotWalker assigns a stable graphviz node identifier (idOf), keyed by pointer identity
// via a running counter supplied by the caller walk (PrintDependencies /
// PrintLabels), mirroring Etapa-5's AstNode::print_dependencies /
// print_labels used to visually debug the parse tree, SPEC_FULL.md
// [SUPPLEMENT] 4.
type dotWalker struct {
	ids    map[*Node]int
	next   int
	labels strings.Builder
	edges  strings.Builder
}

func (w *dotWalker) idOf(n *Node) int {
	if id, ok := w.ids[n]; ok {
		return id
	}
	id := w.next
	w.next++
	w.ids[n] = id
	return id
}

// PrintDependencies renders the structural parent -> child edges of the tree
// rooted at n as Graphviz dot body lines ("n0 -> n1;").
func (n *Node) PrintDependencies() string {
	w := &dotWalker{ids: map[*Node]int{}}
	n.walkDependencies(w)
	return w.edges.String()
}

func (n *Node) walkDependencies(w *dotWalker) {
	if n == nil {
		return
	}
	id := w.idOf(n)
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		fmt.Fprintf(&w.edges, "n%d -> n%d;\n", id, w.idOf(c))
		c.walkDependencies(w)
	}
}

// PrintLabels renders one Graphviz label line per node ("n0 [label=\"...\"];"),
// in the same node-id space PrintDependencies uses.
func (n *Node) PrintLabels() string {
	w := &dotWalker{ids: map[*Node]int{}}
	n.walkLabels(w)
	return w.labels.String()
}

func (n *Node) walkLabels(w *dotWalker) {
	if n == nil {
		return
	}
	id := w.idOf(n)
	text := n.Type.String()
	if l := n.leafLabel(); l != "" {
		text += " " + l
	}
	fmt.Fprintf(&w.labels, "n%d [label=%q];\n", id, text)
	for _, c := range n.Children {
		c.walkLabels(w)
	}
}

// Dot renders the full Graphviz source for n: a digraph with both labels and
// dependency edges.
func (n *Node) Dot() string {
	var b strings.Builder
	b.WriteString("digraph ast {\n")
	b.WriteString(n.PrintLabels())
	b.WriteString(n.PrintDependencies())
	b.WriteString("}\n")
	return b.String()
}
