// Package fieldtree builds and renders the structural naming trees the
// template engine derives from a schema: the input tree (shape of an
// operation's arguments) and the fragment tree (shape of its response
// selection set). A tree node keeps only names and nesting; wrapper
// semantics (Non-Null, List) are unwrapped away during construction and
// never appear in the tree.
package fieldtree

// Tree is an ordered list of named nodes. Order is significant: it
// determines the order of the rendered text. Trees are built once per
// operation and never mutated afterwards.
type Tree []*Node

// Node is one named entry; a leaf has no children.
type Node struct {
	Name     string
	Children Tree
}

// Names returns the top-level node names in order.
func (t Tree) Names() []string {
	out := make([]string, len(t))
	for i, n := range t {
		out[i] = n.Name
	}
	return out
}
