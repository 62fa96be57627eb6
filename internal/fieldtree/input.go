package fieldtree

import (
	schema "github.com/autographql/autograph/internal/schema"
)

// BuildInputTree expands an operation's argument definitions into a
// Tree whose top-level nodes are the argument names. Each argument's
// declared type is unwrapped through any chain of Non-Null and List
// modifiers to its named type; input-object types recurse into their
// nested input fields, leaf types (scalars, enums) become leaves.
func BuildInputTree(args []*schema.InputValue, s *schema.Schema) (Tree, error) {
	return buildInputNodes(args, s, map[string]bool{})
}

func buildInputNodes(args []*schema.InputValue, s *schema.Schema, path map[string]bool) (Tree, error) {
	tree := make(Tree, 0, len(args))
	for _, arg := range args {
		if arg.Type == nil {
			return nil, schema.Errorf("argument %q has no type", arg.Name)
		}
		named := arg.Type.NamedTypeName()
		if named == "" {
			return nil, schema.Errorf("argument %q has no named type", arg.Name)
		}
		node := &Node{Name: arg.Name}
		if t := s.Types[named]; t != nil && t.IsInputObject() {
			if path[named] {
				return nil, schema.Errorf("input object %q is recursive", named)
			}
			path[named] = true
			children, err := buildInputNodes(t.InputFields, s, path)
			if err != nil {
				return nil, err
			}
			delete(path, named)
			node.Children = children
		}
		tree = append(tree, node)
	}
	return tree, nil
}
