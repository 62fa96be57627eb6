package fieldtree

import (
	names "github.com/autographql/autograph/internal/names"
	schema "github.com/autographql/autograph/internal/schema"
)

// BuildResponseTree expands an operation's response type into a Tree.
// The reference is unwrapped through Non-Null and List modifiers to its
// named type. A plain composite type yields one node per declared
// field; a union or interface instead yields one top-level node per
// concrete member type, keyed by the member's type name, so the
// renderer can emit inline fragments. The returned bool reports that
// polymorphic case.
func BuildResponseTree(ref *schema.TypeRef, s *schema.Schema) (Tree, bool, error) {
	if ref == nil {
		return nil, false, schema.Errorf("operation has no response type")
	}
	named := ref.NamedTypeName()
	t := s.Types[named]
	if t == nil {
		return nil, false, schema.Errorf("unknown response type %q", named)
	}
	if t.IsAbstract() {
		tree := make(Tree, 0, len(t.PossibleTypes))
		for _, memberName := range t.PossibleTypes {
			member := s.Types[memberName]
			if member == nil {
				return nil, false, schema.Errorf("unknown member type %q of %q", memberName, named)
			}
			children, err := expandComposite(member, s, map[string]bool{named: true})
			if err != nil {
				return nil, false, err
			}
			tree = append(tree, &Node{Name: memberName, Children: children})
		}
		return tree, true, nil
	}
	if t.IsLeaf() {
		return Tree{}, false, nil
	}
	children, err := expandComposite(t, s, map[string]bool{})
	if err != nil {
		return nil, false, err
	}
	return children, false, nil
}

// expandComposite expands a composite type's declared fields in order,
// unwrapping each field's modifiers to its element type. Abstract field
// types deeper than the root get no inline-fragment fan-out: an
// interface expands its own declared fields, a union becomes a leaf.
// A named object type revisited along the current expansion path fails
// fast instead of recursing forever.
func expandComposite(t *schema.Type, s *schema.Schema, path map[string]bool) (Tree, error) {
	if path[t.Name] {
		return nil, schema.Errorf("response type %q is recursive", t.Name)
	}
	path[t.Name] = true
	defer delete(path, t.Name)

	tree := make(Tree, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.Type == nil {
			return nil, schema.Errorf("field %q of %q has no type", f.Name, t.Name)
		}
		named := f.Type.NamedTypeName()
		ft := s.Types[named]
		if ft == nil {
			return nil, schema.Errorf("field %q of %q has unknown type %q", f.Name, t.Name, named)
		}
		node := &Node{Name: names.ToCamelCase(f.Name)}
		if !ft.IsLeaf() && len(ft.Fields) > 0 {
			children, err := expandComposite(ft, s, path)
			if err != nil {
				return nil, err
			}
			node.Children = children
		}
		tree = append(tree, node)
	}
	return tree, nil
}
