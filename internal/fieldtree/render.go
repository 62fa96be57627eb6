package fieldtree

import "strings"

// rootDepth is the indentation depth of the outermost selection lines.
const rootDepth = 1

// RenderFragment renders a fragment tree as newline-separated,
// tab-indented GraphQL selection text. When the tree is polymorphic,
// each top-level node is a union member and gets the inline-fragment
// `... on ` prefix; the prefix is never applied at deeper levels.
func RenderFragment(tree Tree, polymorphic bool) string {
	return strings.Join(renderLines(tree, rootDepth, polymorphic), "\n")
}

func renderLines(tree Tree, depth int, polymorphic bool) []string {
	var lines []string
	indent := strings.Repeat("\t", depth)
	for _, node := range tree {
		prefix := ""
		if depth == rootDepth && polymorphic {
			prefix = "... on "
		}
		line := indent + prefix + node.Name
		if len(node.Children) == 0 {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, line+" {")
		lines = append(lines, renderLines(node.Children, depth+1, polymorphic)...)
		lines = append(lines, indent+"}")
	}
	return lines
}
