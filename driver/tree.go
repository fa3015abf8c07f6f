package driver

import (
	"fmt"
	"io"
)

// Node is one node of a parse tree. Leaves carry the shifted token (or the
// empty marker for an empty reduction); inner nodes carry the non-terminal
// they were reduced to. Children are exclusively owned by their parent, so
// the tree is safe to walk and mutate without aliasing concerns.
type Node struct {
	Symbol   string  `json:"symbol"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// PrintTree writes a ruled-line rendering of the tree to w.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	fmt.Fprintf(w, "%v%v\n", ruledLine, node.Symbol)

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
