package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Children returns all children of n, named or not.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildren returns the named children of n.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenOfType returns the direct children of n with the given node type.
func ChildrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range Children(n) {
		if c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfType returns the first direct child of n with the given type.
func FirstChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range Children(n) {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

// HasChildToken reports whether n has an anonymous child token with the
// given text, such as "default" or "*".
func HasChildToken(n *sitter.Node, tok string) bool {
	for _, c := range Children(n) {
		if !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's subtree.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := int(cur.NamedChildCount()) - 1; i >= 0; i-- {
			if c := cur.NamedChild(i); c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// Unquote strips one pair of matching string delimiters.
func Unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && strings.ContainsRune("'\"`", rune(first)) {
			return s[1 : len(s)-1]
		}
	}
	return s
}
