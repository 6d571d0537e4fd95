package lang

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// treeSitterAdapter provides common tree-sitter parsing functionality shared
// by the grammar-backed adapters.
type treeSitterAdapter struct {
	language *sitter.Language
	lang     Language
}

// newTreeSitterAdapter wraps a grammar for the given language. It fails the
// capability check when the grammar pointer could not be loaded.
func newTreeSitterAdapter(language *sitter.Language, lang Language) (*treeSitterAdapter, error) {
	if language == nil {
		return nil, fmt.Errorf("grammar for %s not loaded", lang)
	}
	return &treeSitterAdapter{language: language, lang: lang}, nil
}

func (a *treeSitterAdapter) Language() Language {
	return a.lang
}

// parse runs the grammar over the unit and returns the syntax tree. The
// caller owns the tree and must Close it.
func (a *treeSitterAdapter) parse(unit SourceUnit) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(a.language); err != nil {
		return nil, &ParseError{File: unit.Path, Reason: fmt.Sprintf("set %s grammar: %v", a.lang, err)}
	}

	tree := parser.Parse(unit.Source, nil)
	if tree == nil {
		return nil, &ParseError{File: unit.Path, Reason: fmt.Sprintf("%s parse produced no tree", a.lang)}
	}
	return tree, nil
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// nodeLine returns the 1-indexed start line of a node.
func nodeLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for
// each node. Returning false from the visitor stops descent into that node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

// findChildByKind finds the first direct child with the given node kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByKind finds all direct children with the given node kind.
func findChildrenByKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// hasChildOfKind reports whether any direct child has the given kind.
func hasChildOfKind(node *sitter.Node, kind string) bool {
	return findChildByKind(node, kind) != nil
}
