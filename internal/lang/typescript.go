package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// tsAdapter extracts structure from TypeScript sources (.ts and .tsx).
type tsAdapter struct {
	*treeSitterAdapter
	tsx *sitter.Language
}

// NewTypeScriptAdapter creates the TypeScript adapter. TSX files are parsed
// with the TSX grammar variant of the same package.
func NewTypeScriptAdapter() (Adapter, error) {
	base, err := newTreeSitterAdapter(sitter.NewLanguage(typescript.LanguageTypescript()), LangTypeScript)
	if err != nil {
		return nil, err
	}
	tsx := sitter.NewLanguage(typescript.LanguageTSX())
	return &tsAdapter{treeSitterAdapter: base, tsx: tsx}, nil
}

func (a *tsAdapter) Extract(unit SourceUnit) (*Extraction, error) {
	grammar := a.language
	if strings.HasSuffix(strings.ToLower(unit.Path), ".tsx") && a.tsx != nil {
		grammar = a.tsx
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, &ParseError{File: unit.Path, Reason: err.Error()}
	}
	tree := parser.Parse(unit.Source, nil)
	if tree == nil {
		return nil, &ParseError{File: unit.Path, Reason: "typescript parse produced no tree"}
	}
	defer tree.Close()

	ext := &Extraction{File: unit.Path, Language: LangTypeScript}
	root := tree.RootNode()
	source := unit.Source

	a.collectImports(root, source, ext)

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_declaration":
			rec, ok := a.functionRecord(n, source, ext.File, "")
			if !ok {
				return true
			}
			ext.Functions = append(ext.Functions, rec)
			a.collectCalls(n.ChildByFieldName("body"), source, rec.NodeID(), ext)
			return false
		case "class_declaration":
			a.extractClass(n, source, ext)
			return false
		case "lexical_declaration", "variable_declaration":
			a.extractArrowConsts(n, source, ext)
			return false
		}
		return true
	})

	return ext, nil
}

func (a *tsAdapter) collectImports(root *sitter.Node, source []byte, ext *Extraction) {
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "import_statement" {
			return true
		}
		if src := n.ChildByFieldName("source"); src != nil {
			ext.Imports = append(ext.Imports, ImportRecord{
				Path: strings.Trim(nodeText(src, source), `'"`),
				File: ext.File,
				Line: nodeLine(n),
			})
		}
		return true
	})
}

func (a *tsAdapter) functionRecord(n *sitter.Node, source []byte, file, owner string) (FunctionRecord, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return FunctionRecord{}, false
	}
	name := nodeText(nameNode, source)

	rec := FunctionRecord{
		Name:       name,
		File:       file,
		Line:       nodeLine(n),
		OwnerClass: owner,
	}
	if owner != "" {
		rec.QualifiedName = owner + "::" + name
	}
	rec.Modifiers.IsAsync = hasChildOfKind(n, "async")
	rec.Modifiers.IsPrivate = strings.HasPrefix(name, "#") || strings.HasPrefix(name, "_")

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			switch child.Kind() {
			case "required_parameter", "optional_parameter":
				if pat := child.ChildByFieldName("pattern"); pat != nil {
					rec.Params = append(rec.Params, nodeText(pat, source))
				}
			case "identifier":
				rec.Params = append(rec.Params, nodeText(child, source))
			}
		}
	}

	return rec, true
}

func (a *tsAdapter) extractClass(n *sitter.Node, source []byte, ext *Extraction) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := nodeText(nameNode, source)

	rec := ClassRecord{
		Name: className,
		File: ext.File,
		Line: nodeLine(n),
	}

	if heritage := findChildByKind(n, "class_heritage"); heritage != nil {
		walkTree(heritage, func(h *sitter.Node) bool {
			if h.Kind() == "identifier" {
				rec.Bases = append(rec.Bases, nodeText(h, source))
			}
			return true
		})
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			member := body.Child(uint(i))
			if member.Kind() != "method_definition" {
				continue
			}
			method, ok := a.methodRecord(member, source, ext.File, className)
			if !ok {
				continue
			}
			rec.Methods = append(rec.Methods, method)
			ext.Functions = append(ext.Functions, method)
			a.collectCalls(member.ChildByFieldName("body"), source, method.NodeID(), ext)
		}
	}

	ext.Classes = append(ext.Classes, rec)
}

func (a *tsAdapter) methodRecord(n *sitter.Node, source []byte, file, owner string) (FunctionRecord, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return FunctionRecord{}, false
	}
	name := nodeText(nameNode, source)

	rec := FunctionRecord{
		Name:          name,
		QualifiedName: owner + "::" + name,
		File:          file,
		Line:          nodeLine(n),
		OwnerClass:    owner,
	}
	rec.Modifiers.IsAsync = hasChildOfKind(n, "async")
	rec.Modifiers.IsStatic = hasChildOfKind(n, "static")
	rec.Modifiers.IsPrivate = strings.HasPrefix(name, "#")
	if mod := findChildByKind(n, "accessibility_modifier"); mod != nil {
		rec.Modifiers.IsPrivate = rec.Modifiers.IsPrivate || nodeText(mod, source) == "private"
	}

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			if child.Kind() == "required_parameter" || child.Kind() == "optional_parameter" {
				if pat := child.ChildByFieldName("pattern"); pat != nil {
					rec.Params = append(rec.Params, nodeText(pat, source))
				}
			}
		}
	}

	return rec, true
}

// extractArrowConsts treats `const f = (..) => ..` and
// `const f = function (..) {..}` as function declarations, the dominant
// declaration style in modern TS codebases.
func (a *tsAdapter) extractArrowConsts(n *sitter.Node, source []byte, ext *Extraction) {
	for _, decl := range findChildrenByKind(n, "variable_declarator") {
		nameNode := decl.ChildByFieldName("name")
		valueNode := decl.ChildByFieldName("value")
		if nameNode == nil || valueNode == nil {
			continue
		}
		kind := valueNode.Kind()
		if kind != "arrow_function" && kind != "function_expression" && kind != "function" {
			continue
		}

		rec := FunctionRecord{
			Name: nodeText(nameNode, source),
			File: ext.File,
			Line: nodeLine(decl),
		}
		rec.Modifiers.IsAsync = hasChildOfKind(valueNode, "async")
		rec.Modifiers.IsPrivate = strings.HasPrefix(rec.Name, "_")

		ext.Functions = append(ext.Functions, rec)
		a.collectCalls(valueNode.ChildByFieldName("body"), source, rec.NodeID(), ext)
	}
}

// collectCalls records calls in a body node. Member calls reduce to the
// property name.
func (a *tsAdapter) collectCalls(body *sitter.Node, source []byte, caller string, ext *Extraction) {
	if body == nil {
		return
	}
	walkTree(body, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		fnNode := n.ChildByFieldName("function")
		if fnNode == nil {
			return true
		}
		var callee string
		switch fnNode.Kind() {
		case "identifier":
			callee = nodeText(fnNode, source)
		case "member_expression":
			if prop := fnNode.ChildByFieldName("property"); prop != nil {
				callee = nodeText(prop, source)
			}
		}
		if callee == "" || tsBuiltins.contains(callee) {
			return true
		}
		ext.Calls = append(ext.Calls, CallSite{
			Caller: caller,
			Callee: callee,
			File:   ext.File,
			Line:   nodeLine(n),
		})
		return true
	})
}
