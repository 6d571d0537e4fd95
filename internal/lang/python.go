package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonAdapter extracts structure from Python sources.
type pythonAdapter struct {
	*treeSitterAdapter
}

// NewPythonAdapter creates the Python adapter.
func NewPythonAdapter() (Adapter, error) {
	base, err := newTreeSitterAdapter(sitter.NewLanguage(python.Language()), LangPython)
	if err != nil {
		return nil, err
	}
	return &pythonAdapter{treeSitterAdapter: base}, nil
}

// Extract walks the module tree: top-level functions, classes with their
// methods, imports, and per-function call sites.
func (a *pythonAdapter) Extract(unit SourceUnit) (*Extraction, error) {
	tree, err := a.parse(unit)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	ext := &Extraction{File: unit.Path, Language: LangPython}
	root := tree.RootNode()
	source := unit.Source

	a.collectImports(root, source, ext)

	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_definition":
			a.extractClass(n, source, ext)
			return false // methods handled inside
		case "decorated_definition":
			def, deco := unwrapDecorated(n)
			if def == nil {
				return false
			}
			if def.Kind() == "class_definition" {
				a.extractClass(def, source, ext)
				return false
			}
			rec, ok := a.functionRecord(def, source, ext.File, "")
			if !ok {
				return false
			}
			applyPythonDecorators(&rec, deco, source)
			ext.Functions = append(ext.Functions, rec)
			a.collectCalls(def, source, rec.NodeID(), ext)
			return false
		case "function_definition":
			rec, ok := a.functionRecord(n, source, ext.File, "")
			if !ok {
				return true
			}
			ext.Functions = append(ext.Functions, rec)
			a.collectCalls(n, source, rec.NodeID(), ext)
			return false // nested defs attributed to the outer function
		}
		return true
	})

	return ext, nil
}

func (a *pythonAdapter) collectImports(root *sitter.Node, source []byte, ext *Extraction) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			module := n.ChildByFieldName("module_name")
			if module == nil {
				module = findChildByKind(n, "dotted_name")
			}
			if module != nil {
				ext.Imports = append(ext.Imports, ImportRecord{
					Path: nodeText(module, source),
					File: ext.File,
					Line: nodeLine(n),
				})
			}
		}
		return true
	})
}

func (a *pythonAdapter) extractClass(n *sitter.Node, source []byte, ext *Extraction) {
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

	if args := n.ChildByFieldName("superclasses"); args != nil {
		for i := 0; i < int(args.ChildCount()); i++ {
			child := args.Child(uint(i))
			if child.Kind() == "identifier" || child.Kind() == "attribute" {
				rec.Bases = append(rec.Bases, nodeText(child, source))
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(uint(i))
			fn, deco := unwrapDecorated(child)
			if fn == nil || fn.Kind() != "function_definition" {
				continue
			}
			method, ok := a.functionRecord(fn, source, ext.File, className)
			if !ok {
				continue
			}
			applyPythonDecorators(&method, deco, source)
			rec.Methods = append(rec.Methods, method)
			ext.Functions = append(ext.Functions, method)
			a.collectCalls(fn, source, method.NodeID(), ext)
		}
	}

	ext.Classes = append(ext.Classes, rec)
}

// unwrapDecorated peels a decorated_definition, returning the inner
// definition and its decorator nodes.
func unwrapDecorated(n *sitter.Node) (*sitter.Node, []*sitter.Node) {
	if n.Kind() != "decorated_definition" {
		return n, nil
	}
	decorators := findChildrenByKind(n, "decorator")
	if def := n.ChildByFieldName("definition"); def != nil {
		return def, decorators
	}
	return nil, nil
}

func applyPythonDecorators(rec *FunctionRecord, decorators []*sitter.Node, source []byte) {
	for _, d := range decorators {
		text := strings.TrimPrefix(nodeText(d, source), "@")
		switch {
		case text == "staticmethod" || text == "classmethod":
			rec.Modifiers.IsStatic = true
		}
	}
}

func (a *pythonAdapter) functionRecord(n *sitter.Node, source []byte, file, owner string) (FunctionRecord, bool) {
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

	// Leading-underscore names are private by convention (dunders included).
	rec.Modifiers.IsPrivate = strings.HasPrefix(name, "_")
	rec.Modifiers.IsAsync = hasChildOfKind(n, "async")

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			switch child.Kind() {
			case "identifier":
				rec.Params = append(rec.Params, nodeText(child, source))
			case "typed_parameter", "default_parameter", "typed_default_parameter":
				if id := findChildByKind(child, "identifier"); id != nil {
					rec.Params = append(rec.Params, nodeText(id, source))
				}
			}
		}
	}

	return rec, true
}

// collectCalls records calls in one function body. Attribute calls (a.b())
// reduce to the attribute name, matching how method names are qualified.
func (a *pythonAdapter) collectCalls(fn *sitter.Node, source []byte, caller string, ext *Extraction) {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return
	}
	walkTree(body, func(n *sitter.Node) bool {
		if n.Kind() != "call" {
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
		case "attribute":
			if attr := fnNode.ChildByFieldName("attribute"); attr != nil {
				callee = nodeText(attr, source)
			}
		}
		if callee == "" || pythonBuiltins.contains(callee) {
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
