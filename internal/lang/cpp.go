package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
)

// cppAdapter extracts structure from C and C++ sources. Both languages share
// one implementation; the C++ grammar adds classes, namespaces, and
// templates, which the C walk simply never encounters.
//
// The walk is a manual recursive descent over the syntax tree rather than a
// tree-sitter query, so it survives grammar-version drift in node field
// names.
type cppAdapter struct {
	*treeSitterAdapter
	isCPP bool
}

// NewCPPAdapter creates the C++ adapter.
func NewCPPAdapter() (Adapter, error) {
	base, err := newTreeSitterAdapter(sitter.NewLanguage(cpp.Language()), LangCPP)
	if err != nil {
		return nil, err
	}
	return &cppAdapter{treeSitterAdapter: base, isCPP: true}, nil
}

// NewCAdapter creates the C adapter.
func NewCAdapter() (Adapter, error) {
	base, err := newTreeSitterAdapter(sitter.NewLanguage(c.Language()), LangC)
	if err != nil {
		return nil, err
	}
	return &cppAdapter{treeSitterAdapter: base, isCPP: false}, nil
}

// Extract walks the tree and emits functions, classes, namespaces, includes,
// and call sites. Broken constructs are skipped rather than failing the file.
func (a *cppAdapter) Extract(unit SourceUnit) (*Extraction, error) {
	tree, err := a.parse(unit)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	ext := &Extraction{File: unit.Path, Language: a.lang}
	root := tree.RootNode()
	source := unit.Source

	a.collectIncludes(root, source, ext)
	a.collectNamespaces(root, source, ext)
	a.collectFunctions(root, source, ext)
	a.collectClasses(root, source, ext)

	return ext, nil
}

func (a *cppAdapter) collectIncludes(root *sitter.Node, source []byte, ext *Extraction) {
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "preproc_include" {
			return true
		}
		var pathNode *sitter.Node
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(uint(i))
			if child.Kind() == "string_literal" || child.Kind() == "system_lib_string" {
				pathNode = child
				break
			}
		}
		if pathNode == nil {
			return true
		}
		path := nodeText(pathNode, source)
		isSystem := pathNode.Kind() == "system_lib_string" || strings.HasPrefix(path, "<")
		ext.Imports = append(ext.Imports, ImportRecord{
			Path:     strings.Trim(path, `<>"`),
			File:     ext.File,
			Line:     nodeLine(n),
			IsSystem: isSystem,
		})
		return true
	})
}

func (a *cppAdapter) collectNamespaces(root *sitter.Node, source []byte, ext *Extraction) {
	if !a.isCPP {
		return
	}
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "namespace_definition" {
			return true
		}
		name := nodeText(n.ChildByFieldName("name"), source)
		if name == "" {
			return true
		}
		depth := 0
		for p := n.Parent(); p != nil; p = p.Parent() {
			if p.Kind() == "namespace_definition" {
				depth++
			}
		}
		ext.Namespaces = append(ext.Namespaces, NamespaceRecord{
			Name:  name,
			File:  ext.File,
			Line:  nodeLine(n),
			Depth: depth,
		})
		return true
	})
}

func (a *cppAdapter) collectFunctions(root *sitter.Node, source []byte, ext *Extraction) {
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "function_definition" {
			return true
		}
		rec, ok := a.functionRecord(n, source, ext.File)
		if !ok {
			return true
		}
		ext.Functions = append(ext.Functions, rec)
		a.collectCalls(n, source, rec, ext)
		// Lambdas nested inside a body are attributed to the enclosing
		// function by the call walk, so don't descend again.
		return false
	})
}

// functionRecord extracts one function_definition. Returns false when no
// usable name could be recovered.
func (a *cppAdapter) functionRecord(n *sitter.Node, source []byte, file string) (FunctionRecord, bool) {
	declarator := a.findDeclarator(n)
	if declarator == nil {
		return FunctionRecord{}, false
	}

	name := a.declaratorName(declarator, source)
	if name == "" {
		return FunctionRecord{}, false
	}

	rec := FunctionRecord{
		File: file,
		Line: nodeLine(n),
	}

	// Out-of-line definitions carry the owner in the name itself
	// ("Calculator::add"). In-class definitions get it from the ancestry.
	if idx := strings.LastIndex(name, "::"); idx != -1 {
		rec.OwnerClass = name[:idx]
		rec.Name = name[idx+2:]
	} else {
		rec.Name = name
	}

	if ownerClass, private := a.enclosingClass(n, source); ownerClass != "" {
		rec.OwnerClass = ownerClass
		rec.Modifiers.IsPrivate = private
	}
	if rec.OwnerClass != "" {
		rec.QualifiedName = rec.OwnerClass + "::" + rec.Name
	}
	rec.OwnerNamespace = a.enclosingNamespace(n, source)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child.Kind() == "storage_class_specifier" && nodeText(child, source) == "static" {
			rec.Modifiers.IsStatic = true
		}
	}

	if a.isCPP {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if p.Kind() == "template_declaration" {
				rec.Modifiers.IsTemplate = true
				break
			}
		}
	}

	if params := findChildByKind(declarator, "parameter_list"); params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			if child.Kind() == "parameter_declaration" {
				rec.Params = append(rec.Params, nodeText(child, source))
			}
		}
	}

	return rec, true
}

// findDeclarator locates the function_declarator, unwrapping pointer and
// reference declarators around it.
func (a *cppAdapter) findDeclarator(n *sitter.Node) *sitter.Node {
	node := n.ChildByFieldName("declarator")
	for node != nil {
		switch node.Kind() {
		case "function_declarator":
			return node
		case "pointer_declarator", "reference_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return findChildByKind(n, "function_declarator")
		}
	}
	return findChildByKind(n, "function_declarator")
}

// declaratorName recovers the declared name from a function_declarator.
func (a *cppAdapter) declaratorName(declarator *sitter.Node, source []byte) string {
	if inner := declarator.ChildByFieldName("declarator"); inner != nil {
		switch inner.Kind() {
		case "identifier", "field_identifier", "qualified_identifier",
			"destructor_name", "operator_name":
			return nodeText(inner, source)
		}
	}
	for i := 0; i < int(declarator.ChildCount()); i++ {
		child := declarator.Child(uint(i))
		switch child.Kind() {
		case "identifier", "field_identifier", "qualified_identifier":
			return nodeText(child, source)
		}
	}
	return ""
}

// enclosingClass walks up to the owning class/struct, if any, and reports
// whether the member sits in a private access region. Classes default to
// private, structs to public.
func (a *cppAdapter) enclosingClass(n *sitter.Node, source []byte) (string, bool) {
	if !a.isCPP {
		return "", false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		kind := p.Kind()
		if kind == "class_specifier" || kind == "struct_specifier" {
			nameNode := findChildByKind(p, "type_identifier")
			if nameNode == nil {
				return "", false
			}
			private := kind == "class_specifier"
			if body := findChildByKind(p, "field_declaration_list"); body != nil {
				private = accessAt(body, n.StartByte(), source, private)
			}
			return nodeText(nameNode, source), private
		}
	}
	return "", false
}

// accessAt scans a class body in order, tracking access_specifier regions,
// and returns whether the region containing the member at targetStart is
// private. The initial value is the language default (class private, struct
// public).
func accessAt(body *sitter.Node, targetStart uint, source []byte, private bool) bool {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.StartByte() > targetStart {
			break
		}
		if child.Kind() == "access_specifier" {
			private = strings.Contains(nodeText(child, source), "private")
		}
	}
	return private
}

func (a *cppAdapter) enclosingNamespace(n *sitter.Node, source []byte) string {
	if !a.isCPP {
		return ""
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == "namespace_definition" {
			return nodeText(p.ChildByFieldName("name"), source)
		}
	}
	return ""
}

// collectCalls walks one function body and records every call expression,
// filtered through the builtin denylist.
func (a *cppAdapter) collectCalls(fn *sitter.Node, source []byte, caller FunctionRecord, ext *Extraction) {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return
	}
	walkTree(body, func(n *sitter.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		callee := a.calleeText(n, source)
		if callee == "" || cppBuiltins.contains(callee) {
			return true
		}
		ext.Calls = append(ext.Calls, CallSite{
			Caller: caller.NodeID(),
			Callee: callee,
			File:   ext.File,
			Line:   nodeLine(n),
		})
		return true
	})
}

// calleeText extracts the called name. Member calls (a.b(), a->b()) reduce
// to the member name so resolution can try class-qualified and bare lookups.
func (a *cppAdapter) calleeText(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		for i := 0; i < int(call.ChildCount()); i++ {
			child := call.Child(uint(i))
			switch child.Kind() {
			case "identifier", "qualified_identifier", "field_expression":
				fn = child
			}
			if fn != nil {
				break
			}
		}
	}
	if fn == nil {
		return ""
	}

	switch fn.Kind() {
	case "identifier":
		return nodeText(fn, source)
	case "qualified_identifier":
		return nodeText(fn, source)
	case "field_expression":
		if field := fn.ChildByFieldName("field"); field != nil {
			return nodeText(field, source)
		}
		text := nodeText(fn, source)
		if idx := strings.LastIndexAny(text, ".>"); idx != -1 {
			return text[idx+1:]
		}
		return text
	default:
		return ""
	}
}

func (a *cppAdapter) collectClasses(root *sitter.Node, source []byte, ext *Extraction) {
	if !a.isCPP {
		return
	}
	walkTree(root, func(n *sitter.Node) bool {
		kind := n.Kind()
		if kind != "class_specifier" && kind != "struct_specifier" {
			return true
		}
		nameNode := findChildByKind(n, "type_identifier")
		if nameNode == nil {
			return true
		}
		name := nodeText(nameNode, source)

		rec := ClassRecord{
			Name: name,
			File: ext.File,
			Line: nodeLine(n),
		}

		if baseClause := findChildByKind(n, "base_class_clause"); baseClause != nil {
			for i := 0; i < int(baseClause.ChildCount()); i++ {
				child := baseClause.Child(uint(i))
				if child.Kind() == "type_identifier" || child.Kind() == "qualified_identifier" {
					rec.Bases = append(rec.Bases, nodeText(child, source))
				}
			}
		}

		// Methods were already extracted by the function walk; copy the ones
		// this class owns so the resolver can index at class granularity.
		for _, fn := range ext.Functions {
			if fn.OwnerClass == name {
				rec.Methods = append(rec.Methods, fn)
			}
		}

		ext.Classes = append(ext.Classes, rec)
		return true
	})
}
