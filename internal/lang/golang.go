package lang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
)

// goAdapter extracts Go structure with the standard library parser. The
// native AST is cheaper and more precise than a grammar binding here, so Go
// is the one language that does not go through tree-sitter.
type goAdapter struct{}

// NewGoAdapter creates the Go adapter.
func NewGoAdapter() Adapter {
	return &goAdapter{}
}

func (a *goAdapter) Language() Language {
	return LangGo
}

func (a *goAdapter) Extract(unit SourceUnit) (*Extraction, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, unit.Path, unit.Source, 0)
	if err != nil {
		return nil, &ParseError{File: unit.Path, Reason: err.Error()}
	}

	ext := &Extraction{File: unit.Path, Language: LangGo}

	for _, imp := range file.Imports {
		rec := ImportRecord{
			Path: strings.Trim(imp.Path.Value, `"`),
			File: unit.Path,
			Line: fset.Position(imp.Pos()).Line,
		}
		if imp.Name != nil {
			rec.Alias = imp.Name.Name
		}
		ext.Imports = append(ext.Imports, rec)
	}

	// Package-level declarations only; function-scoped types don't
	// participate in the call graph.
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok == token.TYPE {
				for _, spec := range d.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok {
						a.extractType(ts, fset, unit.Path, ext)
					}
				}
			}
		case *ast.FuncDecl:
			a.extractFunction(d, fset, unit.Path, ext)
		}
	}

	// Attach methods to their receiver's class record after both passes.
	for i := range ext.Classes {
		for _, fn := range ext.Functions {
			if fn.OwnerClass == ext.Classes[i].Name {
				ext.Classes[i].Methods = append(ext.Classes[i].Methods, fn)
			}
		}
	}

	return ext, nil
}

func (a *goAdapter) extractType(ts *ast.TypeSpec, fset *token.FileSet, path string, ext *Extraction) {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return
	}

	rec := ClassRecord{
		Name: ts.Name.Name,
		File: path,
		Line: fset.Position(ts.Pos()).Line,
	}

	// Embedded fields act as bases for the purposes of the graph.
	if st.Fields != nil {
		for _, field := range st.Fields.List {
			if len(field.Names) == 0 {
				if name := embeddedTypeName(field.Type); name != "" {
					rec.Bases = append(rec.Bases, name)
				}
			}
		}
	}

	ext.Classes = append(ext.Classes, rec)
}

func (a *goAdapter) extractFunction(decl *ast.FuncDecl, fset *token.FileSet, path string, ext *Extraction) {
	name := decl.Name.Name

	rec := FunctionRecord{
		Name: name,
		File: path,
		Line: fset.Position(decl.Pos()).Line,
	}
	rec.Modifiers.IsPrivate = !isExportedName(name)
	rec.Modifiers.IsTemplate = decl.Type.TypeParams != nil && len(decl.Type.TypeParams.List) > 0

	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		recv := receiverTypeName(decl.Recv.List[0].Type)
		rec.OwnerClass = recv
		rec.QualifiedName = recv + "::" + name
	}

	if decl.Type.Params != nil {
		for _, field := range decl.Type.Params.List {
			if len(field.Names) == 0 {
				rec.Params = append(rec.Params, "_")
				continue
			}
			for _, n := range field.Names {
				rec.Params = append(rec.Params, n.Name)
			}
		}
	}

	ext.Functions = append(ext.Functions, rec)

	if decl.Body != nil {
		a.extractCalls(decl.Body, rec.NodeID(), fset, path, ext)
	}
}

func (a *goAdapter) extractCalls(body *ast.BlockStmt, caller string, fset *token.FileSet, path string, ext *Extraction) {
	ast.Inspect(body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		var callee string
		switch fun := call.Fun.(type) {
		case *ast.Ident:
			callee = fun.Name
		case *ast.SelectorExpr:
			// obj.Method() or pkg.Function() reduces to the selector
			// name; the resolver decides which definition it binds to.
			callee = fun.Sel.Name
		default:
			return true
		}

		if callee == "" || goBuiltins.contains(callee) {
			return true
		}

		ext.Calls = append(ext.Calls, CallSite{
			Caller: caller,
			Callee: callee,
			File:   path,
			Line:   fset.Position(call.Pos()).Line,
		})
		return true
	})
}

// receiverTypeName unwraps pointer and generic receivers down to the type
// identifier.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return "unknown"
}

func embeddedTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

func isExportedName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}
