package lang

import (
	"regexp"
	"strings"
)

// jsAdapter extracts JavaScript structure with lexical pattern matching
// instead of a syntax tree. This fallback recognizes the common declaration
// and call shapes only; it is lossy by design and misses anything the
// patterns below don't describe (IIFEs, computed members, object-literal
// methods, generators declared in unusual positions).
type jsAdapter struct{}

// NewJavaScriptAdapter creates the regex-based JavaScript adapter.
func NewJavaScriptAdapter() Adapter {
	return &jsAdapter{}
}

func (a *jsAdapter) Language() Language {
	return LangJavaScript
}

var (
	jsFuncDecl  = regexp.MustCompile(`(?m)(async\s+)?function\s+([A-Za-z_$][\w$]*)\s*\(`)
	jsArrowDecl = regexp.MustCompile(`(?m)(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s*)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)
	jsFuncExpr  = regexp.MustCompile(`(?m)(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?function\b`)
	jsClassDecl = regexp.MustCompile(`(?m)class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([A-Za-z_$][\w$.]*))?`)
	jsMethod    = regexp.MustCompile(`(?m)^\s*(static\s+)?(async\s+)?(#?[A-Za-z_$][\w$]*)\s*\([^)]*\)\s*\{`)
	jsImport    = regexp.MustCompile(`(?m)import\s+(?:\{[^}]*\}|[\w$*,\s]+)\s+from\s+['"]([^'"]+)['"]`)
	jsCall      = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\s*\(`)
)

var jsKeywords = newNameSet(
	"if", "for", "while", "switch", "catch", "return", "function", "typeof",
	"new", "do", "else", "throw", "await", "yield", "in", "of", "delete",
	"void", "constructor", "super",
)

// Extract runs the lexical pass. It cannot fail other than on empty input;
// whatever the patterns recognize is returned.
func (a *jsAdapter) Extract(unit SourceUnit) (*Extraction, error) {
	ext := &Extraction{File: unit.Path, Language: LangJavaScript}
	raw := string(unit.Source)

	// Imports come from the raw text; the stripper below blanks string
	// contents and would erase the module path.
	for _, m := range jsImport.FindAllStringSubmatchIndex(raw, -1) {
		ext.Imports = append(ext.Imports, ImportRecord{
			Path: raw[m[2]:m[3]],
			File: unit.Path,
			Line: lineAt(raw, m[0]),
		})
	}

	src := stripJSComments(raw)

	classSpans := a.collectClasses(src, unit.Path, ext)

	a.collectFunctions(src, unit.Path, classSpans, ext)

	return ext, nil
}

type span struct{ start, end int }

func (s span) contains(off int) bool { return off >= s.start && off < s.end }

// collectClasses finds class declarations, then method-shaped lines inside
// each class body.
func (a *jsAdapter) collectClasses(src, file string, ext *Extraction) []span {
	var spans []span
	for _, m := range jsClassDecl.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		bodyStart := strings.IndexByte(src[m[0]:], '{')
		if bodyStart == -1 {
			continue
		}
		bodyStart += m[0]
		bodyEnd := matchBrace(src, bodyStart)
		spans = append(spans, span{bodyStart, bodyEnd})

		rec := ClassRecord{
			Name: name,
			File: file,
			Line: lineAt(src, m[0]),
		}
		if m[4] != -1 {
			rec.Bases = append(rec.Bases, src[m[4]:m[5]])
		}

		body := src[bodyStart:bodyEnd]
		for _, mm := range jsMethod.FindAllStringSubmatchIndex(body, -1) {
			mName := body[mm[6]:mm[7]]
			if jsKeywords.contains(mName) {
				continue
			}
			method := FunctionRecord{
				Name:          mName,
				QualifiedName: name + "::" + mName,
				File:          file,
				Line:          lineAt(src, bodyStart+mm[0]+leadingSpace(body[mm[0]:])),
				OwnerClass:    name,
			}
			method.Modifiers.IsStatic = mm[2] != -1
			method.Modifiers.IsAsync = mm[4] != -1
			method.Modifiers.IsPrivate = strings.HasPrefix(mName, "#") || strings.HasPrefix(mName, "_")

			rec.Methods = append(rec.Methods, method)
			ext.Functions = append(ext.Functions, method)

			mBodyStart := strings.IndexByte(body[mm[0]:], '{')
			if mBodyStart == -1 {
				continue
			}
			mBodyStart += bodyStart + mm[0]
			mBodyEnd := matchBrace(src, mBodyStart)
			a.collectCalls(src, mBodyStart, mBodyEnd, method.NodeID(), file, ext)
		}

		ext.Classes = append(ext.Classes, rec)
	}
	return spans
}

// collectFunctions finds free functions (declarations, arrows, and function
// expressions bound to const/let/var) outside class bodies.
func (a *jsAdapter) collectFunctions(src, file string, classSpans []span, ext *Extraction) {
	type decl struct {
		name    string
		offset  int
		isAsync bool
	}
	var decls []decl

	for _, m := range jsFuncDecl.FindAllStringSubmatchIndex(src, -1) {
		decls = append(decls, decl{src[m[4]:m[5]], m[0], m[2] != -1})
	}
	for _, m := range jsArrowDecl.FindAllStringSubmatchIndex(src, -1) {
		decls = append(decls, decl{src[m[2]:m[3]], m[0], m[4] != -1})
	}
	for _, m := range jsFuncExpr.FindAllStringSubmatchIndex(src, -1) {
		decls = append(decls, decl{src[m[2]:m[3]], m[0], m[4] != -1})
	}

	seen := make(map[string]bool)
	for _, d := range decls {
		inClass := false
		for _, s := range classSpans {
			if s.contains(d.offset) {
				inClass = true
				break
			}
		}
		if inClass || seen[d.name] || jsKeywords.contains(d.name) {
			continue
		}
		seen[d.name] = true

		rec := FunctionRecord{
			Name: d.name,
			File: file,
			Line: lineAt(src, d.offset),
		}
		rec.Modifiers.IsAsync = d.isAsync
		rec.Modifiers.IsPrivate = strings.HasPrefix(d.name, "_")
		ext.Functions = append(ext.Functions, rec)

		bodyStart := strings.IndexByte(src[d.offset:], '{')
		if bodyStart == -1 {
			continue
		}
		bodyStart += d.offset
		bodyEnd := matchBrace(src, bodyStart)
		a.collectCalls(src, bodyStart, bodyEnd, rec.NodeID(), file, ext)
	}
}

// collectCalls scans a body span for call-shaped tokens. A name preceded by
// '.' is a member call and reduces to the member name.
func (a *jsAdapter) collectCalls(src string, start, end int, caller, file string, ext *Extraction) {
	if start < 0 || end <= start || end > len(src) {
		return
	}
	body := src[start:end]
	for _, m := range jsCall.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		if jsKeywords.contains(name) || jsBuiltins.contains(name) {
			continue
		}
		abs := start + m[2]
		// Skip nested declarations matched as calls ("function foo(").
		before := strings.TrimRight(src[:abs], " \t")
		if strings.HasSuffix(before, "function") {
			continue
		}
		ext.Calls = append(ext.Calls, CallSite{
			Caller: caller,
			Callee: name,
			File:   file,
			Line:   lineAt(src, abs),
		})
	}
}

// stripJSComments blanks out // and /* */ comments and string contents while
// preserving byte offsets and line breaks, so later matches report correct
// lines and string literals cannot fake declarations.
func stripJSComments(src string) string {
	out := []byte(src)
	i := 0
	for i < len(out) {
		c := out[i]
		switch {
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			for i < len(out) {
				if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
					out[i], out[i+1] = ' ', ' '
					i += 2
					break
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
		case c == '\'' || c == '"' || c == '`':
			quote := c
			i++
			for i < len(out) && out[i] != quote {
				if out[i] == '\\' {
					i++
				}
				if i < len(out) && out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < len(out) {
				i++
			}
		default:
			i++
		}
	}
	return string(out)
}

// matchBrace returns the offset just past the brace matching the one at
// open, or len(src) when unbalanced (truncated input).
func matchBrace(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(src)
}

func lineAt(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n") + 1
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
