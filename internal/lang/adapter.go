package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Language identifies a supported source language.
type Language string

const (
	LangCPP        Language = "cpp"
	LangC          Language = "c"
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
)

// SourceUnit is one source file handed to an adapter. It is immutable and
// discarded after extraction.
type SourceUnit struct {
	Path     string
	Language Language
	Source   []byte
}

// Modifiers carries the classification flags extracted for a function.
type Modifiers struct {
	IsStatic   bool
	IsAsync    bool
	IsPrivate  bool
	IsTemplate bool
}

// FunctionRecord describes one declared function or method.
type FunctionRecord struct {
	Name           string // bare name
	QualifiedName  string // "Owner::name" when owned by a class, else ""
	File           string
	Line           int
	Params         []string
	Modifiers      Modifiers
	OwnerClass     string
	OwnerNamespace string
}

// NodeID returns the stable graph identity for the function: the qualified
// name when one exists, otherwise the bare name. Unqualified functions with
// the same bare name therefore collapse into one node downstream.
func (f FunctionRecord) NodeID() string {
	if f.QualifiedName != "" {
		return f.QualifiedName
	}
	return f.Name
}

// ClassRecord describes a class or struct declaration. Methods are also
// emitted as top-level FunctionRecords; the copies here exist so the symbol
// index can be built at both bare-name and class-qualified granularity.
type ClassRecord struct {
	Name    string
	File    string
	Line    int
	Methods []FunctionRecord
	Bases   []string
}

// CallSite is one call expression found inside a function body.
type CallSite struct {
	Caller string // node id of the containing function
	Callee string // callee text as written (method calls reduced to the member name)
	File   string
	Line   int
}

// NamespaceRecord describes a namespace (or module-level scope) declaration.
type NamespaceRecord struct {
	Name  string
	File  string
	Line  int
	Depth int
}

// ImportRecord describes an import or include directive.
type ImportRecord struct {
	Path     string
	Alias    string
	File     string
	Line     int
	IsSystem bool
}

// Extraction is the normalized structural record set an adapter produces for
// one source unit.
type Extraction struct {
	File       string
	Language   Language
	Functions  []FunctionRecord
	Classes    []ClassRecord
	Calls      []CallSite
	Namespaces []NamespaceRecord
	Imports    []ImportRecord
}

// ParseError reports a file whose structure could not be extracted at all.
// It is non-fatal to a project scan.
type ParseError struct {
	File   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.File, e.Reason)
}

// Adapter converts one source file's text into the common record set.
// Adapters are stateless and safe for concurrent use; each Extract call owns
// its own parser instance.
type Adapter interface {
	Language() Language
	Extract(unit SourceUnit) (*Extraction, error)
}

// DetectionPriority is the default language precedence for mixed projects:
// compiled systems languages first, then semicolon-delimited scripting, then
// indentation-based scripting.
var DetectionPriority = []Language{LangCPP, LangC, LangGo, LangTypeScript, LangJavaScript, LangPython}

// Registry maps file extensions to adapters. Adapters register through a
// capability check: a language whose grammar is unavailable registers nothing
// and contributes a warning instead of failing the scan.
type Registry struct {
	byExt    map[string]Adapter
	byLang   map[Language]Adapter
	priority []Language
	warnings []string
}

// extensions owned by each language, in registration order.
var extensionTable = map[Language][]string{
	LangCPP:        {".cpp", ".cc", ".cxx", ".hpp", ".hh"},
	LangC:          {".c", ".h"},
	LangGo:         {".go"},
	LangTypeScript: {".ts", ".tsx"},
	LangJavaScript: {".js", ".jsx"},
	LangPython:     {".py"},
}

// Extensions returns the file extensions owned by a language.
func Extensions(l Language) []string {
	return extensionTable[l]
}

// NewRegistry builds the default registry with every available adapter.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:    make(map[string]Adapter),
		byLang:   make(map[Language]Adapter),
		priority: DetectionPriority,
	}

	r.register(LangCPP, func() (Adapter, error) { return NewCPPAdapter() })
	r.register(LangC, func() (Adapter, error) { return NewCAdapter() })
	r.register(LangGo, func() (Adapter, error) { return NewGoAdapter(), nil })
	r.register(LangTypeScript, func() (Adapter, error) { return NewTypeScriptAdapter() })
	r.register(LangJavaScript, func() (Adapter, error) { return NewJavaScriptAdapter(), nil })
	r.register(LangPython, func() (Adapter, error) { return NewPythonAdapter() })

	return r
}

func (r *Registry) register(l Language, build func() (Adapter, error)) {
	a, err := build()
	if err != nil {
		r.warnings = append(r.warnings, fmt.Sprintf("%s support unavailable: %v", l, err))
		return
	}
	r.byLang[l] = a
	for _, ext := range extensionTable[l] {
		r.byExt[ext] = a
	}
}

// SetPriority replaces the detection order. Unknown names are ignored so a
// config typo degrades to the default order for the languages it misses.
func (r *Registry) SetPriority(names []string) {
	var p []Language
	seen := make(map[Language]bool)
	for _, name := range names {
		l, err := ParseLanguageTag(name)
		if err != nil || seen[l] {
			continue
		}
		seen[l] = true
		p = append(p, l)
	}
	for _, l := range DetectionPriority {
		if !seen[l] {
			p = append(p, l)
		}
	}
	r.priority = p
}

// ForExtension returns the adapter owning ext (including the leading dot).
func (r *Registry) ForExtension(ext string) (Adapter, bool) {
	a, ok := r.byExt[strings.ToLower(ext)]
	return a, ok
}

// ForLanguage returns the adapter for a language tag.
func (r *Registry) ForLanguage(l Language) (Adapter, bool) {
	a, ok := r.byLang[l]
	return a, ok
}

// Warnings reports languages that failed the capability check.
func (r *Registry) Warnings() []string {
	return r.warnings
}

// Detect picks the highest-priority language among the extensions present.
// Mixed-language projects are analyzed as that single language only.
func (r *Registry) Detect(extensions map[string]int) (Language, bool) {
	present := make(map[Language]bool)
	for ext := range extensions {
		if a, ok := r.ForExtension(ext); ok {
			present[a.Language()] = true
		}
	}
	for _, l := range r.priority {
		if present[l] {
			return l, true
		}
	}
	return "", false
}

// Languages lists registered languages in priority order.
func (r *Registry) Languages() []Language {
	var out []Language
	for _, l := range r.priority {
		if _, ok := r.byLang[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// ParseLanguageTag maps a user-facing language tag ("c++", "py", "golang")
// onto a Language.
func ParseLanguageTag(tag string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "cpp", "c++", "cxx":
		return LangCPP, nil
	case "c":
		return LangC, nil
	case "go", "golang":
		return LangGo, nil
	case "ts", "typescript":
		return LangTypeScript, nil
	case "js", "javascript":
		return LangJavaScript, nil
	case "py", "python":
		return LangPython, nil
	default:
		return "", fmt.Errorf("unknown language tag %q", tag)
	}
}

// SnippetFileName returns the synthetic path used when analyzing a raw
// snippet of the given language.
func SnippetFileName(l Language) string {
	exts, ok := extensionTable[l]
	if !ok || len(exts) == 0 {
		return "snippet.txt"
	}
	return "snippet" + exts[0]
}

// KnownExtensions returns every registered extension, sorted.
func (r *Registry) KnownExtensions() []string {
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
