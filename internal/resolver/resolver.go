package resolver

import (
	"strings"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/lang"
)

// Resolution is one call site mapped to a callee node id, or left
// unresolved when no declaration matches.
type Resolution struct {
	Caller     string
	Callee     string // node id, empty when unresolved
	Unresolved string // original callee text, set only when unresolved
	File       string
	Line       int
}

// Resolved reports whether the call site found a target.
func (r Resolution) Resolved() bool {
	return r.Callee != ""
}

// Resolver binds call sites to declared functions. It is built once per
// analysis from the full extraction set and discarded afterwards; nothing
// here is shared across requests.
//
// Lookup order for a call site text: exact qualified name, bare name in the
// caller's own file, then any global bare-name match. A bare name declared
// without qualifier in several files maps to one merged id, so a global
// match can bind a call to a different same-named function than the author
// intended. That imprecision is accepted, not corrected.
type Resolver struct {
	extractions []*lang.Extraction

	qualified map[string]string            // "Owner::name" -> node id
	perFile   map[string]map[string]string // file -> bare name -> node id
	global    map[string][]string          // bare name -> node ids, discovery order
}

// New indexes every declared function across the extraction set.
func New(extractions []*lang.Extraction) *Resolver {
	r := &Resolver{
		extractions: extractions,
		qualified:   make(map[string]string),
		perFile:     make(map[string]map[string]string),
		global:      make(map[string][]string),
	}

	for _, ext := range extractions {
		for _, fn := range ext.Functions {
			r.index(fn)
		}
	}
	return r
}

func (r *Resolver) index(fn lang.FunctionRecord) {
	id := fn.NodeID()

	if fn.QualifiedName != "" {
		// First definition wins; a re-declaration of the same qualified
		// name maps to the same id anyway.
		if _, ok := r.qualified[fn.QualifiedName]; !ok {
			r.qualified[fn.QualifiedName] = id
		}
	}

	byName := r.perFile[fn.File]
	if byName == nil {
		byName = make(map[string]string)
		r.perFile[fn.File] = byName
	}
	if _, ok := byName[fn.Name]; !ok {
		byName[fn.Name] = id
	}

	if !contains(r.global[fn.Name], id) {
		r.global[fn.Name] = append(r.global[fn.Name], id)
	}
}

// Resolve maps every recorded call site, in extraction order.
func (r *Resolver) Resolve() []Resolution {
	var out []Resolution
	for _, ext := range r.extractions {
		for _, call := range ext.Calls {
			out = append(out, r.resolveCall(call))
		}
	}
	return out
}

func (r *Resolver) resolveCall(call lang.CallSite) Resolution {
	res := Resolution{
		Caller: call.Caller,
		File:   call.File,
		Line:   call.Line,
	}

	// 1. exact qualified match
	if id, ok := r.qualified[call.Callee]; ok {
		res.Callee = id
		return res
	}

	bare := call.Callee
	if idx := strings.LastIndex(bare, "::"); idx != -1 {
		bare = bare[idx+2:]
	}

	// 2. bare name declared in the caller's own file
	if byName, ok := r.perFile[call.File]; ok {
		if id, ok := byName[bare]; ok {
			res.Callee = id
			return res
		}
	}

	// 3. any global bare-name match; the merged unqualified node wins over
	// scattered class-qualified homonyms, otherwise first discovered
	if ids := r.global[bare]; len(ids) > 0 {
		for _, id := range ids {
			if id == bare {
				res.Callee = id
				return res
			}
		}
		res.Callee = ids[0]
		return res
	}

	// 4. unresolved
	res.Unresolved = call.Callee
	return res
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
