package graph

// Node is one function, method, or external reference in the call graph.
// The JSON shape is the wire contract consumed by viewers and exporters.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	File  string `json:"file,omitempty"`
	Line  int    `json:"line,omitempty"`

	Connected bool `json:"connected"`
	External  bool `json:"external"`

	IsMethod   bool `json:"is_method"`
	IsAsync    bool `json:"is_async"`
	IsStatic   bool `json:"is_static"`
	IsPrivate  bool `json:"is_private"`
	IsTemplate bool `json:"is_template"`

	OwnerClass     string `json:"owner_class,omitempty"`
	OwnerNamespace string `json:"owner_namespace,omitempty"`

	// DefinedInFiles lists every definition site when several unqualified
	// functions with this bare name merged into one node. More than one
	// entry signals a cross-file duplicate.
	DefinedInFiles []string `json:"defined_in_files,omitempty"`
}

// Edge is one resolved call, from caller node to callee node.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	File string `json:"file,omitempty"`
}

// Stats aggregates the final node and edge sets.
type Stats struct {
	TotalFunctions     int `json:"total_functions"`
	DisplayedFunctions int `json:"displayed_functions"`
	TotalCalls         int `json:"total_calls"`
	ConnectedFunctions int `json:"connected_functions"`
	IsolatedFunctions  int `json:"isolated_functions"`
	ExternalReferences int `json:"external_references"`
	FilesProcessed     int `json:"files_processed"`
	StaticFunctions    int `json:"static_functions"`
	TemplateFunctions  int `json:"template_functions"`
	ClassMethods       int `json:"class_methods"`
}

// ParseFailure is a per-file extraction failure carried in the result.
type ParseFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// ProjectGraph is the complete analysis result. It is immutable once
// returned; the query layer derives subsets without touching the original.
type ProjectGraph struct {
	Nodes       []Node         `json:"nodes"`
	Edges       []Edge         `json:"edges"`
	Stats       Stats          `json:"stats"`
	Warnings    []string       `json:"warnings"`
	ParseErrors []ParseFailure `json:"parse_errors"`
}

// NodeByID returns the node with the given id.
func (g *ProjectGraph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
