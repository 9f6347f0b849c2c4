package blueprint

import "strings"

// VarType is the primitive type tag of a Blueprint variable.
type VarType string

const (
	TypeFloat  VarType = "float"
	TypeBool   VarType = "bool"
	TypeInt    VarType = "int"
	TypeString VarType = "string"
	TypeObject VarType = "object"
)

// ParseVarType normalizes a raw type string to a primitive tag. Unrecognized
// types map to object references; the second return reports recognition.
func ParseVarType(raw string) (VarType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "float", "real", "double":
		return TypeFloat, true
	case "bool", "boolean":
		return TypeBool, true
	case "int", "integer", "int32", "int64", "byte":
		return TypeInt, true
	case "string", "str", "name", "text":
		return TypeString, true
	case "object", "object-ref", "objectref", "class":
		return TypeObject, true
	}
	return TypeObject, false
}

// GraphKind distinguishes event graphs from function graphs.
type GraphKind string

const (
	GraphEvent    GraphKind = "event"
	GraphFunction GraphKind = "function"
)

// NodeKind is the closed set of node classes the pipeline understands.
// KindUnsupported retains the raw class string on the node so unrecognized
// nodes survive to emission as commented stubs.
type NodeKind int

const (
	KindUnsupported NodeKind = iota
	KindEvent
	KindFunctionEntry
	KindCallFunction
	KindVariableGet
	KindVariableSet
	KindBranch
	KindSequence
)

// String returns the canonical name of the node kind.
func (k NodeKind) String() string {
	switch k {
	case KindEvent:
		return "Event"
	case KindFunctionEntry:
		return "FunctionEntry"
	case KindCallFunction:
		return "CallFunction"
	case KindVariableGet:
		return "VariableGet"
	case KindVariableSet:
		return "VariableSet"
	case KindBranch:
		return "IfThenElse"
	case KindSequence:
		return "Sequence"
	}
	return "Unsupported"
}

// ParseNodeKind maps a raw NodeClass string to a NodeKind. Both Unreal
// export names ("K2Node_IfThenElse") and short names ("IfThenElse") are
// accepted.
func ParseNodeKind(raw string) (NodeKind, bool) {
	name := strings.TrimPrefix(strings.TrimSpace(raw), "K2Node_")
	switch name {
	case "Event", "CustomEvent":
		return KindEvent, true
	case "FunctionEntry":
		return KindFunctionEntry, true
	case "CallFunction":
		return KindCallFunction, true
	case "VariableGet":
		return KindVariableGet, true
	case "VariableSet":
		return KindVariableSet, true
	case "IfThenElse", "Branch":
		return KindBranch, true
	case "ExecutionSequence", "Sequence":
		return KindSequence, true
	}
	return KindUnsupported, false
}

// PinDirection marks a pin as input or output.
type PinDirection int

const (
	DirIn PinDirection = iota
	DirOut
)

// ParsePinDirection maps raw direction strings from the export.
func ParsePinDirection(raw string) (PinDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in", "input", "egpd_input":
		return DirIn, true
	case "out", "output", "egpd_output":
		return DirOut, true
	}
	return DirIn, false
}

// PinCategory is the value category carried by a pin. Exec pins carry
// control flow; all other categories carry data.
type PinCategory string

const (
	CategoryExec     PinCategory = "exec"
	CategoryFloat    PinCategory = "float"
	CategoryBool     PinCategory = "bool"
	CategoryInt      PinCategory = "int"
	CategoryString   PinCategory = "string"
	CategoryObject   PinCategory = "object"
	CategoryWildcard PinCategory = "wildcard"
)

// ParsePinCategory maps raw category strings; unknown categories become
// wildcard so links still validate.
func ParsePinCategory(raw string) (PinCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "exec":
		return CategoryExec, true
	case "float", "real", "double":
		return CategoryFloat, true
	case "bool", "boolean":
		return CategoryBool, true
	case "int", "integer", "byte":
		return CategoryInt, true
	case "string", "name", "text":
		return CategoryString, true
	case "object", "class":
		return CategoryObject, true
	case "wildcard":
		return CategoryWildcard, true
	}
	return CategoryWildcard, false
}

// Pin is one connection point on a node.
type Pin struct {
	Name      string
	Direction PinDirection
	Category  PinCategory
	LinkedTo  []string
	Default   string
}

// IsExec reports whether the pin carries control flow.
func (p *Pin) IsExec() bool { return p.Category == CategoryExec }

// Node is one node in a graph. Index is the node's position in the source
// document's node array and is the tiebreaker for every ambiguous ordering.
type Node struct {
	ID         string
	Kind       NodeKind
	RawClass   string
	Name       string
	MemberName string
	Pins       []Pin
	PosX, PosY float64
	Index      int
}

// Title returns the best human-readable name for the node.
func (n *Node) Title() string {
	if n.Name != "" {
		return n.Name
	}
	if n.MemberName != "" {
		return n.MemberName
	}
	return n.RawClass
}

// FindPin returns the first pin matching direction and name.
func (n *Node) FindPin(dir PinDirection, name string) *Pin {
	for i := range n.Pins {
		if n.Pins[i].Direction == dir && n.Pins[i].Name == name {
			return &n.Pins[i]
		}
	}
	return nil
}

// ExecOutputs returns the node's exec output pins in pin order.
func (n *Node) ExecOutputs() []*Pin {
	var out []*Pin
	for i := range n.Pins {
		if n.Pins[i].Direction == DirOut && n.Pins[i].IsExec() {
			out = append(out, &n.Pins[i])
		}
	}
	return out
}

// DataInputs returns the node's non-exec input pins in pin order.
func (n *Node) DataInputs() []*Pin {
	var out []*Pin
	for i := range n.Pins {
		if n.Pins[i].Direction == DirIn && !n.Pins[i].IsExec() {
			out = append(out, &n.Pins[i])
		}
	}
	return out
}

// DataOutputs returns the node's non-exec output pins in pin order.
func (n *Node) DataOutputs() []*Pin {
	var out []*Pin
	for i := range n.Pins {
		if n.Pins[i].Direction == DirOut && !n.Pins[i].IsExec() {
			out = append(out, &n.Pins[i])
		}
	}
	return out
}

// Graph is an arena of nodes indexed by their graph-local id.
type Graph struct {
	Name  string
	Kind  GraphKind
	Nodes []*Node

	index map[string]*Node
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Entries returns the graph's entry nodes in source order: the single
// FunctionEntry for function graphs, every Event node for event graphs.
func (g *Graph) Entries() []*Node {
	var entries []*Node
	for _, n := range g.Nodes {
		if (g.Kind == GraphFunction && n.Kind == KindFunctionEntry) ||
			(g.Kind == GraphEvent && n.Kind == KindEvent) {
			entries = append(entries, n)
		}
	}
	return entries
}

// Variable is a typed class variable.
type Variable struct {
	Name    string
	Type    VarType
	RawType string
	Flags   []string
	Default string
	Tooltip string
}

// Asset is the fully parsed Blueprint class. Immutable once parsed; one
// transpile or diff invocation owns it exclusively.
type Asset struct {
	ClassName   string
	ParentClass string
	Variables   []Variable
	Graphs      []*Graph
}

// NodeCount returns the total number of nodes across all graphs.
func (a *Asset) NodeCount() int {
	total := 0
	for _, g := range a.Graphs {
		total += len(g.Nodes)
	}
	return total
}

// FunctionCount returns the number of function graphs.
func (a *Asset) FunctionCount() int {
	count := 0
	for _, g := range a.Graphs {
		if g.Kind == GraphFunction {
			count++
		}
	}
	return count
}
