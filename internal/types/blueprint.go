package types

// BlueprintDoc is the serialized Blueprint export consumed at the API
// boundary. Field names follow the Unreal export format verbatim.
type BlueprintDoc struct {
	ClassName   string        `json:"ClassName"`
	ParentClass string        `json:"ParentClass"`
	Variables   []VariableDoc `json:"Variables"`
	Graphs      []GraphDoc    `json:"Graphs"`
}

// VariableDoc describes a single Blueprint variable declaration.
type VariableDoc struct {
	VarName       string   `json:"VarName"`
	VarType       string   `json:"VarType"`
	PropertyFlags []string `json:"PropertyFlags"`
	DefaultValue  string   `json:"DefaultValue"`
	Tooltip       string   `json:"Tooltip,omitempty"`
}

// GraphDoc is a single node graph: either an event graph or a function graph.
type GraphDoc struct {
	GraphName string    `json:"GraphName"`
	GraphType string    `json:"GraphType"`
	Nodes     []NodeDoc `json:"Nodes"`
}

// NodeDoc is one node in a graph. NodeClass is an open string in the export;
// unrecognized values are carried through rather than rejected.
type NodeDoc struct {
	NodeGuid   string   `json:"NodeGuid"`
	NodeClass  string   `json:"NodeClass"`
	Name       string   `json:"Name,omitempty"`
	MemberName string   `json:"MemberName,omitempty"`
	Pins       []PinDoc `json:"Pins"`
	NodePosX   float64  `json:"NodePosX"`
	NodePosY   float64  `json:"NodePosY"`
}

// PinDoc is a single pin on a node. LinkedTo lists the NodeGuids of the
// nodes this pin connects to.
type PinDoc struct {
	PinName      string     `json:"PinName"`
	PinType      PinTypeDoc `json:"PinType"`
	Direction    string     `json:"Direction"`
	LinkedTo     []string   `json:"LinkedTo,omitempty"`
	DefaultValue string     `json:"DefaultValue,omitempty"`
}

// PinTypeDoc carries the pin category tag (exec, float, bool, ...).
type PinTypeDoc struct {
	PinCategory string `json:"PinCategory"`
}
