package blueprint

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/bpstudio/backend/internal/types"
)

// Parse decodes a serialized Blueprint document and validates it into an
// Asset. It fails only when the bytes are not decodable JSON or the
// mandatory ClassName field is absent; all other anomalies become warnings.
func Parse(content []byte) (*Asset, []types.Warning, error) {
	var doc types.BlueprintDoc
	if err := sonic.Unmarshal(content, &doc); err != nil {
		return nil, nil, fmt.Errorf("malformed blueprint document: %w", err)
	}
	return FromDoc(&doc)
}

// FromDoc converts an already-decoded document into an Asset.
func FromDoc(doc *types.BlueprintDoc) (*Asset, []types.Warning, error) {
	if strings.TrimSpace(doc.ClassName) == "" {
		return nil, nil, fmt.Errorf("blueprint document missing ClassName")
	}

	var warnings []types.Warning
	asset := &Asset{
		ClassName:   doc.ClassName,
		ParentClass: doc.ParentClass,
	}
	if asset.ParentClass == "" {
		asset.ParentClass = "Actor"
		warnings = append(warnings, types.NewInfo("missing ParentClass, defaulting to Actor"))
	}

	seen := make(map[string]bool, len(doc.Variables))
	for _, v := range doc.Variables {
		if v.VarName == "" {
			warnings = append(warnings, types.NewWarning("variable with empty name skipped"))
			continue
		}
		if seen[v.VarName] {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("duplicate variable %q, later declaration ignored", v.VarName)))
			continue
		}
		seen[v.VarName] = true

		varType, ok := ParseVarType(v.VarType)
		if !ok {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("variable %q has unrecognized type %q, treated as object reference", v.VarName, v.VarType)))
		}
		asset.Variables = append(asset.Variables, Variable{
			Name:    v.VarName,
			Type:    varType,
			RawType: v.VarType,
			Flags:   v.PropertyFlags,
			Default: v.DefaultValue,
			Tooltip: v.Tooltip,
		})
	}

	graphNames := make(map[string]bool, len(doc.Graphs))
	for gi := range doc.Graphs {
		graph, graphWarnings := parseGraph(&doc.Graphs[gi])
		warnings = append(warnings, graphWarnings...)
		if graphNames[graph.Name] {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("duplicate graph name %q, generated functions will collide", graph.Name)))
		}
		graphNames[graph.Name] = true
		asset.Graphs = append(asset.Graphs, graph)
	}

	return asset, warnings, nil
}

// parseGraph converts one graph definition, folding per-node and per-pin
// anomalies into warnings rather than short-circuiting.
func parseGraph(doc *types.GraphDoc) (*Graph, []types.Warning) {
	var warnings []types.Warning

	kind := GraphKind(strings.ToLower(doc.GraphType))
	if kind != GraphEvent && kind != GraphFunction {
		warnings = append(warnings, types.NewWarning(
			fmt.Sprintf("graph %q has unrecognized type %q, treated as event graph", doc.GraphName, doc.GraphType)))
		kind = GraphEvent
	}

	graph := &Graph{
		Name:  doc.GraphName,
		Kind:  kind,
		index: make(map[string]*Node, len(doc.Nodes)),
	}

	for i := range doc.Nodes {
		node, nodeWarnings := parseNode(&doc.Nodes[i], i, doc.GraphName)
		warnings = append(warnings, nodeWarnings...)
		if node == nil {
			continue
		}
		if _, dup := graph.index[node.ID]; dup {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("graph %q has duplicate node id %q, later node ignored", doc.GraphName, node.ID)))
			continue
		}
		graph.Nodes = append(graph.Nodes, node)
		graph.index[node.ID] = node
	}

	warnings = append(warnings, validateLinks(graph)...)

	if kind == GraphFunction {
		entries := graph.Entries()
		if len(entries) != 1 {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("function graph %q has %d entry nodes, expected exactly one", doc.GraphName, len(entries))))
		}
	}

	return graph, warnings
}

func parseNode(doc *types.NodeDoc, index int, graphName string) (*Node, []types.Warning) {
	var warnings []types.Warning

	if doc.NodeGuid == "" {
		warnings = append(warnings, types.NewWarning(
			fmt.Sprintf("graph %q node at index %d has no NodeGuid, skipped", graphName, index)))
		return nil, warnings
	}

	kind, ok := ParseNodeKind(doc.NodeClass)
	if !ok {
		warnings = append(warnings, types.NewWarning(
			fmt.Sprintf("unsupported node class: %s", doc.NodeClass)))
	}

	node := &Node{
		ID:         doc.NodeGuid,
		Kind:       kind,
		RawClass:   doc.NodeClass,
		Name:       doc.Name,
		MemberName: doc.MemberName,
		PosX:       doc.NodePosX,
		PosY:       doc.NodePosY,
		Index:      index,
	}

	for _, p := range doc.Pins {
		dir, dirOK := ParsePinDirection(p.Direction)
		if !dirOK {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("node %q pin %q has unrecognized direction %q, assuming input", node.Title(), p.PinName, p.Direction)))
		}
		category, catOK := ParsePinCategory(p.PinType.PinCategory)
		if !catOK {
			warnings = append(warnings, types.NewWarning(
				fmt.Sprintf("node %q pin %q has unrecognized category %q, treated as wildcard", node.Title(), p.PinName, p.PinType.PinCategory)))
		}
		node.Pins = append(node.Pins, Pin{
			Name:      p.PinName,
			Direction: dir,
			Category:  category,
			LinkedTo:  p.LinkedTo,
			Default:   p.DefaultValue,
		})
	}

	return node, warnings
}

// validateLinks checks every pin link against the node arena. Dangling or
// incompatible links are warnings; the links stay in place so the resolver
// can still skip over them.
func validateLinks(graph *Graph) []types.Warning {
	var warnings []types.Warning
	for _, node := range graph.Nodes {
		for pi := range node.Pins {
			pin := &node.Pins[pi]
			for _, target := range pin.LinkedTo {
				other, ok := graph.Node(target)
				if !ok {
					warnings = append(warnings, types.NewWarning(
						fmt.Sprintf("dangling link: node %q pin %q references missing node %q", node.Title(), pin.Name, target)))
					continue
				}
				if !hasCompatiblePin(other, pin) {
					warnings = append(warnings, types.NewWarning(
						fmt.Sprintf("incompatible link: node %q pin %q has no matching pin on node %q", node.Title(), pin.Name, other.Title())))
				}
			}
			if pin.IsExec() && pin.Direction == DirOut && len(pin.LinkedTo) > 1 {
				warnings = append(warnings, types.NewWarning(
					fmt.Sprintf("exec pin %q on node %q fans out to %d successors, only the first is followed", pin.Name, node.Title(), len(pin.LinkedTo))))
			}
		}
	}
	return warnings
}

// hasCompatiblePin reports whether target owns a pin of opposite direction
// that could terminate a link from pin: exec links to exec, data links to
// any data category (wildcard matches everything).
func hasCompatiblePin(target *Node, pin *Pin) bool {
	want := DirIn
	if pin.Direction == DirIn {
		want = DirOut
	}
	for i := range target.Pins {
		other := &target.Pins[i]
		if other.Direction != want {
			continue
		}
		if pin.IsExec() == other.IsExec() {
			return true
		}
	}
	return false
}
