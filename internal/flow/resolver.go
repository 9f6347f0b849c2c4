package flow

import (
	"fmt"

	"github.com/bpstudio/backend/internal/blueprint"
	"github.com/bpstudio/backend/internal/types"
)

// Resolve reconstructs every entry point of the graph into an ordered
// Function. The result depends only on the graph's node order and link
// contents, never on map iteration or clock state.
func Resolve(graph *blueprint.Graph) ([]Function, []types.Warning) {
	r := &resolver{
		graph:     graph,
		visited:   make(map[string]bool),
		consumers: countConsumers(graph),
	}

	var funcs []Function
	for _, entry := range graph.Entries() {
		funcs = append(funcs, r.resolveEntry(entry))
	}

	for _, node := range graph.Nodes {
		if !r.visited[node.ID] {
			r.warn("unreachable node: %s", node.Title())
		}
	}

	return funcs, r.warnings
}

type resolver struct {
	graph     *blueprint.Graph
	visited   map[string]bool
	warnings  []types.Warning
	consumers map[string]int

	// Per-function hoisting state, reset by resolveEntry. Hoisted locals
	// are declared at the top of the owning function body so every
	// reference within that function, including both arms of a branch,
	// sees the declaration.
	temps   map[string]string
	hoisted []Statement
	tempSeq int
}

func (r *resolver) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, types.NewWarning(fmt.Sprintf(format, args...)))
}

// countConsumers tallies, per producing node, how many data input links
// reference it. A count above one marks the produced value as shared.
func countConsumers(graph *blueprint.Graph) map[string]int {
	counts := make(map[string]int)
	for _, node := range graph.Nodes {
		for _, pin := range node.DataInputs() {
			for _, target := range pin.LinkedTo {
				if _, ok := graph.Node(target); ok {
					counts[target]++
				}
			}
		}
	}
	return counts
}

func (r *resolver) resolveEntry(entry *blueprint.Node) Function {
	r.visited[entry.ID] = true
	r.temps = make(map[string]string)
	r.hoisted = nil
	r.tempSeq = 0

	fn := Function{
		Name:    entry.Title(),
		IsEvent: entry.Kind == blueprint.KindEvent,
	}
	for _, pin := range entry.DataOutputs() {
		fn.Params = append(fn.Params, Param{Name: pin.Name, Category: pin.Category})
	}

	path := map[string]bool{entry.ID: true}
	body := r.walkExec(r.execSuccessor(entry, nil), path)
	fn.Body = append(r.hoisted, body...)
	return fn
}

// execSuccessor follows a node's exec output to the next node. With pin nil
// the first exec output is used. Fan-out beyond the first link was already
// flagged at parse time; the walk follows only the first.
func (r *resolver) execSuccessor(node *blueprint.Node, pin *blueprint.Pin) *blueprint.Node {
	if pin == nil {
		outs := node.ExecOutputs()
		if len(outs) == 0 {
			return nil
		}
		pin = outs[0]
	}
	for _, target := range pin.LinkedTo {
		if next, ok := r.graph.Node(target); ok {
			return next
		}
	}
	return nil
}

// walkExec builds the statement list starting at node. path is the set of
// node ids currently being visited on this control path; revisiting one is
// an unrecognized loop and terminates the walk.
func (r *resolver) walkExec(node *blueprint.Node, path map[string]bool) []Statement {
	var stmts []Statement

	for node != nil {
		if path[node.ID] {
			r.warn("potential infinite loop at node %s: unrecognized loop construct", node.Title())
			stmts = append(stmts, &NoOp{Reason: "cycle to " + node.Title()})
			return stmts
		}
		path[node.ID] = true
		r.visited[node.ID] = true

		switch node.Kind {
		case blueprint.KindCallFunction:
			stmts = append(stmts, &Call{Target: callTarget(node), Args: r.resolveInputs(node)})
			node = r.execSuccessor(node, nil)

		case blueprint.KindVariableSet:
			stmts = append(stmts, &Assign{Variable: setVariable(node), Value: r.resolveSetValue(node)})
			node = r.execSuccessor(node, nil)

		case blueprint.KindBranch:
			branch := &Branch{Cond: r.resolveCondition(node)}
			if pin := node.FindPin(blueprint.DirOut, "then"); pin != nil {
				branch.Then = r.walkExec(r.execSuccessor(node, pin), copyPath(path))
			}
			if pin := node.FindPin(blueprint.DirOut, "else"); pin != nil {
				branch.Else = r.walkExec(r.execSuccessor(node, pin), copyPath(path))
			}
			stmts = append(stmts, branch)
			return stmts

		case blueprint.KindSequence:
			for _, pin := range node.ExecOutputs() {
				stmts = append(stmts, r.walkExec(r.execSuccessor(node, pin), copyPath(path))...)
			}
			return stmts

		case blueprint.KindEvent, blueprint.KindFunctionEntry:
			// A second entry reached mid-walk ends this path; the entry
			// produces its own function.
			return stmts

		case blueprint.KindVariableGet:
			// Data-only node on an exec path: nothing to execute.
			r.warn("variable get node %s sits on an exec path, skipped", node.Title())
			node = r.execSuccessor(node, nil)

		default:
			stmts = append(stmts, &Stub{RawClass: node.RawClass, Title: node.Title()})
			node = r.execSuccessor(node, nil)
		}
	}

	return stmts
}

func copyPath(path map[string]bool) map[string]bool {
	next := make(map[string]bool, len(path))
	for id := range path {
		next[id] = true
	}
	return next
}

// callTarget names the function a call node invokes.
func callTarget(node *blueprint.Node) string {
	if node.MemberName != "" {
		return node.MemberName
	}
	return node.Title()
}

// setVariable names the variable a set node assigns.
func setVariable(node *blueprint.Node) string {
	if node.MemberName != "" {
		return node.MemberName
	}
	if inputs := node.DataInputs(); len(inputs) > 0 {
		return inputs[0].Name
	}
	return node.Title()
}

// resolveInputs resolves every data input of a node into argument
// expressions.
func (r *resolver) resolveInputs(node *blueprint.Node) []Expr {
	var args []Expr
	for _, pin := range node.DataInputs() {
		args = append(args, r.resolveExpr(pin, make(map[string]bool)))
	}
	return args
}

// resolveSetValue resolves the value expression of a variable set node: its
// first data input, or the category zero value when the node carries none.
func (r *resolver) resolveSetValue(node *blueprint.Node) Expr {
	inputs := node.DataInputs()
	if len(inputs) == 0 {
		r.warn("variable set node %s has no value pin", node.Title())
		return &Literal{Category: blueprint.CategoryWildcard}
	}
	return r.resolveExpr(inputs[0], make(map[string]bool))
}

// resolveCondition resolves a branch node's condition: the pin named
// Condition when present, otherwise the first bool input, otherwise true.
func (r *resolver) resolveCondition(node *blueprint.Node) Expr {
	if pin := node.FindPin(blueprint.DirIn, "Condition"); pin != nil {
		return r.resolveExpr(pin, make(map[string]bool))
	}
	for _, pin := range node.DataInputs() {
		if pin.Category == blueprint.CategoryBool {
			return r.resolveExpr(pin, make(map[string]bool))
		}
	}
	r.warn("branch node %s has no condition pin, assuming true", node.Title())
	return &Literal{Category: blueprint.CategoryBool, Text: "true"}
}

// resolveExpr follows a data input pin backward to its producer. Unlinked
// pins pass their default text through verbatim. When several producers
// link the same pin, the one earliest in the source node array wins. seen
// guards against data-edge cycles within one resolution chain.
func (r *resolver) resolveExpr(pin *blueprint.Pin, seen map[string]bool) Expr {
	producer := r.pickProducer(pin)
	if producer == nil {
		return &Literal{Category: pin.Category, Text: pin.Default}
	}

	if seen[producer.ID] {
		r.warn("data cycle through node %s, substituting default value", producer.Title())
		return &Literal{Category: pin.Category}
	}
	seen[producer.ID] = true
	r.visited[producer.ID] = true

	switch producer.Kind {
	case blueprint.KindVariableGet:
		return &VarRef{Name: variableOf(producer)}

	case blueprint.KindVariableSet:
		// A set node's data output mirrors the variable after assignment.
		return &VarRef{Name: setVariable(producer)}

	case blueprint.KindFunctionEntry, blueprint.KindEvent:
		return &ParamRef{Name: r.entryParam(producer, pin)}

	case blueprint.KindCallFunction:
		return r.resolveCallValue(producer, pin, seen)

	default:
		r.warn("cannot resolve data value from node %s, substituting default", producer.Title())
		return &Literal{Category: pin.Category}
	}
}

// pickProducer resolves a data pin's links to the producing node, breaking
// multi-link ties by source array position.
func (r *resolver) pickProducer(pin *blueprint.Pin) *blueprint.Node {
	var best *blueprint.Node
	for _, target := range pin.LinkedTo {
		node, ok := r.graph.Node(target)
		if !ok {
			continue
		}
		if best == nil || node.Index < best.Index {
			best = node
		}
	}
	return best
}

// entryParam picks which output parameter of an entry node feeds the pin.
// Links carry only node ids, so the match is by category, falling back to
// the entry's first data output.
func (r *resolver) entryParam(entry *blueprint.Node, pin *blueprint.Pin) string {
	outputs := entry.DataOutputs()
	for _, out := range outputs {
		if out.Category == pin.Category || pin.Category == blueprint.CategoryWildcard {
			return out.Name
		}
	}
	if len(outputs) > 0 {
		return outputs[0].Name
	}
	r.warn("entry node %s has no data outputs to satisfy pin %s", entry.Title(), pin.Name)
	return pin.Name
}

// resolveCallValue turns a pure call producer into an inline expression, or
// into a reference to a local hoisted to the top of the current function
// when its value is shared. The temp map is per function, so a producer
// consumed from several entry points gets a declaration in each.
func (r *resolver) resolveCallValue(producer *blueprint.Node, pin *blueprint.Pin, seen map[string]bool) Expr {
	if name, ok := r.temps[producer.ID]; ok {
		return &VarRef{Name: name}
	}

	args := []Expr{}
	for _, in := range producer.DataInputs() {
		args = append(args, r.resolveExpr(in, seen))
	}
	call := &CallExpr{Target: callTarget(producer), Args: args}

	if r.consumers[producer.ID] > 1 {
		r.tempSeq++
		name := fmt.Sprintf("LocalVar%d", r.tempSeq)
		r.temps[producer.ID] = name
		category := pin.Category
		if outs := producer.DataOutputs(); len(outs) > 0 {
			category = outs[0].Category
		}
		r.hoisted = append(r.hoisted, &Local{Name: name, Category: category, Value: call})
		return &VarRef{Name: name}
	}

	return call
}

// variableOf names the variable a get node reads.
func variableOf(node *blueprint.Node) string {
	if node.MemberName != "" {
		return node.MemberName
	}
	if outs := node.DataOutputs(); len(outs) > 0 {
		return outs[0].Name
	}
	return node.Title()
}
