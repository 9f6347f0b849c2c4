package flow

import "github.com/bpstudio/backend/internal/blueprint"

// Statement is one node of the reconstructed statement tree. The set of
// implementations is closed; emitters switch exhaustively over it.
type Statement interface {
	isStatement()
}

// Call invokes a function with resolved argument expressions.
type Call struct {
	Target string
	Args   []Expr
}

// Assign sets a class variable to the value of an expression.
type Assign struct {
	Variable string
	Value    Expr
}

// Local declares a temporary holding a shared impure value. It precedes the
// first statement that consumes the value.
type Local struct {
	Name     string
	Category blueprint.PinCategory
	Value    Expr
}

// Branch is a two-way conditional with nested bodies.
type Branch struct {
	Cond Expr
	Then []Statement
	Else []Statement
}

// Stub stands in for a node the pipeline does not understand. It survives to
// emission as a comment plus no-op so statement counts stay traceable.
type Stub struct {
	RawClass string
	Title    string
}

// NoOp terminates a walk that would otherwise descend into a cycle.
type NoOp struct {
	Reason string
}

func (*Call) isStatement()   {}
func (*Assign) isStatement() {}
func (*Local) isStatement()  {}
func (*Branch) isStatement() {}
func (*Stub) isStatement()   {}
func (*NoOp) isStatement()   {}

// Expr is one node of an inline expression tree. The set of implementations
// is closed.
type Expr interface {
	isExpr()
}

// Literal is a raw default value carried on an unlinked pin. Empty text
// means the category's zero value.
type Literal struct {
	Category blueprint.PinCategory
	Text     string
}

// VarRef reads a class variable or a hoisted local.
type VarRef struct {
	Name string
}

// ParamRef reads a function or event parameter.
type ParamRef struct {
	Name string
}

// CallExpr is a pure call substituted inline at its single consumer.
type CallExpr struct {
	Target string
	Args   []Expr
}

func (*Literal) isExpr()  {}
func (*VarRef) isExpr()   {}
func (*ParamRef) isExpr() {}
func (*CallExpr) isExpr() {}

// Param is one parameter of a reconstructed function.
type Param struct {
	Name     string
	Category blueprint.PinCategory
}

// Function is one entry point's reconstructed body: the single function of a
// function graph, or one event handler of an event graph.
type Function struct {
	Name    string
	Params  []Param
	Body    []Statement
	IsEvent bool
}
