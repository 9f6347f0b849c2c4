package types

// Severity levels for warnings attached to results.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a recoverable anomaly recorded during transpilation or diffing.
// Warnings ride on an otherwise complete result; they never replace one.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// NewWarning creates a warning-level warning.
func NewWarning(message string) Warning {
	return Warning{Severity: SeverityWarning, Message: message}
}

// NewInfo creates an info-level warning.
func NewInfo(message string) Warning {
	return Warning{Severity: SeverityInfo, Message: message}
}

// TranspileResult is the complete output of one transpile invocation.
// Immutable after construction.
type TranspileResult struct {
	ClassName     string    `json:"className"`
	ParentClass   string    `json:"parentClass"`
	HeaderCode    string    `json:"headerCode"`
	SourceCode    string    `json:"sourceCode"`
	NodeCount     int       `json:"nodeCount"`
	FunctionCount int       `json:"functionCount"`
	Warnings      []Warning `json:"warnings"`
}

// ChangeType classifies how a symbol diverges between graph and source.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeRemove ChangeType = "remove"
	ChangeModify ChangeType = "modify"
	ChangeMove   ChangeType = "move"
	ChangeRename ChangeType = "rename"
)

// ChangeScope identifies what kind of symbol a change applies to.
type ChangeScope string

const (
	ScopeVariable ChangeScope = "variable"
	ScopeFunction ChangeScope = "function"
	ScopeClass    ChangeScope = "class"
)

// ConflictLevel is the three-tier severity of a single divergence.
type ConflictLevel string

const (
	ConflictNone       ConflictLevel = "none"
	ConflictCompatible ConflictLevel = "compatible"
	ConflictConflict   ConflictLevel = "conflict"
)

// Rank orders conflict levels so the overall level is a simple maximum.
func (c ConflictLevel) Rank() int {
	switch c {
	case ConflictCompatible:
		return 1
	case ConflictConflict:
		return 2
	default:
		return 0
	}
}

// MaxConflict returns the more severe of two conflict levels.
func MaxConflict(a, b ConflictLevel) ConflictLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// SemanticChange is one detected divergence between the Blueprint graph and
// existing source code.
type SemanticChange struct {
	ID            string        `json:"id"`
	Type          ChangeType    `json:"type"`
	Scope         ChangeScope   `json:"scope"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	BlueprintSide string        `json:"blueprintSide,omitempty"`
	CppSide       string        `json:"cppSide,omitempty"`
	ConflictLevel ConflictLevel `json:"conflictLevel"`
	Resolution    string        `json:"resolution,omitempty"`
}

// DiffResult is the complete output of one diff invocation.
type DiffResult struct {
	OverallConflict  ConflictLevel    `json:"overallConflict"`
	Changes          []SemanticChange `json:"changes"`
	BlueprintSummary string           `json:"blueprintSummary"`
	Warnings         []Warning        `json:"warnings,omitempty"`
}
