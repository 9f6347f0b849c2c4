package symbols

import (
	"regexp"
	"strings"

	"github.com/bpstudio/backend/internal/types"
)

// Kind distinguishes the two symbol kinds the diff engine aligns.
type Kind string

const (
	KindVariable Kind = "variable"
	KindFunction Kind = "function"
)

// Param is one function parameter, typed by primitive tag.
type Param struct {
	Name string
	Type string
}

// Symbol is one extracted declaration. Type holds the primitive tag of a
// variable or the return tag of a function. Scope is the qualifying class
// when the symbol came from a Class::Method definition.
type Symbol struct {
	Name   string
	Kind   Kind
	Type   string
	Params []Param
	Scope  string
	Raw    string
}

// Signature renders the symbol's coarse signature for change descriptions.
func (s Symbol) Signature() string {
	if s.Kind == KindVariable {
		return s.Type + " " + s.Name
	}
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Type
	}
	return s.Type + " " + s.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Table is the extraction result. HadContent records whether the input held
// anything besides whitespace, so the diff engine can flag a table that came
// back empty from a real file.
type Table struct {
	Symbols    []Symbol
	Warnings   []types.Warning
	HadContent bool
}

// Functions returns the function symbols in extraction order.
func (t *Table) Functions() []Symbol {
	var out []Symbol
	for _, s := range t.Symbols {
		if s.Kind == KindFunction {
			out = append(out, s)
		}
	}
	return out
}

// Variables returns the variable symbols in extraction order.
func (t *Table) Variables() []Symbol {
	var out []Symbol
	for _, s := range t.Symbols {
		if s.Kind == KindVariable {
			out = append(out, s)
		}
	}
	return out
}

var (
	methodDefRe  = regexp.MustCompile(`^(?:virtual\s+)?([A-Za-z_][\w:<>]*\s*\*?)\s+([A-Za-z_]\w*)::([A-Za-z_]\w*)\s*\(([^)]*)\)`)
	methodDeclRe = regexp.MustCompile(`^(?:virtual\s+)?(?:static\s+)?([A-Za-z_][\w:<>]*\s*\*?)\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*(?:const\s*)?(?:override\s*)?[;{]?$`)
	variableRe   = regexp.MustCompile(`^([A-Za-z_][\w:<>]*\s*\*?)\s+([A-Za-z_]\w*)\s*(?:=\s*[^;]+)?;$`)
)

// skipPrefixes marks lines that are declaration-shaped but are not symbols.
var skipPrefixes = []string{
	"//", "/*", "*", "#", "{", "}",
	"UPROPERTY", "UFUNCTION", "UCLASS", "GENERATED_BODY",
	"class ", "struct ", "enum ", "namespace ", "using ", "template",
	"public:", "private:", "protected:",
	"return ", "if ", "if(", "for ", "for(", "while ", "while(", "else", "switch",
}

// Extract builds a symbol table from arbitrary source text. It never fails:
// unmatchable lines are skipped, and an input that yields nothing produces
// an empty table with a warning.
func Extract(source string) *Table {
	t := &Table{HadContent: strings.TrimSpace(source) != ""}

	seen := make(map[string]int)
	blocks := newBlockTracker()
	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		inFunction := blocks.inFunction()
		matchedFunction := false

		if !shouldSkip(line) {
			if m := methodDefRe.FindStringSubmatch(line); m != nil {
				matchedFunction = true
				t.record(seen, Symbol{
					Name:   m[3],
					Kind:   KindFunction,
					Type:   normalizeType(m[1]),
					Params: parseParams(m[4]),
					Scope:  m[2],
					Raw:    line,
				})
			} else if strings.Contains(line, "(") {
				if m := methodDeclRe.FindStringSubmatch(line); m != nil && !isControlKeyword(m[2]) {
					matchedFunction = true
					t.record(seen, Symbol{
						Name:   m[2],
						Kind:   KindFunction,
						Type:   normalizeType(m[1]),
						Params: parseParams(m[3]),
						Raw:    line,
					})
				}
			} else if !inFunction {
				// Locals inside a function body are not member symbols.
				if m := variableRe.FindStringSubmatch(line); m != nil && !isControlKeyword(m[2]) {
					t.record(seen, Symbol{
						Name: m[2],
						Kind: KindVariable,
						Type: normalizeType(m[1]),
						Raw:  line,
					})
				}
			}
		}

		blocks.observe(line, matchedFunction)
	}

	if t.HadContent && len(t.Symbols) == 0 {
		t.Warnings = append(t.Warnings, types.NewWarning(
			"no symbols extracted from non-empty source, diff confidence is low"))
	}

	return t
}

// record deduplicates by kind plus name, merging a later definition's scope
// into an earlier declaration.
func (t *Table) record(seen map[string]int, sym Symbol) {
	key := string(sym.Kind) + ":" + sym.Name
	if idx, ok := seen[key]; ok {
		if t.Symbols[idx].Scope == "" && sym.Scope != "" {
			t.Symbols[idx].Scope = sym.Scope
		}
		return
	}
	seen[key] = len(t.Symbols)
	t.Symbols = append(t.Symbols, sym)
}

// blockTracker follows brace nesting well enough to tell member
// declarations apart from locals: a brace block opened by a function-shaped
// line (or the block after one) is a function body.
type blockTracker struct {
	stack   []bool // true when the block is a function body
	pending bool   // the next opened block belongs to a function
}

func newBlockTracker() *blockTracker {
	return &blockTracker{}
}

func (b *blockTracker) inFunction() bool {
	for _, fn := range b.stack {
		if fn {
			return true
		}
	}
	return false
}

func (b *blockTracker) observe(line string, matchedFunction bool) {
	if matchedFunction && !strings.Contains(line, ";") {
		b.pending = true
	}
	for _, r := range line {
		switch r {
		case '{':
			b.stack = append(b.stack, b.pending)
			b.pending = false
		case '}':
			if len(b.stack) > 0 {
				b.stack = b.stack[:len(b.stack)-1]
			}
		}
	}
}

func shouldSkip(line string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isControlKeyword(name string) bool {
	switch name {
	case "if", "for", "while", "switch", "return", "else", "do", "sizeof", "new", "delete":
		return true
	}
	return false
}

// parseParams splits a raw parameter list into coarse typed parameters.
func parseParams(raw string) []Param {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "void" {
		return nil
	}
	var params []Param
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "="); idx >= 0 {
			part = strings.TrimSpace(part[:idx])
		}
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		name := ""
		typeText := part
		if len(fields) > 1 {
			name = fields[len(fields)-1]
			typeText = strings.Join(fields[:len(fields)-1], " ")
		}
		params = append(params, Param{Name: name, Type: normalizeType(typeText)})
	}
	return params
}

// normalizeType collapses a C++ type down to a primitive tag. Anything not
// recognized is an object reference, which matches how the parser treats
// unknown Blueprint variable types.
func normalizeType(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "&")
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "const "))
	pointer := strings.HasSuffix(raw, "*")
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "*"))

	switch raw {
	case "float", "double":
		return "float"
	case "bool":
		return "bool"
	case "int", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "long", "short", "byte":
		return "int"
	case "FString", "FName", "FText", "string":
		return "string"
	case "void":
		return "void"
	case "char":
		if pointer {
			return "string"
		}
		return "int"
	}
	return "object"
}
