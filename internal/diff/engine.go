package diff

import (
	"fmt"

	"github.com/bpstudio/backend/internal/blueprint"
	"github.com/bpstudio/backend/internal/codegen"
	"github.com/bpstudio/backend/internal/symbols"
	"github.com/bpstudio/backend/internal/types"
)

// Policy tunes the configurable edges of conflict classification.
type Policy struct {
	// RenameThreshold is the minimum normalized name similarity for an
	// unmatched pair with equal signatures to count as a rename.
	RenameThreshold float64
	// StrictModify treats every type modification as a conflict, including
	// widenings that would otherwise be compatible.
	StrictModify bool
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{RenameThreshold: 0.55}
}

// Engine computes semantic diffs between a Blueprint asset and an extracted
// symbol table. Engines are stateless and safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine with the given policy.
func NewEngine(policy Policy) *Engine {
	if policy.RenameThreshold <= 0 || policy.RenameThreshold > 1 {
		policy.RenameThreshold = DefaultPolicy().RenameThreshold
	}
	return &Engine{policy: policy}
}

// Diff aligns the asset's symbols against the extracted table. It always
// returns a result; a nil or empty table yields additions plus a
// low-confidence warning rather than an error.
func (e *Engine) Diff(asset *blueprint.Asset, existing *symbols.Table) *types.DiffResult {
	result := &types.DiffResult{
		OverallConflict:  types.ConflictNone,
		Changes:          []types.SemanticChange{},
		BlueprintSummary: summarize(asset),
	}

	if existing == nil {
		existing = &symbols.Table{}
		result.Warnings = append(result.Warnings, types.NewWarning(
			"existing source could not be processed, diff reflects blueprint side only"))
	}
	result.Warnings = append(result.Warnings, existing.Warnings...)

	className := codegen.NewSanitizer().Sanitize(asset.ClassName)
	bp := BlueprintSymbols(asset)
	cpp := existing.Symbols

	matchedBP := make([]bool, len(bp))
	matchedCpp := make([]bool, len(cpp))
	seq := 0

	// Phase 1: exact name matches of the same kind.
	for i := range bp {
		for j := range cpp {
			if matchedCpp[j] || cpp[j].Kind != bp[i].Kind || cpp[j].Name != bp[i].Name {
				continue
			}
			matchedBP[i] = true
			matchedCpp[j] = true
			if change, ok := e.compareMatched(bp[i], cpp[j], className, &seq); ok {
				result.Changes = append(result.Changes, change)
			}
			break
		}
	}

	// Phase 2: rename detection over the leftovers. Signatures must agree;
	// names must clear the similarity threshold. Best candidate wins, ties
	// broken by extraction order.
	for i := range bp {
		if matchedBP[i] {
			continue
		}
		bestJ, bestScore := -1, 0.0
		for j := range cpp {
			if matchedCpp[j] || cpp[j].Kind != bp[i].Kind || !sameSignature(bp[i], cpp[j]) {
				continue
			}
			if score := nameSimilarity(bp[i].Name, cpp[j].Name); score > bestScore {
				bestJ, bestScore = j, score
			}
		}
		if bestJ >= 0 && bestScore >= e.policy.RenameThreshold {
			matchedBP[i] = true
			matchedCpp[bestJ] = true
			result.Changes = append(result.Changes, types.SemanticChange{
				ID:            nextID(&seq),
				Type:          types.ChangeRename,
				Scope:         scopeOf(bp[i].Kind),
				Name:          bp[i].Name,
				Description:   fmt.Sprintf("%s %q renamed from %q", bp[i].Kind, bp[i].Name, cpp[bestJ].Name),
				BlueprintSide: bp[i].Signature(),
				CppSide:       cpp[bestJ].Signature(),
				ConflictLevel: types.ConflictCompatible,
				Resolution:    fmt.Sprintf("update references from %s to %s", cpp[bestJ].Name, bp[i].Name),
			})
		}
	}

	// Phase 3: leftovers are pure additions and removals.
	for i := range bp {
		if matchedBP[i] {
			continue
		}
		result.Changes = append(result.Changes, types.SemanticChange{
			ID:            nextID(&seq),
			Type:          types.ChangeAdd,
			Scope:         scopeOf(bp[i].Kind),
			Name:          bp[i].Name,
			Description:   fmt.Sprintf("%s %q exists only in the blueprint", bp[i].Kind, bp[i].Name),
			BlueprintSide: bp[i].Signature(),
			ConflictLevel: types.ConflictNone,
		})
	}
	for j := range cpp {
		if matchedCpp[j] {
			continue
		}
		result.Changes = append(result.Changes, types.SemanticChange{
			ID:            nextID(&seq),
			Type:          types.ChangeRemove,
			Scope:         scopeOf(cpp[j].Kind),
			Name:          cpp[j].Name,
			Description:   fmt.Sprintf("%s %q exists only in the existing source", cpp[j].Kind, cpp[j].Name),
			CppSide:       cpp[j].Signature(),
			ConflictLevel: types.ConflictConflict,
			Resolution:    "delete the C++ declaration or restore the blueprint symbol",
		})
	}

	for _, change := range result.Changes {
		result.OverallConflict = types.MaxConflict(result.OverallConflict, change.ConflictLevel)
	}
	return result
}

// compareMatched classifies a name-matched pair: unchanged (ok=false),
// moved, or modified.
func (e *Engine) compareMatched(bp, cpp symbols.Symbol, className string, seq *int) (types.SemanticChange, bool) {
	if sameSignature(bp, cpp) {
		if cpp.Scope != "" && cpp.Scope != className {
			return types.SemanticChange{
				ID:            nextID(seq),
				Type:          types.ChangeMove,
				Scope:         scopeOf(bp.Kind),
				Name:          bp.Name,
				Description:   fmt.Sprintf("%s %q is defined on %s instead of %s", bp.Kind, bp.Name, cpp.Scope, className),
				BlueprintSide: bp.Signature(),
				CppSide:       cpp.Signature(),
				ConflictLevel: types.ConflictCompatible,
				Resolution:    fmt.Sprintf("move the definition back to %s", className),
			}, true
		}
		return types.SemanticChange{}, false
	}

	return types.SemanticChange{
		ID:            nextID(seq),
		Type:          types.ChangeModify,
		Scope:         scopeOf(bp.Kind),
		Name:          bp.Name,
		Description:   fmt.Sprintf("%s %q signature differs: blueprint has %s, source has %s", bp.Kind, bp.Name, bp.Signature(), cpp.Signature()),
		BlueprintSide: bp.Signature(),
		CppSide:       cpp.Signature(),
		ConflictLevel: e.modifySeverity(bp, cpp),
		Resolution:    "reconcile the signature on one side",
	}, true
}

// modifySeverity applies the widening-versus-narrowing policy. Widening a
// type or appending parameters keeps callers working; narrowing, dropping
// parameters, or changing the return type breaks them.
func (e *Engine) modifySeverity(bp, cpp symbols.Symbol) types.ConflictLevel {
	if e.policy.StrictModify {
		return types.ConflictConflict
	}

	if bp.Kind == symbols.KindVariable {
		if isWidening(cpp.Type, bp.Type) {
			return types.ConflictCompatible
		}
		return types.ConflictConflict
	}

	if bp.Type != cpp.Type {
		return types.ConflictConflict
	}
	if len(bp.Params) < len(cpp.Params) {
		return types.ConflictConflict
	}
	for i := range cpp.Params {
		if bp.Params[i].Type == cpp.Params[i].Type {
			continue
		}
		if !isWidening(cpp.Params[i].Type, bp.Params[i].Type) {
			return types.ConflictConflict
		}
	}
	// Same prefix, extra trailing parameters on the blueprint side.
	return types.ConflictCompatible
}

// isWidening reports whether changing a type from one tag to another loses
// no information.
func isWidening(from, to string) bool {
	return from == "int" && to == "float"
}

func sameSignature(a, b symbols.Symbol) bool {
	if a.Kind == symbols.KindVariable {
		return a.Type == b.Type
	}
	if a.Type != b.Type || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Type != b.Params[i].Type {
			return false
		}
	}
	return true
}

func scopeOf(kind symbols.Kind) types.ChangeScope {
	if kind == symbols.KindVariable {
		return types.ScopeVariable
	}
	return types.ScopeFunction
}

func nextID(seq *int) string {
	*seq++
	return fmt.Sprintf("change-%d", *seq)
}

// BlueprintSymbols builds the blueprint-side symbol set using the same
// identifier sanitization and type tags as the code emitter, so names line
// up with what extraction finds in generated code.
func BlueprintSymbols(asset *blueprint.Asset) []symbols.Symbol {
	san := codegen.NewSanitizer()
	san.Sanitize(asset.ClassName)
	san.Sanitize(asset.ParentClass)

	var out []symbols.Symbol
	for _, v := range asset.Variables {
		out = append(out, symbols.Symbol{
			Name: san.Sanitize(v.Name),
			Kind: symbols.KindVariable,
			Type: string(v.Type),
		})
	}

	seenGraphs := make(map[string]bool, len(asset.Graphs))
	for _, graph := range asset.Graphs {
		// First graph wins a duplicated name, as in emission.
		if seenGraphs[graph.Name] {
			continue
		}
		seenGraphs[graph.Name] = true
		for _, entry := range graph.Entries() {
			sym := symbols.Symbol{
				Name:  san.Sanitize(entry.Title()),
				Kind:  symbols.KindFunction,
				Type:  "void",
				Scope: graph.Name,
			}
			for _, pin := range entry.DataOutputs() {
				sym.Params = append(sym.Params, symbols.Param{
					Name: san.Sanitize(pin.Name),
					Type: tagForCategory(pin.Category),
				})
			}
			out = append(out, sym)
		}
	}
	return out
}

// tagForCategory mirrors the emitter's category-to-C++ mapping collapsed to
// primitive tags.
func tagForCategory(c blueprint.PinCategory) string {
	switch c {
	case blueprint.CategoryFloat:
		return "float"
	case blueprint.CategoryBool:
		return "bool"
	case blueprint.CategoryInt:
		return "int"
	case blueprint.CategoryString:
		return "string"
	}
	return "object"
}

func summarize(asset *blueprint.Asset) string {
	return fmt.Sprintf("%s (parent %s): %d variables, %d functions, %d graphs",
		asset.ClassName, asset.ParentClass, len(asset.Variables), asset.FunctionCount(), len(asset.Graphs))
}
