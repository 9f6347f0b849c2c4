package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpstudio/backend/internal/blueprint"
	"github.com/bpstudio/backend/internal/symbols"
	"github.com/bpstudio/backend/internal/types"
)

func playerAsset() *blueprint.Asset {
	return &blueprint.Asset{
		ClassName:   "BP_Player",
		ParentClass: "Character",
		Variables: []blueprint.Variable{
			{Name: "Health", Type: blueprint.TypeFloat},
			{Name: "MaxHealth", Type: blueprint.TypeFloat},
		},
		Graphs: []*blueprint.Graph{
			{
				Name: "EventGraph",
				Kind: blueprint.GraphEvent,
				Nodes: []*blueprint.Node{
					{
						ID: "begin", Kind: blueprint.KindEvent, Name: "BeginPlay",
					},
				},
			},
			{
				Name: "TakeDamage",
				Kind: blueprint.GraphFunction,
				Nodes: []*blueprint.Node{
					{
						ID: "entry", Kind: blueprint.KindFunctionEntry, Name: "TakeDamage",
						Pins: []blueprint.Pin{
							{Name: "DamageAmount", Direction: blueprint.DirOut, Category: blueprint.CategoryFloat},
						},
					},
				},
			},
		},
	}
}

// matchingTable mirrors what extraction finds in the asset's own generated
// output.
func matchingTable() *symbols.Table {
	return &symbols.Table{
		HadContent: true,
		Symbols: []symbols.Symbol{
			{Name: "Health", Kind: symbols.KindVariable, Type: "float"},
			{Name: "MaxHealth", Kind: symbols.KindVariable, Type: "float"},
			{Name: "BeginPlay", Kind: symbols.KindFunction, Type: "void", Scope: "BP_Player"},
			{
				Name: "TakeDamage", Kind: symbols.KindFunction, Type: "void", Scope: "BP_Player",
				Params: []symbols.Param{{Name: "DamageAmount", Type: "float"}},
			},
		},
	}
}

func newTestEngine() *Engine {
	return NewEngine(DefaultPolicy())
}

func TestDiffIdentical(t *testing.T) {
	result := newTestEngine().Diff(playerAsset(), matchingTable())

	assert.Empty(t, result.Changes)
	assert.Equal(t, types.ConflictNone, result.OverallConflict)
	assert.Equal(t, "BP_Player (parent Character): 2 variables, 1 functions, 2 graphs", result.BlueprintSummary)
}

func TestDiffAddition(t *testing.T) {
	table := matchingTable()
	table.Symbols = table.Symbols[1:] // drop Health from the C++ side

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeAdd, change.Type)
	assert.Equal(t, types.ScopeVariable, change.Scope)
	assert.Equal(t, "Health", change.Name)
	assert.Equal(t, types.ConflictNone, change.ConflictLevel)
	assert.Equal(t, types.ConflictNone, result.OverallConflict)
}

func TestDiffRemoval(t *testing.T) {
	table := matchingTable()
	table.Symbols = append(table.Symbols, symbols.Symbol{
		Name: "Stamina", Kind: symbols.KindVariable, Type: "float",
	})

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeRemove, change.Type)
	assert.Equal(t, "Stamina", change.Name)
	assert.Equal(t, types.ConflictConflict, change.ConflictLevel)
	assert.Equal(t, types.ConflictConflict, result.OverallConflict)
	assert.NotEmpty(t, change.Resolution)
}

func TestDiffRename(t *testing.T) {
	asset := playerAsset()
	asset.Variables[1].Name = "MaxHealthPoints"

	result := newTestEngine().Diff(asset, matchingTable())

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeRename, change.Type)
	assert.Equal(t, "MaxHealthPoints", change.Name)
	assert.Contains(t, change.Description, `renamed from "MaxHealth"`)
	assert.Equal(t, types.ConflictCompatible, change.ConflictLevel)
	assert.Equal(t, types.ConflictCompatible, result.OverallConflict)
}

func TestDiffRenameBelowThreshold(t *testing.T) {
	asset := playerAsset()
	asset.Variables[1].Name = "Velocity"

	result := newTestEngine().Diff(asset, matchingTable())

	// Dissimilar names fall back to one addition and one removal.
	require.Len(t, result.Changes, 2)
	assert.Equal(t, types.ChangeAdd, result.Changes[0].Type)
	assert.Equal(t, "Velocity", result.Changes[0].Name)
	assert.Equal(t, types.ChangeRemove, result.Changes[1].Type)
	assert.Equal(t, "MaxHealth", result.Changes[1].Name)
	assert.Equal(t, types.ConflictConflict, result.OverallConflict)
}

func TestDiffWideningCompatible(t *testing.T) {
	table := matchingTable()
	table.Symbols[0].Type = "int" // Health was int in C++, float in blueprint

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeModify, change.Type)
	assert.Equal(t, types.ConflictCompatible, change.ConflictLevel)
	assert.Equal(t, types.ConflictCompatible, result.OverallConflict)
}

func TestDiffNarrowingConflicts(t *testing.T) {
	asset := playerAsset()
	asset.Variables[0].Type = blueprint.TypeInt // float in C++, int in blueprint

	result := newTestEngine().Diff(asset, matchingTable())

	require.Len(t, result.Changes, 1)
	assert.Equal(t, types.ChangeModify, result.Changes[0].Type)
	assert.Equal(t, types.ConflictConflict, result.Changes[0].ConflictLevel)
}

func TestDiffStrictModify(t *testing.T) {
	table := matchingTable()
	table.Symbols[0].Type = "int"

	engine := NewEngine(Policy{RenameThreshold: 0.55, StrictModify: true})
	result := engine.Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, types.ConflictConflict, result.Changes[0].ConflictLevel)
}

func TestDiffFunctionParamAppend(t *testing.T) {
	asset := playerAsset()
	entry := asset.Graphs[1].Nodes[0]
	entry.Pins = append(entry.Pins, blueprint.Pin{
		Name: "bCritical", Direction: blueprint.DirOut, Category: blueprint.CategoryBool,
	})

	result := newTestEngine().Diff(asset, matchingTable())

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeModify, change.Type)
	assert.Equal(t, "TakeDamage", change.Name)
	assert.Equal(t, types.ConflictCompatible, change.ConflictLevel)
}

func TestDiffFunctionParamRemoved(t *testing.T) {
	table := matchingTable()
	table.Symbols[3].Params = append(table.Symbols[3].Params, symbols.Param{Name: "Extra", Type: "bool"})

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, types.ChangeModify, result.Changes[0].Type)
	assert.Equal(t, types.ConflictConflict, result.Changes[0].ConflictLevel)
}

func TestDiffReturnTypeConflicts(t *testing.T) {
	table := matchingTable()
	table.Symbols[3].Type = "bool"

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, types.ConflictConflict, result.Changes[0].ConflictLevel)
}

func TestDiffMoveDetection(t *testing.T) {
	table := matchingTable()
	table.Symbols[3].Scope = "PlayerHelpers"

	result := newTestEngine().Diff(playerAsset(), table)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, types.ChangeMove, change.Type)
	assert.Equal(t, "TakeDamage", change.Name)
	assert.Contains(t, change.Description, "PlayerHelpers")
	assert.Equal(t, types.ConflictCompatible, change.ConflictLevel)
}

func TestDiffNilTable(t *testing.T) {
	result := newTestEngine().Diff(playerAsset(), nil)

	// Every blueprint symbol surfaces as an addition.
	assert.Len(t, result.Changes, 4)
	for _, change := range result.Changes {
		assert.Equal(t, types.ChangeAdd, change.Type)
	}

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0].Message, "existing source could not be processed")
}

func TestDiffChangeIDsSequential(t *testing.T) {
	result := newTestEngine().Diff(playerAsset(), &symbols.Table{})

	require.Len(t, result.Changes, 4)
	for i, change := range result.Changes {
		assert.Equal(t, fmt.Sprintf("change-%d", i+1), change.ID)
	}
}

func TestDiffDeterministic(t *testing.T) {
	table := matchingTable()
	table.Symbols[0].Type = "int"
	table.Symbols = append(table.Symbols, symbols.Symbol{
		Name: "Stamina", Kind: symbols.KindVariable, Type: "float",
	})

	a := newTestEngine().Diff(playerAsset(), table)
	b := newTestEngine().Diff(playerAsset(), matchingTableWith(table.Symbols))
	assert.Equal(t, a, b)
}

func matchingTableWith(syms []symbols.Symbol) *symbols.Table {
	copied := make([]symbols.Symbol, len(syms))
	copy(copied, syms)
	return &symbols.Table{HadContent: true, Symbols: copied}
}

func TestBlueprintSymbolsOrder(t *testing.T) {
	syms := BlueprintSymbols(playerAsset())

	require.Len(t, syms, 4)
	assert.Equal(t, "Health", syms[0].Name)
	assert.Equal(t, "MaxHealth", syms[1].Name)
	assert.Equal(t, "BeginPlay", syms[2].Name)
	assert.Equal(t, "EventGraph", syms[2].Scope)
	assert.Equal(t, "TakeDamage", syms[3].Name)
	require.Len(t, syms[3].Params, 1)
	assert.Equal(t, symbols.Param{Name: "DamageAmount", Type: "float"}, syms[3].Params[0])
}

func TestNewEngineClampsThreshold(t *testing.T) {
	engine := NewEngine(Policy{RenameThreshold: -1})
	assert.Equal(t, DefaultPolicy().RenameThreshold, engine.policy.RenameThreshold)

	engine = NewEngine(Policy{RenameThreshold: 2})
	assert.Equal(t, DefaultPolicy().RenameThreshold, engine.policy.RenameThreshold)
}
