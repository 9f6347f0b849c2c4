package blueprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpstudio/backend/internal/types"
)

func TestParseMinimal(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Door",
		"ParentClass": "Actor",
		"Variables": [
			{"VarName": "bIsOpen", "VarType": "bool", "PropertyFlags": ["editable"], "DefaultValue": "false"}
		],
		"Graphs": []
	}`)

	asset, warnings, err := Parse(doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "BP_Door", asset.ClassName)
	assert.Equal(t, "Actor", asset.ParentClass)
	require.Len(t, asset.Variables, 1)
	assert.Equal(t, "bIsOpen", asset.Variables[0].Name)
	assert.Equal(t, TypeBool, asset.Variables[0].Type)
	assert.Equal(t, []string{"editable"}, asset.Variables[0].Flags)
}

func TestParseMalformedJSON(t *testing.T) {
	_, _, err := Parse([]byte(`{"ClassName": `))
	assert.Error(t, err)
}

func TestParseMissingClassName(t *testing.T) {
	_, _, err := Parse([]byte(`{"ParentClass": "Actor"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClassName")
}

func TestParseDefaultsParentClass(t *testing.T) {
	asset, warnings, err := Parse([]byte(`{"ClassName": "BP_Orphan"}`))
	require.NoError(t, err)

	assert.Equal(t, "Actor", asset.ParentClass)
	require.Len(t, warnings, 1)
	assert.Equal(t, types.SeverityInfo, warnings[0].Severity)
}

func TestParseDuplicateVariable(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Dup",
		"ParentClass": "Actor",
		"Variables": [
			{"VarName": "Health", "VarType": "float"},
			{"VarName": "Health", "VarType": "int"}
		]
	}`)

	asset, warnings, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, asset.Variables, 1)
	assert.Equal(t, TypeFloat, asset.Variables[0].Type)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "duplicate variable")
}

func TestParseDuplicateGraphName(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Dup",
		"ParentClass": "Actor",
		"Graphs": [
			{"GraphName": "EventGraph", "GraphType": "event", "Nodes": []},
			{"GraphName": "EventGraph", "GraphType": "event", "Nodes": []}
		]
	}`)

	asset, warnings, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, asset.Graphs, 2)
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "duplicate graph name") {
			found = true
		}
	}
	assert.True(t, found, "expected duplicate graph warning, got %v", warnings)
}

func TestParseUnknownVariableType(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Strange",
		"ParentClass": "Actor",
		"Variables": [{"VarName": "Target", "VarType": "delegate"}]
	}`)

	asset, warnings, err := Parse(doc)
	require.NoError(t, err)

	require.Len(t, asset.Variables, 1)
	assert.Equal(t, TypeObject, asset.Variables[0].Type)
	assert.Equal(t, "delegate", asset.Variables[0].RawType)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "unrecognized type")
}

func TestParseUnsupportedNodeClass(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Exotic",
		"ParentClass": "Actor",
		"Graphs": [{
			"GraphName": "EventGraph",
			"GraphType": "event",
			"Nodes": [
				{"NodeGuid": "n1", "NodeClass": "K2Node_Timeline", "Name": "MoveDoor", "Pins": []}
			]
		}]
	}`)

	asset, warnings, err := Parse(doc)
	require.NoError(t, err)

	node, ok := asset.Graphs[0].Node("n1")
	require.True(t, ok)
	assert.Equal(t, KindUnsupported, node.Kind)
	assert.Equal(t, "K2Node_Timeline", node.RawClass)

	found := false
	for _, w := range warnings {
		if w.Message == "unsupported node class: K2Node_Timeline" {
			found = true
		}
	}
	assert.True(t, found, "expected unsupported node class warning")
}

func TestParseDanglingLink(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Broken",
		"ParentClass": "Actor",
		"Graphs": [{
			"GraphName": "EventGraph",
			"GraphType": "event",
			"Nodes": [{
				"NodeGuid": "n1",
				"NodeClass": "K2Node_Event",
				"Name": "BeginPlay",
				"Pins": [
					{"PinName": "then", "PinType": {"PinCategory": "exec"}, "Direction": "out", "LinkedTo": ["missing"]}
				]
			}]
		}]
	}`)

	_, warnings, err := Parse(doc)
	require.NoError(t, err)

	found := false
	for _, w := range warnings {
		if w.Severity == types.SeverityWarning && containsAll(w.Message, "dangling link", "missing") {
			found = true
		}
	}
	assert.True(t, found, "expected dangling link warning, got %v", warnings)
}

func TestParseExecFanOut(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Fan",
		"ParentClass": "Actor",
		"Graphs": [{
			"GraphName": "EventGraph",
			"GraphType": "event",
			"Nodes": [
				{
					"NodeGuid": "n1",
					"NodeClass": "K2Node_Event",
					"Name": "BeginPlay",
					"Pins": [{"PinName": "then", "PinType": {"PinCategory": "exec"}, "Direction": "out", "LinkedTo": ["n2", "n3"]}]
				},
				{
					"NodeGuid": "n2",
					"NodeClass": "K2Node_CallFunction",
					"MemberName": "First",
					"Pins": [{"PinName": "execute", "PinType": {"PinCategory": "exec"}, "Direction": "in"}]
				},
				{
					"NodeGuid": "n3",
					"NodeClass": "K2Node_CallFunction",
					"MemberName": "Second",
					"Pins": [{"PinName": "execute", "PinType": {"PinCategory": "exec"}, "Direction": "in"}]
				}
			]
		}]
	}`)

	_, warnings, err := Parse(doc)
	require.NoError(t, err)

	found := false
	for _, w := range warnings {
		if containsAll(w.Message, "fans out", "only the first is followed") {
			found = true
		}
	}
	assert.True(t, found, "expected fan-out warning, got %v", warnings)
}

func TestParseFunctionGraphEntryCount(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_NoEntry",
		"ParentClass": "Actor",
		"Graphs": [{"GraphName": "DoThing", "GraphType": "function", "Nodes": []}]
	}`)

	_, warnings, err := Parse(doc)
	require.NoError(t, err)

	found := false
	for _, w := range warnings {
		if containsAll(w.Message, "DoThing", "expected exactly one") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseVarType(t *testing.T) {
	tests := []struct {
		raw  string
		want VarType
		ok   bool
	}{
		{"float", TypeFloat, true},
		{"Real", TypeFloat, true},
		{"double", TypeFloat, true},
		{"bool", TypeBool, true},
		{"Boolean", TypeBool, true},
		{"int", TypeInt, true},
		{"int64", TypeInt, true},
		{"byte", TypeInt, true},
		{"string", TypeString, true},
		{"Name", TypeString, true},
		{"text", TypeString, true},
		{"object", TypeObject, true},
		{"object-ref", TypeObject, true},
		{"delegate", TypeObject, false},
		{"", TypeObject, false},
	}
	for _, tt := range tests {
		got, ok := ParseVarType(tt.raw)
		assert.Equal(t, tt.want, got, "type for %q", tt.raw)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.raw)
	}
}

func TestParseNodeKind(t *testing.T) {
	tests := []struct {
		raw  string
		want NodeKind
		ok   bool
	}{
		{"K2Node_Event", KindEvent, true},
		{"K2Node_CustomEvent", KindEvent, true},
		{"FunctionEntry", KindFunctionEntry, true},
		{"K2Node_CallFunction", KindCallFunction, true},
		{"K2Node_VariableGet", KindVariableGet, true},
		{"K2Node_VariableSet", KindVariableSet, true},
		{"K2Node_IfThenElse", KindBranch, true},
		{"Branch", KindBranch, true},
		{"K2Node_ExecutionSequence", KindSequence, true},
		{"Sequence", KindSequence, true},
		{"K2Node_Timeline", KindUnsupported, false},
		{"", KindUnsupported, false},
	}
	for _, tt := range tests {
		got, ok := ParseNodeKind(tt.raw)
		assert.Equal(t, tt.want, got, "kind for %q", tt.raw)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.raw)
	}
}

func TestGraphEntries(t *testing.T) {
	doc := []byte(`{
		"ClassName": "BP_Entries",
		"ParentClass": "Actor",
		"Graphs": [{
			"GraphName": "EventGraph",
			"GraphType": "event",
			"Nodes": [
				{"NodeGuid": "e1", "NodeClass": "K2Node_Event", "Name": "BeginPlay", "Pins": []},
				{"NodeGuid": "c1", "NodeClass": "K2Node_CallFunction", "MemberName": "Noop", "Pins": []},
				{"NodeGuid": "e2", "NodeClass": "K2Node_Event", "Name": "Tick", "Pins": []}
			]
		}]
	}`)

	asset, _, err := Parse(doc)
	require.NoError(t, err)

	entries := asset.Graphs[0].Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "BeginPlay", entries[0].Title())
	assert.Equal(t, "Tick", entries[1].Title())
	assert.Equal(t, 3, asset.NodeCount())
	assert.Equal(t, 0, asset.FunctionCount())
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
