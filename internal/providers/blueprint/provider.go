package blueprint

import (
	"fmt"

	"github.com/bpstudio/backend/internal/transpiler"
	"github.com/bpstudio/backend/internal/types"
)

// Provider exposes the transpiler pipeline through the service registry so
// tool-driven callers reach the same operations as the REST endpoints.
type Provider struct {
	service *transpiler.Service
}

// NewProvider creates a blueprint provider backed by the transpiler service.
func NewProvider(service *transpiler.Service) *Provider {
	return &Provider{service: service}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "blueprint",
		Name:        "Blueprint Service",
		Description: "Blueprint graph transpilation and semantic diffing",
		Category:    types.CategoryBlueprint,
		Capabilities: []string{
			"transpile",
			"diff",
			"symbol_extraction",
		},
		Tools: []types.Tool{
			{
				ID:          "blueprint.transpile",
				Name:        "Transpile Blueprint",
				Description: "Convert a serialized Blueprint document to C++ header and source",
				Parameters: []types.Parameter{
					{Name: "document", Type: "string", Description: "Serialized Blueprint JSON", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "blueprint.diff",
				Name:        "Diff Blueprint",
				Description: "Compare a Blueprint document against existing C++ source",
				Parameters: []types.Parameter{
					{Name: "document", Type: "string", Description: "Serialized Blueprint JSON", Required: true},
					{Name: "existing_source", Type: "string", Description: "Existing C++ text to diff against", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "blueprint.symbols",
				Name:        "Extract Symbols",
				Description: "Extract a coarse symbol table from C++ source text",
				Parameters: []types.Parameter{
					{Name: "source", Type: "string", Description: "C++ source text", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a tool
func (p *Provider) Execute(toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case "blueprint.transpile":
		return p.transpile(params)
	case "blueprint.diff":
		return p.diff(params)
	case "blueprint.symbols":
		return p.extractSymbols(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID)), nil
	}
}

func (p *Provider) transpile(params map[string]interface{}) (*types.Result, error) {
	document, err := stringParam(params, "document")
	if err != nil {
		return failure(err.Error()), nil
	}

	result, err := p.service.Transpile([]byte(document))
	if err != nil {
		return failure(err.Error()), nil
	}
	return success(map[string]interface{}{"result": result}), nil
}

func (p *Provider) diff(params map[string]interface{}) (*types.Result, error) {
	document, err := stringParam(params, "document")
	if err != nil {
		return failure(err.Error()), nil
	}
	existing, err := stringParam(params, "existing_source")
	if err != nil {
		return failure(err.Error()), nil
	}

	result, err := p.service.Diff([]byte(document), existing)
	if err != nil {
		return failure(err.Error()), nil
	}
	return success(map[string]interface{}{"result": result}), nil
}

func (p *Provider) extractSymbols(params map[string]interface{}) (*types.Result, error) {
	source, err := stringParam(params, "source")
	if err != nil {
		return failure(err.Error()), nil
	}

	table := p.service.ExtractSymbols(source)
	syms := make([]map[string]interface{}, 0, len(table.Symbols))
	for _, sym := range table.Symbols {
		entry := map[string]interface{}{
			"name":      sym.Name,
			"kind":      string(sym.Kind),
			"type":      sym.Type,
			"signature": sym.Signature(),
		}
		if sym.Scope != "" {
			entry["scope"] = sym.Scope
		}
		syms = append(syms, entry)
	}
	return success(map[string]interface{}{
		"symbols":  syms,
		"warnings": table.Warnings,
	}), nil
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	value, ok := params[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s parameter is required", key)
	}
	return value, nil
}

func success(data map[string]interface{}) *types.Result {
	return &types.Result{Success: true, Data: data}
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
