package transpiler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bpstudio/backend/internal/blueprint"
	"github.com/bpstudio/backend/internal/codegen"
	"github.com/bpstudio/backend/internal/config"
	"github.com/bpstudio/backend/internal/diff"
	"github.com/bpstudio/backend/internal/flow"
	"github.com/bpstudio/backend/internal/logging"
	"github.com/bpstudio/backend/internal/symbols"
	"github.com/bpstudio/backend/internal/types"
)

// Service runs transpile and diff invocations. Each call is a bounded, pure
// computation over its own input; the service holds only configuration and
// a logger, so it is safe for concurrent use without coordination.
type Service struct {
	limits config.LimitsConfig
	engine *diff.Engine
	logger *logging.Logger
}

// NewService creates a service from configuration.
func NewService(cfg *config.Config, logger *logging.Logger) *Service {
	return &Service{
		limits: cfg.Limits,
		engine: diff.NewEngine(diff.Policy{
			RenameThreshold: cfg.Diff.RenameThreshold,
			StrictModify:    cfg.Diff.StrictModify,
		}),
		logger: logger,
	}
}

// Transpile converts a serialized Blueprint document into header and source
// text. Anomalies in the document surface as warnings on the result; only
// an undecodable document or one over the configured size limit fails.
func (s *Service) Transpile(content []byte) (*types.TranspileResult, error) {
	if err := s.checkSize(content); err != nil {
		return nil, err
	}

	asset, warnings, err := blueprint.Parse(content)
	if err != nil {
		return nil, err
	}

	funcs, resolveWarnings := s.resolveGraphs(asset)
	warnings = append(warnings, resolveWarnings...)

	header, source, emitWarnings := codegen.Emit(asset, funcs)
	warnings = append(warnings, emitWarnings...)
	if warnings == nil {
		warnings = []types.Warning{}
	}

	result := &types.TranspileResult{
		ClassName:     asset.ClassName,
		ParentClass:   asset.ParentClass,
		HeaderCode:    header,
		SourceCode:    source,
		NodeCount:     asset.NodeCount(),
		FunctionCount: asset.FunctionCount(),
		Warnings:      warnings,
	}

	s.logger.Info("transpile completed",
		zap.String("class", asset.ClassName),
		zap.Int("nodes", result.NodeCount),
		zap.Int("functions", result.FunctionCount),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// Diff compares a Blueprint document against existing source text. It always
// returns a result for a parseable document; extraction problems degrade
// into warnings on the result.
func (s *Service) Diff(content []byte, existingSource string) (*types.DiffResult, error) {
	if err := s.checkSize(content); err != nil {
		return nil, err
	}

	asset, parseWarnings, err := blueprint.Parse(content)
	if err != nil {
		return nil, err
	}

	table := symbols.Extract(existingSource)
	result := s.engine.Diff(asset, table)
	result.Warnings = append(parseWarnings, result.Warnings...)

	s.logger.Info("diff completed",
		zap.String("class", asset.ClassName),
		zap.String("overall", string(result.OverallConflict)),
		zap.Int("changes", len(result.Changes)),
	)
	return result, nil
}

// ExtractSymbols exposes extraction on its own for callers that want to
// inspect what the differ would see in a source file.
func (s *Service) ExtractSymbols(source string) *symbols.Table {
	return symbols.Extract(source)
}

func (s *Service) checkSize(content []byte) error {
	if s.limits.MaxDocumentBytes > 0 && len(content) > s.limits.MaxDocumentBytes {
		return fmt.Errorf("document size %d exceeds limit %d bytes", len(content), s.limits.MaxDocumentBytes)
	}
	return nil
}

// resolveGraphs runs control-flow resolution per graph, keyed by graph name
// and iterated in asset order for deterministic emission.
func (s *Service) resolveGraphs(asset *blueprint.Asset) (map[string][]flow.Function, []types.Warning) {
	funcs := make(map[string][]flow.Function, len(asset.Graphs))
	var warnings []types.Warning
	for _, graph := range asset.Graphs {
		// Duplicate graph names were warned about at parse time; the
		// first graph keeps the name.
		if _, dup := funcs[graph.Name]; dup {
			continue
		}
		if s.limits.MaxGraphNodes > 0 && len(graph.Nodes) > s.limits.MaxGraphNodes {
			warnings = append(warnings, types.NewWarning(fmt.Sprintf(
				"graph %q has %d nodes, over the %d node limit; skipped", graph.Name, len(graph.Nodes), s.limits.MaxGraphNodes)))
			funcs[graph.Name] = nil
			continue
		}
		resolved, resolveWarnings := flow.Resolve(graph)
		warnings = append(warnings, resolveWarnings...)
		funcs[graph.Name] = resolved
	}
	return funcs, warnings
}
