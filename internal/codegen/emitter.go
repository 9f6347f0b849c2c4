package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bpstudio/backend/internal/blueprint"
	"github.com/bpstudio/backend/internal/flow"
	"github.com/bpstudio/backend/internal/types"
)

// Emit produces header and source text for an asset whose graphs have been
// resolved into functions. funcs maps graph name to the graph's functions;
// iteration follows the asset's graph order so output is stable.
func Emit(asset *blueprint.Asset, funcs map[string][]flow.Function) (string, string, []types.Warning) {
	e := &emitter{san: NewSanitizer()}
	return e.emit(asset, funcs)
}

type emitter struct {
	san      *Sanitizer
	warnings []types.Warning
}

func (e *emitter) emit(asset *blueprint.Asset, funcs map[string][]flow.Function) (string, string, []types.Warning) {
	className := e.san.Sanitize(asset.ClassName)
	parentClass := e.san.Sanitize(asset.ParentClass)

	// Sanitize variables before functions so encounter order matches the
	// diff engine's symbol construction.
	varNames := make([]string, len(asset.Variables))
	for i, v := range asset.Variables {
		varNames[i] = e.san.Sanitize(v.Name)
	}

	header := e.emitHeader(asset, funcs, className, parentClass, varNames)
	source := e.emitSource(asset, funcs, className)
	return header, source, e.warnings
}

func (e *emitter) emitHeader(asset *blueprint.Asset, funcs map[string][]flow.Function, className, parentClass string, varNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Generated from Blueprint asset %s. Edits may be overwritten by the next transpile.\n", asset.ClassName)
	b.WriteString("#pragma once\n\n")
	b.WriteString("#include \"CoreMinimal.h\"\n")
	fmt.Fprintf(&b, "#include \"%s.generated.h\"\n\n", className)

	b.WriteString("UCLASS(Blueprintable)\n")
	fmt.Fprintf(&b, "class %s : public %s\n{\n", className, parentClass)
	b.WriteString("\tGENERATED_BODY()\n\npublic:\n")

	for i, v := range asset.Variables {
		if v.Tooltip != "" {
			fmt.Fprintf(&b, "\t/** %s */\n", v.Tooltip)
		}
		fmt.Fprintf(&b, "\tUPROPERTY(%s)\n", propertySpecifiers(v.Flags))
		fmt.Fprintf(&b, "\t%s %s%s;\n\n", cppVarType(v.Type), varNames[i], propertyInitializer(v))
	}

	for _, graph := range uniqueGraphs(asset.Graphs) {
		for _, fn := range funcs[graph.Name] {
			name := e.san.Sanitize(fn.Name)
			params := e.paramList(fn.Params)
			if fn.IsEvent {
				fmt.Fprintf(&b, "\tvirtual void %s(%s) override;\n", name, params)
			} else {
				b.WriteString("\tUFUNCTION(BlueprintCallable)\n")
				fmt.Fprintf(&b, "\tvoid %s(%s);\n", name, params)
			}
		}
	}

	b.WriteString("};\n")
	return b.String()
}

func (e *emitter) emitSource(asset *blueprint.Asset, funcs map[string][]flow.Function, className string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Generated from Blueprint asset %s. Edits may be overwritten by the next transpile.\n", asset.ClassName)
	fmt.Fprintf(&b, "#include \"%s.h\"\n", className)

	for _, graph := range uniqueGraphs(asset.Graphs) {
		for _, fn := range funcs[graph.Name] {
			name := e.san.Sanitize(fn.Name)
			fmt.Fprintf(&b, "\nvoid %s::%s(%s)\n{\n", className, name, e.paramList(fn.Params))
			e.emitStatements(&b, fn.Body, 1)
			b.WriteString("}\n")
		}
	}

	return b.String()
}

// uniqueGraphs filters graphs to the first occurrence of each name, matching
// the resolver's first-wins handling of duplicate graph names.
func uniqueGraphs(graphs []*blueprint.Graph) []*blueprint.Graph {
	seen := make(map[string]bool, len(graphs))
	var out []*blueprint.Graph
	for _, g := range graphs {
		if seen[g.Name] {
			continue
		}
		seen[g.Name] = true
		out = append(out, g)
	}
	return out
}

func (e *emitter) paramList(params []flow.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = cppCategoryType(p.Category) + " " + e.san.Sanitize(p.Name)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) emitStatements(b *strings.Builder, stmts []flow.Statement, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *flow.Call:
			fmt.Fprintf(b, "%s%s(%s);\n", indent, e.san.Sanitize(s.Target), e.argList(s.Args))
		case *flow.Assign:
			fmt.Fprintf(b, "%s%s = %s;\n", indent, e.san.Sanitize(s.Variable), e.expr(s.Value))
		case *flow.Local:
			fmt.Fprintf(b, "%s%s %s = %s;\n", indent, cppCategoryType(s.Category), e.san.Sanitize(s.Name), e.expr(s.Value))
		case *flow.Branch:
			fmt.Fprintf(b, "%sif (%s)\n%s{\n", indent, e.expr(s.Cond), indent)
			e.emitStatements(b, s.Then, depth+1)
			fmt.Fprintf(b, "%s}\n", indent)
			if len(s.Else) > 0 {
				fmt.Fprintf(b, "%selse\n%s{\n", indent, indent)
				e.emitStatements(b, s.Else, depth+1)
				fmt.Fprintf(b, "%s}\n", indent)
			}
		case *flow.Stub:
			fmt.Fprintf(b, "%s// Unsupported node: %s (%s)\n%s;\n", indent, s.RawClass, s.Title, indent)
			e.warnings = append(e.warnings, types.NewInfo(
				fmt.Sprintf("emitted stub for unsupported node %s", s.Title)))
		case *flow.NoOp:
			fmt.Fprintf(b, "%s// %s\n%s;\n", indent, s.Reason, indent)
		}
	}
}

func (e *emitter) argList(args []flow.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.expr(a)
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) expr(x flow.Expr) string {
	switch v := x.(type) {
	case *flow.VarRef:
		return e.san.Sanitize(v.Name)
	case *flow.ParamRef:
		return e.san.Sanitize(v.Name)
	case *flow.CallExpr:
		return fmt.Sprintf("%s(%s)", e.san.Sanitize(v.Target), e.argList(v.Args))
	case *flow.Literal:
		return literal(v)
	}
	return "0"
}

// literal renders an unlinked pin default. Text that does not scan as a
// value of the pin's category passes through verbatim: emission is
// best-effort and the raw text preserves the author's intent.
func literal(v *flow.Literal) string {
	text := strings.TrimSpace(v.Text)
	switch v.Category {
	case blueprint.CategoryFloat:
		if text == "" {
			return "0.0f"
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return formatFloat(f)
		}
		return text
	case blueprint.CategoryInt:
		if text == "" {
			return "0"
		}
		return text
	case blueprint.CategoryBool:
		if text == "" {
			return "false"
		}
		if strings.EqualFold(text, "true") {
			return "true"
		}
		if strings.EqualFold(text, "false") {
			return "false"
		}
		return text
	case blueprint.CategoryString:
		return fmt.Sprintf("TEXT(\"%s\")", escapeString(v.Text))
	case blueprint.CategoryObject:
		if text == "" {
			return "nullptr"
		}
		return text
	}
	if text == "" {
		return "0"
	}
	return text
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// propertySpecifiers maps Blueprint property flags to UPROPERTY specifiers,
// preserving flag order and deduplicating. Unknown flags are skipped; no
// mapped flag at all falls back to EditAnywhere.
func propertySpecifiers(flags []string) string {
	var specs []string
	seen := make(map[string]bool)
	add := func(spec string) {
		if !seen[spec] {
			seen[spec] = true
			specs = append(specs, spec)
		}
	}
	for _, flag := range flags {
		switch strings.ToLower(flag) {
		case "editable", "edit":
			add("EditAnywhere")
		case "visible":
			add("VisibleAnywhere")
		case "exposed", "blueprintreadwrite":
			add("BlueprintReadWrite")
		case "readonly", "blueprintreadonly":
			add("BlueprintReadOnly")
		case "config":
			add("Config")
		case "transient":
			add("Transient")
		}
	}
	if len(specs) == 0 {
		return "EditAnywhere"
	}
	return strings.Join(specs, ", ")
}

// propertyInitializer renders the declare-with-default idiom per type.
func propertyInitializer(v blueprint.Variable) string {
	switch v.Type {
	case blueprint.TypeFloat:
		text := strings.TrimSpace(v.Default)
		if text == "" {
			return " = 0.0f"
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return " = " + formatFloat(f)
		}
		return " = " + text
	case blueprint.TypeInt:
		if strings.TrimSpace(v.Default) == "" {
			return " = 0"
		}
		return " = " + strings.TrimSpace(v.Default)
	case blueprint.TypeBool:
		if strings.EqualFold(strings.TrimSpace(v.Default), "true") {
			return " = true"
		}
		return " = false"
	case blueprint.TypeString:
		if v.Default == "" {
			return ""
		}
		return fmt.Sprintf(" = TEXT(\"%s\")", escapeString(v.Default))
	case blueprint.TypeObject:
		return " = nullptr"
	}
	return ""
}

// cppVarType maps a variable's primitive tag to its C++ type.
func cppVarType(t blueprint.VarType) string {
	switch t {
	case blueprint.TypeFloat:
		return "float"
	case blueprint.TypeBool:
		return "bool"
	case blueprint.TypeInt:
		return "int32"
	case blueprint.TypeString:
		return "FString"
	}
	return "UObject*"
}

// cppCategoryType maps a pin category to its C++ type.
func cppCategoryType(c blueprint.PinCategory) string {
	switch c {
	case blueprint.CategoryFloat:
		return "float"
	case blueprint.CategoryBool:
		return "bool"
	case blueprint.CategoryInt:
		return "int32"
	case blueprint.CategoryString:
		return "FString"
	}
	return "UObject*"
}
