// Package blueprint parses serialized Blueprint exports into a typed,
// validated intermediate representation.
//
// A Blueprint export carries a class (name, parent, variables) plus one or
// more node graphs. Parsing is best-effort: only undecodable input or a
// missing class name is fatal. Everything else that looks wrong (unknown
// node classes, dangling pin links, duplicate variables) degrades into
// warnings attached to the parsed asset, so downstream stages always have
// something to work with.
//
// Key Components:
//   - Parse: document bytes to Asset conversion
//   - Asset/Graph/Node/Pin: the arena-style IR consumed by flow and codegen
//   - NodeKind: closed tagged union over the open NodeClass string, with an
//     explicit unsupported fallback carrying the raw class
//
// Example:
//
//	asset, warnings, err := blueprint.Parse(content)
package blueprint
