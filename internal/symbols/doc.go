// Package symbols extracts a coarse symbol table from existing C++ source
// text.
//
// This is deliberately shallow: declaration-shaped lines are matched with
// patterns, not parsed into an AST. The diff engine only needs each symbol's
// name, kind, and a coarse signature (parameter count plus primitive type
// tags), so a broken or exotic file degrades into a partial table with a
// warning instead of an error. Extraction never fails.
package symbols
