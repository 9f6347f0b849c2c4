// Package codegen emits Unreal-flavored C++ header and source text from a
// parsed Blueprint asset and its resolved statement trees.
//
// Emission is fully deterministic: output order follows the asset's variable
// and graph order, identifier collisions are disambiguated by a stable
// encounter-order counter, and nothing reads the clock or iterates a map
// into the output. Transpiling the same asset twice yields byte-identical
// text.
package codegen
