// Package flow reconstructs ordered statement trees from the unordered pin
// linkage of a parsed Blueprint graph.
//
// Control flow is recovered by walking exec pin edges only: each node's exec
// output names its sequential successor, IfThenElse nodes fork into nested
// then/else subtrees, and Sequence nodes expand into ordered siblings. Data
// pins never influence ordering; they are resolved lazily, backward from
// each consuming node, into inline expression trees. A value produced by an
// impure call and consumed more than once is hoisted into a local so it is
// evaluated exactly once.
//
// The walk keeps a currently-visiting set per path, so exec cycles that do
// not come from a recognized loop construct terminate at the revisited node
// with a warning instead of hanging. Nodes the walk never touches are
// reported as unreachable and excluded from the output.
package flow
