// Package filtergraph compiles visibility predicates and layout geometry into
// a compositing graph for ffmpeg's -filter_complex.
//
// The graph is built as an explicit value first (Graph, Node, Param) so its
// structure can be inspected and tested directly; String and Script render
// it to ffmpeg syntax as a final step. Enable expressions follow the same
// split: Expr is a small tree (Or of Between/AtLeast) that can be evaluated
// in Go and rendered with Render.
//
// Compilation is deterministic. Identical inputs always produce a
// byte-identical serialization.
package filtergraph
