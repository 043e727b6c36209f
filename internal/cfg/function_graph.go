package cfg

import "github.com/llir/llvm/ir"

// FunctionGraph is the function-level CFG rooted at one root function:
// vertices are every function transitively reachable via direct call
// instructions (spec.md 4.2).
type FunctionGraph struct {
	*Graph[*ir.Func]
	Root *ir.Func
}

// BuildFunctionGraph traverses from root, adding one vertex per function
// reachable via direct calls and one edge per (caller, callee) pair,
// following spec.md 4.2's recursion rules exactly:
//
//   - self-call (f calls f): add the edge, do not recurse again into f.
//   - cycle (f calls g, g calls f): add the edge; since f is already a
//     vertex, do not re-recurse into it.
//   - duplicate call (f calls g twice): AddEdge is idempotent, so the
//     second call site contributes no second edge; vertex ids don't move.
//
// calleesOf resolves the functions a given function directly calls, in
// call-site order; it returns only callees that are candidates for a
// function-graph vertex (defined functions in the same traversal universe)
// — a call to an external declaration never reaches this list, which is
// what keeps extern calls from creating function-graph edges (spec.md 9).
func BuildFunctionGraph(root *ir.Func, calleesOf func(fn *ir.Func) []*ir.Func) *FunctionGraph {
	g := &FunctionGraph{Graph: NewGraph[*ir.Func](), Root: root}
	g.AddVertex(root)

	var visit func(fn *ir.Func)
	visit = func(fn *ir.Func) {
		u, _ := g.VertexID(fn)
		for _, callee := range calleesOf(fn) {
			wasVisited := g.HasVertex(callee)
			v := g.AddVertex(callee)
			g.AddEdge(u, v)
			if !wasVisited {
				visit(callee)
			}
		}
	}
	visit(root)
	return g
}
