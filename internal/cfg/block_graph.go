package cfg

import (
	"github.com/llir/llvm/ir"

	"j5.nz/fuzzgen/internal/irutil"
)

// BlockGraph is the basic-block CFG of one defined function (spec.md 4.2).
type BlockGraph struct {
	*Graph[*ir.Block]
	Func *ir.Func
}

// BuildBlockGraph pre-allocates one vertex per block in layout order (so
// vertex ids match source order even for blocks BFS never reaches), then
// walks breadth-first from the entry block adding edges from each visited
// block's terminator successors.
func BuildBlockGraph(fn *ir.Func) *BlockGraph {
	g := &BlockGraph{Graph: NewGraph[*ir.Block](), Func: fn}
	for _, b := range fn.Blocks {
		g.AddVertex(b)
	}
	if len(fn.Blocks) == 0 {
		return g
	}

	entry := fn.Blocks[0]
	visited := map[*ir.Block]bool{entry: true}
	queue := []*ir.Block{entry}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		u, _ := g.VertexID(b)

		if b.Term == nil {
			continue
		}
		for _, succ := range irutil.Successors(b.Term) {
			if succ == nil {
				continue
			}
			v, ok := g.VertexID(succ)
			if !ok {
				v = g.AddVertex(succ)
			}
			g.AddEdge(u, v)
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return g
}
