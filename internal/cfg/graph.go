// Package cfg builds the two vertex-labeled directed graphs fuzzgen's
// analyzer needs: the function-level call graph rooted at one root
// function, and the per-function basic-block control-flow graph. Both share
// one adjacency-list shape (spec.md 3), parameterized here over the vertex
// payload type.
package cfg

// Graph is a directed graph whose vertices carry a monotonically assigned
// id, in the order vertices are added (pre-order of first visit for the
// function graph, block layout order for the block graph), and whose
// adjacency representation is an
// ordered list of successor ids per vertex (a list, not a set, so edges
// preserve first-seen traversal order).
type Graph[T comparable] struct {
	vertices  []T
	index     map[T]int
	adjacency [][]int
}

// NewGraph returns an empty graph.
func NewGraph[T comparable]() *Graph[T] {
	return &Graph[T]{index: make(map[T]int)}
}

// AddVertex returns the id of v, assigning the next id in sequence if v
// hasn't been added to this graph yet.
func (g *Graph[T]) AddVertex(v T) int {
	if id, ok := g.index[v]; ok {
		return id
	}
	id := len(g.vertices)
	g.vertices = append(g.vertices, v)
	g.adjacency = append(g.adjacency, nil)
	g.index[v] = id
	return id
}

// HasVertex reports whether v has already been added.
func (g *Graph[T]) HasVertex(v T) bool {
	_, ok := g.index[v]
	return ok
}

// VertexID looks up the id already assigned to v.
func (g *Graph[T]) VertexID(v T) (int, bool) {
	id, ok := g.index[v]
	return id, ok
}

// Vertex returns the payload for vertex id.
func (g *Graph[T]) Vertex(id int) T { return g.vertices[id] }

// Len is the number of vertices.
func (g *Graph[T]) Len() int { return len(g.vertices) }

// AddEdge adds u->v if it isn't already present. Checking is O(deg u), per
// spec.md 4.2's invariant.
func (g *Graph[T]) AddEdge(u, v int) {
	if g.EdgeExists(u, v) {
		return
	}
	g.adjacency[u] = append(g.adjacency[u], v)
}

// EdgeExists reports whether u->v is already an edge.
func (g *Graph[T]) EdgeExists(u, v int) bool {
	for _, s := range g.adjacency[u] {
		if s == v {
			return true
		}
	}
	return false
}

// Successors returns u's ordered successor vertex ids.
func (g *Graph[T]) Successors(u int) []int { return g.adjacency[u] }
