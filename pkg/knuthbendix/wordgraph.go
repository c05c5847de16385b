package knuthbendix

// UndefinedNode marks the absence of an edge in a WordGraph.
const UndefinedNode = ^uint32(0)

// WordGraph is a deterministic labelled digraph with a fixed out-degree:
// every node has one optional edge per label. It is the minimal automaton
// contract needed by the Gilman digraph and normal-form enumeration.
type WordGraph struct {
	outDegree int
	edges     []uint32 // edges[node*outDegree+label], UndefinedNode if absent
}

// NewWordGraph creates a graph with the given node count and out-degree and
// no edges.
func NewWordGraph(nodes, outDegree int) *WordGraph {
	g := &WordGraph{outDegree: outDegree}
	g.AddNodes(nodes)
	return g
}

// AddNodes appends n edgeless nodes.
func (g *WordGraph) AddNodes(n int) {
	old := len(g.edges)
	g.edges = append(g.edges, make([]uint32, n*g.outDegree)...)
	for i := old; i < len(g.edges); i++ {
		g.edges[i] = UndefinedNode
	}
}

// NumberOfNodes returns the node count.
func (g *WordGraph) NumberOfNodes() int {
	if g.outDegree == 0 {
		return 0
	}
	return len(g.edges) / g.outDegree
}

// OutDegree returns the number of labels.
func (g *WordGraph) OutDegree() int {
	return g.outDegree
}

// AddEdge sets the edge from src with the given label to tgt.
func (g *WordGraph) AddEdge(src, tgt uint32, label int) {
	g.edges[int(src)*g.outDegree+label] = tgt
}

// Neighbor returns the target of the edge from src with the given label,
// and whether that edge exists.
func (g *WordGraph) Neighbor(src uint32, label int) (uint32, bool) {
	t := g.edges[int(src)*g.outDegree+label]
	return t, t != UndefinedNode
}

// NumberOfEdges returns how many edges are defined.
func (g *WordGraph) NumberOfEdges() int {
	n := 0
	for _, t := range g.edges {
		if t != UndefinedNode {
			n++
		}
	}
	return n
}
