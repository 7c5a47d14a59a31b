package graph

import "sort"

const (
	white = iota
	grey
	black
)

// FindCycle returns the vertex ids of one directed cycle in g, in edge
// order, or nil if g is acyclic. Vertices are visited in ascending id order
// so the reported cycle is deterministic.
func FindCycle(g DirectedGraph) []int {
	successors := make(map[int][]int, g.NumberOfVertices())
	for _, edgeID := range g.GetEdges() {
		edge := g.GetDirectedEdge(edgeID)
		successors[edge.From()] = append(successors[edge.From()], edge.To())
	}
	vertices := g.GetVertices()
	sort.Ints(vertices)

	color := make(map[int]int, len(vertices))
	stack := make([]int, 0, len(vertices))
	var visit func(v int) []int
	visit = func(v int) []int {
		color[v] = grey
		stack = append(stack, v)
		for _, next := range successors[v] {
			switch color[next] {
			case grey:
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						cycle := make([]int, len(stack)-i)
						copy(cycle, stack[i:])
						return cycle
					}
				}
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[v] = black
		return nil
	}
	for _, v := range vertices {
		if color[v] == white {
			if cycle := visit(v); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
