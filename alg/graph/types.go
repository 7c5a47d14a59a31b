package graph

import "spinach/util"

// BasicDirectedEdge is {id, from, to}
type BasicDirectedEdge [3]int

var _ DirectedEdge = BasicDirectedEdge{}

func (e BasicDirectedEdge) ID() int {
	return e[0]
}

func (e BasicDirectedEdge) From() int {
	return e[1]
}

func (e BasicDirectedEdge) To() int {
	return e[2]
}

func (e BasicDirectedEdge) Vertices() []int {
	return []int{e[1], e[2]}
}

func (e BasicDirectedEdge) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(BasicDirectedEdge)
	return ok && e[1] == other[1] && e[2] == other[2]
}
