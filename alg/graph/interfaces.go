package graph

import "spinach/util"

type Vertex interface {
	util.Equaler
	ID() int
}

type Edge interface {
	util.Equaler
	Vertices() []int
	ID() int
}

type DirectedEdge interface {
	Edge
	From() int
	To() int
}

type Graph interface {
	GetVertices() []int
	GetEdges() []int
	GetVertex(int) Vertex
	GetEdge(int) Edge
	NumberOfVertices() int
	NumberOfEdges() int
}

type DirectedGraph interface {
	Graph
	GetDirectedEdge(int) DirectedEdge
}
