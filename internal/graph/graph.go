// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

// Package graph holds the undirected weighted graph produced for one
// recommendation request and its JSON wire form.
package graph

import "errors"

var (
	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("graph: self-loop")

	// ErrUnknownNode is returned when an edge references a node not in the graph.
	ErrUnknownNode = errors.New("graph: unknown node")
)

// Edge is an undirected weighted edge. Source is the endpoint added to the
// graph first.
type Edge struct {
	Source string
	Target string
	Weight int
}

type edgeKey struct{ a, b string }

func keyOf(u, v string) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Graph is an undirected graph without self-loops or parallel edges. Nodes and
// edges keep their insertion order. It is built and read by a single request
// and is not safe for concurrent mutation.
type Graph struct {
	nodes []string
	index map[string]int
	edges []Edge
	edgeI map[edgeKey]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		edgeI: make(map[edgeKey]int),
	}
}

// AddNode adds id and reports whether it was new.
func (g *Graph) AddNode(id string) bool {
	if _, ok := g.index[id]; ok {
		return false
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	return true
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// AddEdge connects u and v. Adding an existing edge again replaces its weight.
func (g *Graph) AddEdge(u, v string, weight int) error {
	if u == v {
		return ErrSelfLoop
	}
	iu, okU := g.index[u]
	iv, okV := g.index[v]
	if !okU || !okV {
		return ErrUnknownNode
	}

	k := keyOf(u, v)
	if i, ok := g.edgeI[k]; ok {
		g.edges[i].Weight = weight
		return nil
	}

	if iv < iu {
		u, v = v, u
	}
	g.edgeI[k] = len(g.edges)
	g.edges = append(g.edges, Edge{Source: u, Target: v, Weight: weight})
	return nil
}

// Edge returns the edge between u and v in either direction.
func (g *Graph) Edge(u, v string) (Edge, bool) {
	i, ok := g.edgeI[keyOf(u, v)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Nodes returns node ids in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
