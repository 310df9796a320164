// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package graph

// Node is a node in the wire form.
type Node struct {
	ID string `json:"id"`
}

// Link is an edge in the wire form, shaped for force-directed renderers.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Payload is the JSON form of a graph: {"nodes": [...], "links": [...]}.
type Payload struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Serialize converts g to its wire form. Both lists are non-nil so they
// encode as [] rather than null.
func Serialize(g *Graph) Payload {
	p := Payload{
		Nodes: make([]Node, 0, g.NodeCount()),
		Links: make([]Link, 0, g.EdgeCount()),
	}
	for _, id := range g.nodes {
		p.Nodes = append(p.Nodes, Node{ID: id})
	}
	for _, e := range g.edges {
		p.Links = append(p.Links, Link{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return p
}

// NodeIDs returns the node ids of the payload in order.
func (p Payload) NodeIDs() []string {
	ids := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		ids[i] = n.ID
	}
	return ids
}
