package spatial

import (
	"github.com/matzehuels/gridspace/pkg/block"
)

// Relation is an outgoing edge seen from its source block.
type Relation struct {
	Direction Direction
	Target    block.Block
}

// Edge is a directed (source, direction, target) relation.
type Edge struct {
	Source    block.Block
	Direction Direction
	Target    block.Block
}

type edge struct {
	dir    Direction
	target int
}

// Graph is a directional adjacency graph over blocks.
//
// The zero value is not usable; create graphs with New.
type Graph struct {
	blocks []block.Block
	index  map[block.ID]int
	edges  [][]edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[block.ID]int)}
}

// Len returns the number of tracked blocks.
func (g *Graph) Len() int { return len(g.blocks) }

// Contains reports whether b has ever been connected since the last Clear.
func (g *Graph) Contains(b block.Block) bool {
	_, ok := g.lookup(b)
	return ok
}

// Block returns the tracked block with the given identity.
func (g *Graph) Block(id block.ID) (block.Block, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.blocks[i], true
}

// Blocks returns all tracked blocks in the order they were first connected.
func (g *Graph) Blocks() []block.Block {
	out := make([]block.Block, len(g.blocks))
	copy(out, g.blocks)
	return out
}

// Connect adds the single edge source → d → target. It returns false without
// changing the graph when the edge already exists or would be a self-loop.
func (g *Graph) Connect(source block.Block, d Direction, target block.Block) bool {
	if source == nil || target == nil || block.Same(source, target) {
		return false
	}
	return g.connect(g.slot(source), d, g.slot(target))
}

// ConnectWithInverses adds source → d → target and target → d.Inverse() →
// source. It returns true if either edge was new.
func (g *Graph) ConnectWithInverses(source block.Block, d Direction, target block.Block) bool {
	forward := g.Connect(source, d, target)
	backward := g.Connect(target, d.Inverse(), source)
	return forward || backward
}

// Relations returns all outgoing edges of b in insertion order.
func (g *Graph) Relations(b block.Block) []Relation {
	i, ok := g.lookup(b)
	if !ok || len(g.edges[i]) == 0 {
		return nil
	}
	out := make([]Relation, len(g.edges[i]))
	for k, e := range g.edges[i] {
		out[k] = Relation{Direction: e.dir, Target: g.blocks[e.target]}
	}
	return out
}

// RelationsIn returns the targets of b's outgoing edges in direction d.
func (g *Graph) RelationsIn(b block.Block, d Direction) []block.Block {
	i, ok := g.lookup(b)
	if !ok {
		return nil
	}
	var out []block.Block
	for _, e := range g.edges[i] {
		if e.dir == d {
			out = append(out, g.blocks[e.target])
		}
	}
	return out
}

// Edges returns every edge, grouped by source in arena order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for i, list := range g.edges {
		for _, e := range list {
			out = append(out, Edge{Source: g.blocks[i], Direction: e.dir, Target: g.blocks[e.target]})
		}
	}
	return out
}

// DetachRetaining removes every edge from and to target, then reconnects the
// chains that ran through it: for each former parent P that pointed at target
// in direction D, and each former neighbor N that target pointed at in the
// same direction D, the single edge P → D → N is added.
//
// The repair is one-directional; the mirror edge N → D.Inverse() → P is not
// restored. It returns false when target is untracked or had no edges.
func (g *Graph) DetachRetaining(target block.Block) bool {
	return g.detach(target, false)
}

// DetachRetainingSymmetric is DetachRetaining with a repair pass that also
// restores the inverse of every reconnected edge.
func (g *Graph) DetachRetainingSymmetric(target block.Block) bool {
	return g.detach(target, true)
}

// Clear removes all blocks and edges.
func (g *Graph) Clear() {
	g.blocks = nil
	g.edges = nil
	g.index = make(map[block.ID]int)
}

type repairable struct {
	parent int
	dir    Direction
}

func (g *Graph) detach(target block.Block, symmetric bool) bool {
	t, ok := g.lookup(target)
	if !ok {
		return false
	}

	detached := g.edges[t]
	g.edges[t] = nil

	var parents []repairable
	seen := make(map[repairable]bool)
	for i, list := range g.edges {
		if i == t {
			continue
		}
		kept := list[:0]
		for _, e := range list {
			if e.target != t {
				kept = append(kept, e)
				continue
			}
			r := repairable{parent: i, dir: e.dir}
			if !seen[r] {
				seen[r] = true
				parents = append(parents, r)
			}
		}
		g.edges[i] = kept
	}

	for _, p := range parents {
		for _, e := range detached {
			if p.dir != e.dir || e.target == p.parent {
				continue
			}
			g.connect(p.parent, p.dir, e.target)
			if symmetric {
				g.connect(e.target, p.dir.Inverse(), p.parent)
			}
		}
	}

	return len(detached) > 0 || len(parents) > 0
}

func (g *Graph) connect(s int, d Direction, t int) bool {
	if s == t {
		return false
	}
	for _, e := range g.edges[s] {
		if e.dir == d && e.target == t {
			return false
		}
	}
	g.edges[s] = append(g.edges[s], edge{dir: d, target: t})
	return true
}

func (g *Graph) lookup(b block.Block) (int, bool) {
	if b == nil {
		return 0, false
	}
	i, ok := g.index[b.ID()]
	return i, ok
}

func (g *Graph) slot(b block.Block) int {
	if i, ok := g.index[b.ID()]; ok {
		return i
	}
	i := len(g.blocks)
	g.blocks = append(g.blocks, b)
	g.edges = append(g.edges, nil)
	g.index[b.ID()] = i
	return i
}
