// Package spatial maintains a directional adjacency graph over blocks and
// provides read-only traversal over it.
//
// # Overview
//
// Every edge is a triple (source, direction, target) meaning "target lies in
// direction of source". A viewer navigates the arrangement by following these
// edges: left/right within a row, up/down between rows, forward/backward
// between depth planes.
//
//	g := spatial.New()
//	g.ConnectWithInverses(a, spatial.Right, b) // a → Right → b, b → Left → a
//	g.RelationsIn(b, spatial.Left)             // [a]
//
// # Invariants
//
//   - No self-loops: Connect(x, d, x) is a no-op.
//   - No duplicates: a second identical (direction, target) on the same
//     source is a no-op.
//   - ConnectWithInverses inserts both directions.
//
// Plain [Graph.Connect] inserts only one direction. It is what the repair
// pass of [Graph.DetachRetaining] uses, so after a detach the graph may hold
// a forward edge without its mirror. [Graph.DetachRetainingSymmetric] repairs
// both directions instead.
//
// # Storage
//
// Blocks live in an arena indexed by small integers; a side table maps block
// identity to arena slot and edge lists are stored in a parallel slice. Edge
// order is insertion order, which makes traversal deterministic.
//
// # Chains
//
// [IterateChain] and [Chain] follow a single direction from a starting block.
// Walking a direction that contains a cycle never terminates on its own; the
// caller must stop the walk (set *stop or break out of the range loop).
//
// # Concurrency
//
// Graph is not safe for concurrent use. Callers serialize all mutations and
// layout passes on one goroutine.
package spatial
