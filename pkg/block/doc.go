// Package block defines the opaque, sized, positionable unit that the layout
// engine arranges.
//
// # Overview
//
// A [Block] is owned by an external renderer. The engine identifies it by
// [ID], reads its current [Bounds] and writes new positions back through
// [Block.SetBounds]. It never keeps its own copy of a position, so every
// placement is immediately visible to subsequent reads.
//
// # Coordinates
//
// Bounds are axis-aligned:
//
//	X: Leading  < Trailing
//	Y: Bottom   < Top      (rows grow downward, towards negative Y)
//	Z: Back     < Front    (planes grow backward, towards negative Z)
//
// The Move* helpers translate a block so that one face lands on a target
// coordinate while preserving its size:
//
//	block.MoveLeading(b, anchor.Bounds().Trailing+gap)
//	block.MoveTop(b, anchor.Bounds().Top)
//
// # Identity
//
// [ID] wraps a UUID. Equality and hashing are by ID only; two blocks with the
// same content but different IDs are different blocks. [IDFromName] derives a
// stable ID from a display name so that repeated ingestion of the same
// content maps to the same identity.
//
// [Box] is the in-memory reference implementation used by the wire format,
// the CLI and tests.
package block
