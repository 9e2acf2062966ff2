// Package scene defines the JSON documents exchanged with the layout engine.
//
// A [Scene] is the input: either a stream of sized blocks split into
// additions and missing blocks, or a tree of groups for hierarchical
// packing.
//
//	{
//	  "additions": [{"name": "main.go", "width": 400, "height": 120, "depth": 4}],
//	  "missing":   [{"name": "util.go", "width": 200, "height": 80, "depth": 4}]
//	}
//
//	{
//	  "root": {
//	    "anchor": {"name": "src", "width": 1, "height": 1, "depth": 1},
//	    "blocks": [{"name": "a.go", "width": 40, "height": 20, "depth": 2}],
//	    "groups": [{"anchor": {"name": "src/pkg", "width": 1, "height": 1, "depth": 1}}]
//	  }
//	}
//
// A [Layout] is the output: every block's placed bounds and, in stream
// mode, the adjacency edges between them. Layouts carry bson tags so the
// same value is stored in MongoDB unchanged.
//
// Block ids are optional UUIDs. Blocks without one get an id derived from
// their name, so names must be unique unless ids are given.
package scene
