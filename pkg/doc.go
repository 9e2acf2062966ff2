// Package pkg provides the core libraries for gridspace spatial block layout.
//
// # Overview
//
// Gridspace arranges opaque, sized blocks in 3D space and remembers which
// block sits next to which. Two placement strategies share one adjacency
// graph: a streaming planner that fills rows and planes as blocks arrive,
// and a hierarchical packer that lays out nested groups. The pkg directory
// is organized into three areas:
//
//  1. Engine - [block], [spatial], [spatial/place], [spatial/focus], [pack]
//  2. Documents - [scene], [config], [errors]
//  3. Plumbing - [pipeline], [cache], [store], [render], [observability]
//
// # Architecture
//
// The typical data flow through gridspace:
//
//	Scene (JSON)
//	     ↓
//	[scene] package (decode + validate)
//	     ↓
//	[spatial/place] or [pack] (position blocks, wire adjacency)
//	     ↓
//	[scene] Layout (blocks + edges)
//	     ↓
//	[render/dot] / [render/plan] (Graphviz DOT, SVG)
//
// # Quick Start
//
// Place a stream of blocks and walk the resulting graph:
//
//	g := spatial.New()
//	p := place.New(g, config.Default(), nil)
//	var cur place.Cursor
//	p.ApplyAllUpdates(&cur, additions, missing)
//
//	for _, b := range spatial.Chain(g, first, spatial.Right) {
//	    fmt.Println(b.Name())
//	}
//
// Run the whole pipeline with caching:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := r.Execute(ctx, sc, pipeline.Options{
//	    Config:  config.Default(),
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Engine
//
// [block] - The positionable unit. Blocks carry an id, a name, a size and a
// position; sorting helpers order them by volume.
//
// [spatial] - Directional adjacency graph over blocks, with chain walks and
// connected component queries.
//
// [spatial/place] - Streaming insertion: additions fill rows that wrap every
// N blocks, missing blocks open new planes behind the last one.
//
// [spatial/focus] - A navigator that moves a single focus along the graph.
//
// [pack] - Greedy row packing of nested groups, with anchors resized to fit
// their contents.
//
// ## Documents
//
// [scene] - JSON input scenes and output layouts.
//
// [config] - Spacing and packing parameters, loaded from TOML.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// ## Plumbing
//
// [pipeline] - Scene → layout → render orchestration used by CLI and API.
//
// [cache] - Layout and artifact caching (file, Redis, null).
//
// [store] - Layout persistence by id (file, MongoDB, memory).
//
// [render] - Graphviz and SVG output.
//
// [observability] - Hooks for layout runs, cache lookups and HTTP requests.
//
// [block]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/block
// [spatial]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/spatial
// [spatial/place]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/spatial/place
// [spatial/focus]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/spatial/focus
// [pack]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/pack
// [scene]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/scene
// [config]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/render
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/observability
//
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/render/dot
// [render/plan]: https://pkg.go.dev/github.com/matzehuels/gridspace/pkg/render/plan
package pkg
