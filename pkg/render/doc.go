// Package render turns computed layouts into pictures.
//
//   - [dot]: the adjacency graph as a Graphviz diagram, rendered to SVG
//   - [plan]: the placed blocks seen from the front, as SVG
//
// [dot]: github.com/matzehuels/gridspace/pkg/render/dot
// [plan]: github.com/matzehuels/gridspace/pkg/render/plan
package render
