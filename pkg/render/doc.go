// Package render visualizes the logical layer of a diagram as a node-link
// graph: the document root, the editable nodes, and the parent/child edges
// between them. Presentation and transition points are layout bookkeeping
// and are not drawn.
//
// Convert a model to DOT source, then render:
//
//	dot := render.ToDOT(m, render.Options{})
//	svg, err := render.SVG(dot)
//	png, err := render.PNG(dot)
//
// Rendering uses [github.com/goccy/go-graphviz] in-process; no external
// Graphviz installation is needed.
package render
