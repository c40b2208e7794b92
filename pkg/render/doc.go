// Package render turns graphs into DOT text and raster or vector
// images.
//
// [ToDOT] serializes any graph to Graphviz DOT format, optionally
// carrying vertex and edge annotations as labels. [RenderSVG] and
// [RenderPNG] run Graphviz (via the embedded WebAssembly build, no
// system install needed) on a DOT string:
//
//	dot := render.ToDOT(g, render.Options{Labelled: true})
//	svg, err := render.RenderSVG(ctx, dot)
package render
