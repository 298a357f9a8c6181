// Package sink writes mekko layouts to output formats.
//
// # Formats
//
//   - [RenderSVG]: standalone SVG document drawn with a [styles.Style]
//   - [RenderJSON]: placed rectangles, legend and domains as JSON
//   - [RenderPNG], [RenderPDF]: rasterized or paged output converted from SVG
//     (requires rsvg-convert)
//
// Every sink places the layout into a pixel frame with [Place], so the
// rectangles in JSON output match the SVG exactly.
//
// Usage:
//
//	l := layout.Build(input, opts)
//	svg := sink.RenderSVG(l, sink.WithSize(960, 540), sink.WithLabels())
package sink
