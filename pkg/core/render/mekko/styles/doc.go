// Package styles defines visual styles for mekko rendering.
//
// A [Style] draws bars, labels, the zero baseline and the legend onto an
// SVG canvas. Geometry is fixed before a style is involved: styles only
// choose fills, strokes and typography.
//
// Two styles are provided:
//
//   - [Simple]: solid series fills separated by thin white borders
//   - [Outline]: unfilled bars stroked in the series color
//
// Use [Lookup] to resolve a style by name:
//
//	s, err := styles.Lookup("outline")
//	svg := sink.RenderSVG(l, sink.WithStyle(s))
package styles
