// Package layout converts categorical input into a variable-width stacked
// column layout.
//
// [Build] runs the full conversion pass:
//
//  1. Per-category aggregates ([stats.Collect])
//  2. Stacking, 100% normalization and highlight overflow ([stack.Normalize])
//  3. Category width allocation ([width.Allocate])
//  4. Optional per-category series reordering ([ordering.Reorder])
//  5. Optional gradient coloring ([gradient.Assign])
//
// The result is a read-only [Layout]. Geometry is derived separately with
// [Layout.Mapper] so that sinks choose their own frame.
//
// Build never fails. Empty or malformed input yields an empty or padded
// layout; degenerate numbers fall back to documented constants.
package layout
