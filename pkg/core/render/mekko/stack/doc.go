// Package stack converts raw series values into stacked positions.
//
// # Stacking
//
// Each category keeps two accumulators, one per sign, that start at zero.
// Series are folded in order: a non-negative value is placed at the current
// positive base which then grows by the value; a negative value is placed at
// the current negative base which then shrinks by the value's magnitude. A
// point's Position is therefore always the edge of its rectangle nearest the
// zero baseline.
//
// # 100% Stacking
//
// With [Options.PercentStacked], every value is multiplied by 1/total of its
// sign within the category before stacking, so the positive stack and the
// negative stack of each category each span exactly one unit (or zero when
// the category has no value of that sign).
//
// # Highlights
//
// A highlight is expected to lie between zero and its parent value. A pair
// overflows when the highlight has the opposite sign or a larger magnitude.
// The decision is made once per dataset: with [Options.SupportsOverflow] the
// highlights are kept and the regular companions of overflowing series are
// flagged IsDrawnThinner; otherwise the highlight values replace the base
// values and highlighting is disabled.
//
// A present highlight whose parent is absent stacks on a zero-valued parent:
// the pair is emitted as a zero-height regular point followed by the
// highlight, and it always overflows unless the highlight is zero.
package stack
