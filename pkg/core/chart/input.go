package chart

import "slices"

// Role tags a column with the part it plays in the chart.
type Role string

// Column roles.
const (
	RoleY     Role = "Y"     // stacked value
	RoleWidth Role = "Width" // horizontal width measure
)

// Category is one ordinal slot along the horizontal axis.
type Category struct {
	// Value is the opaque category value (number, date or text).
	Value any `json:"value"`
	// Identity is a stable token used for selection and coloring. When empty,
	// a deterministic identity is derived from the index and value.
	Identity string `json:"identity,omitempty"`
}

// Column is one measure column of the categorical input.
type Column struct {
	Name     string `json:"name"`
	Roles    []Role `json:"roles,omitempty"`
	Identity string `json:"identity,omitempty"`
	// Color is an optional solid fill override ("#rrggbb").
	Color  string   `json:"color,omitempty"`
	Values []Number `json:"values"`
	// Highlights is the optional highlighted subset, aligned with Values.
	Highlights []Number `json:"highlights,omitempty"`
}

// HasRole reports whether c is tagged with r.
func (c Column) HasRole(r Role) bool {
	return slices.Contains(c.Roles, r)
}

// IsSeries reports whether c is stacked. Columns without any role are
// treated as value columns.
func (c Column) IsSeries() bool {
	return len(c.Roles) == 0 || c.HasRole(RoleY)
}

// IsWidth reports whether c feeds the width allocator.
func (c Column) IsWidth() bool {
	return c.HasRole(RoleWidth)
}

// Input is the categorical input of one conversion.
type Input struct {
	Categories []Category `json:"categories"`
	Columns    []Column   `json:"columns"`
	// DynamicSeries is set when the series were produced by grouping on a
	// legend field rather than by listing static measures.
	DynamicSeries bool `json:"dynamic_series,omitempty"`
}

// CategoryCount returns the number of categories.
func (in Input) CategoryCount() int { return len(in.Categories) }

// SeriesColumns returns the stacked columns in input order.
func (in Input) SeriesColumns() []Column {
	var out []Column
	for _, c := range in.Columns {
		if c.IsSeries() {
			out = append(out, c)
		}
	}
	return out
}

// WidthColumns returns the width-measure columns in input order.
func (in Input) WidthColumns() []Column {
	var out []Column
	for _, c := range in.Columns {
		if c.IsWidth() {
			out = append(out, c)
		}
	}
	return out
}

// HasHighlights reports whether any stacked column carries highlight values.
func (in Input) HasHighlights() bool {
	for _, c := range in.SeriesColumns() {
		if len(c.Highlights) > 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of in. The engine never mutates its input, but
// callers that slice or edit datasets work on clones.
func (in Input) Clone() Input {
	out := Input{
		Categories:    slices.Clone(in.Categories),
		Columns:       make([]Column, len(in.Columns)),
		DynamicSeries: in.DynamicSeries,
	}
	for i, c := range in.Columns {
		c.Roles = slices.Clone(c.Roles)
		c.Values = slices.Clone(c.Values)
		c.Highlights = slices.Clone(c.Highlights)
		out.Columns[i] = c
	}
	return out
}

// SliceCategories returns a copy of in restricted to categories [from, to).
// Bounds are clamped to the available range.
func (in Input) SliceCategories(from, to int) Input {
	n := len(in.Categories)
	from = max(0, min(from, n))
	to = max(from, min(to, n))

	out := in.Clone()
	out.Categories = out.Categories[from:to]
	for i := range out.Columns {
		out.Columns[i].Values = sliceNumbers(out.Columns[i].Values, from, to)
		out.Columns[i].Highlights = sliceNumbers(out.Columns[i].Highlights, from, to)
	}
	return out
}

func sliceNumbers(ns []Number, from, to int) []Number {
	if ns == nil {
		return nil
	}
	lo, hi := min(from, len(ns)), min(to, len(ns))
	return ns[lo:hi]
}
