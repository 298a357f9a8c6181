package chart

// CategoryKey identifies one category of a conversion.
type CategoryKey struct {
	Index    int    `json:"index"`
	Value    any    `json:"value"`
	Identity string `json:"identity"`
}

// SeriesKey identifies one stacked series of a conversion.
type SeriesKey struct {
	Index       int    `json:"index"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
	Identity    string `json:"identity"`
}

// DataPoint is the atomic unit of the layout: one (category, series) value
// placed in its category's stack.
type DataPoint struct {
	CategoryIndex int `json:"category"`
	SeriesIndex   int `json:"series"`

	// ValueOriginal is the signed value after the 100% multiplier (if any).
	ValueOriginal float64 `json:"value"`
	ValueAbsolute float64 `json:"value_abs"`
	// Position is the stack offset of the point's edge nearest the zero
	// baseline: non-negative for positive values, non-positive for negative.
	Position float64 `json:"position"`

	// Original* carry the non-highlight values. For regular points they equal
	// the point's own values.
	OriginalValue         float64 `json:"original_value"`
	OriginalValueAbsolute float64 `json:"original_value_abs"`
	OriginalPosition      float64 `json:"original_position"`

	CategoryWidthStart float64 `json:"width_start"`
	CategoryWidthSize  float64 `json:"width_size"`

	// StackIndex is the draw order within the category stack.
	StackIndex int `json:"stack_index"`

	IsHighlight    bool `json:"highlight,omitempty"`
	IsDrawnThinner bool `json:"thinner,omitempty"`
	// Absent marks a placeholder point that keeps accumulators aligned; it is
	// never drawn.
	Absent bool `json:"absent,omitempty"`

	Color string `json:"color,omitempty"`
}

// Negative reports whether the point is stacked below the baseline.
func (p DataPoint) Negative() bool { return p.ValueOriginal < 0 }

// CategoryAggregate summarizes the present series values of one category.
type CategoryAggregate struct {
	Sum   float64 `json:"sum"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}
