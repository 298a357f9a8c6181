package chart

// DefaultPalette is the series palette used when a column carries no color.
var DefaultPalette = []string{
	"#01b8aa", "#374649", "#fd625e", "#f2c80f", "#5f6b6d",
	"#8ad4eb", "#fe9666", "#a66999", "#3599b8", "#dfbfbf",
}

// SeriesColor returns the palette color for series index i, cycling through
// palette (or DefaultPalette when palette is empty).
func SeriesColor(palette []string, i int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}
