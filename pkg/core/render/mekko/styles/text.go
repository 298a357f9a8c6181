package styles

import (
	"encoding/xml"
	"strings"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 16.0
)

// FontSize returns the label font size that fits b, or 0 when no readable
// size fits.
func FontSize(b Bar) float64 {
	n := max(1, len(b.Label))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	size := min(fontSizeMax, byHeight, byWidth)
	if size < fontSizeMin {
		return 0
	}
	return size
}

// TruncateLabel shortens label to fit width at the minimum font size.
func TruncateLabel(label string, width float64) string {
	maxChars := max(int(width*fontWidthRatio/(fontSizeMin*fontCharWidth)), 3)
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
