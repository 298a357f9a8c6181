package sink

import (
	"context"

	"github.com/matzehuels/mekko/pkg/core/render"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
)

// RenderPDF renders the layout as a single-page PDF via SVG conversion.
func RenderPDF(ctx context.Context, l layout.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(l, opts...))
}
