package styles

import (
	"bytes"
	"strings"
	"testing"

	svg "github.com/ajstarks/svgo/float"
)

func render(fn func(canvas *svg.SVG)) string {
	var buf bytes.Buffer
	fn(svg.New(&buf))
	return buf.String()
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "simple", false},
		{"simple", "simple", false},
		{" Outline ", "outline", false},
		{"handdrawn", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Lookup(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && s.Name() != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.name, s.Name(), tt.want)
			}
		})
	}
}

func TestSimpleRenderDefs(t *testing.T) {
	if out := render(func(c *svg.SVG) { Simple{}.RenderDefs(c) }); out != "" {
		t.Errorf("RenderDefs() wrote %q, want nothing", out)
	}
}

func TestSimpleRenderBar(t *testing.T) {
	tests := []struct {
		name     string
		bar      Bar
		contains []string
	}{
		{
			name: "regular",
			bar:  Bar{ID: "bar-0-0", X: 10, Y: 20, W: 100, H: 50, Color: "#01b8aa"},
			contains: []string{
				`<rect`,
				`id="bar-0-0"`,
				`class="bar"`,
				`fill="#01b8aa"`,
				`fill-opacity="1.00"`,
			},
		},
		{
			name:     "dimmed",
			bar:      Bar{ID: "b", W: 1, H: 1, Color: "#000000", Dimmed: true},
			contains: []string{`class="bar dimmed"`, `fill-opacity="0.40"`},
		},
		{
			name:     "highlight",
			bar:      Bar{ID: "b", W: 1, H: 1, Color: "#000000", Highlight: true},
			contains: []string{`class="bar highlight"`},
		},
		{
			name:     "with title",
			bar:      Bar{ID: "b<1>", Title: "A & B", W: 1, H: 1, Color: "#000000"},
			contains: []string{`<g id="b&lt;1&gt;"`, `<title>A &amp; B</title>`, `</g>`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(func(c *svg.SVG) { Simple{}.RenderBar(c, tt.bar) })
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("RenderBar() missing %q in:\n%s", want, out)
				}
			}
		})
	}
}

func TestOutlineRenderBar(t *testing.T) {
	out := render(func(c *svg.SVG) {
		Outline{}.RenderBar(c, Bar{ID: "x", W: 5, H: 5, Color: "#fd625e", Thinner: true})
	})
	for _, want := range []string{`fill="none"`, `stroke="#fd625e"`, `stroke-dasharray`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderBar() missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderLabelSkipsTinyBars(t *testing.T) {
	out := render(func(c *svg.SVG) {
		Simple{}.RenderLabel(c, Bar{Label: "1,234", W: 4, H: 4})
	})
	if out != "" {
		t.Errorf("RenderLabel() wrote %q for a bar too small to label", out)
	}

	out = render(func(c *svg.SVG) {
		Simple{}.RenderLabel(c, Bar{Label: "42", W: 80, H: 40, CX: 40, CY: 20})
	})
	if !strings.Contains(out, ">42</text>") {
		t.Errorf("RenderLabel() = %q, want text 42", out)
	}
}

func TestRenderLegend(t *testing.T) {
	out := render(func(c *svg.SVG) {
		Simple{}.RenderLegend(c, 0, 0, []LegendItem{{"North", "#111111"}, {"South", "#222222"}})
	})
	for _, want := range []string{"North", "South", `fill="#111111"`, `fill="#222222"`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderLegend() missing %q", want)
		}
	}
}

func TestFontSize(t *testing.T) {
	if got := FontSize(Bar{Label: "abc", W: 200, H: 100}); got != fontSizeMax {
		t.Errorf("FontSize(large) = %v, want %v", got, fontSizeMax)
	}
	if got := FontSize(Bar{Label: "abc", W: 200, H: 5}); got != 0 {
		t.Errorf("FontSize(short) = %v, want 0", got)
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("short", 200); got != "short" {
		t.Errorf("TruncateLabel() = %q, want unchanged", got)
	}
	got := TruncateLabel("a very long category name", 40)
	if !strings.HasSuffix(got, "..") || len(got) >= len("a very long category name") {
		t.Errorf("TruncateLabel() = %q, want truncated", got)
	}
}
