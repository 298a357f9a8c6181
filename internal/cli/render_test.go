package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/dataset"
)

const salesCSV = `category,series,value,highlight,width
EMEA,Acme,10,4,30
EMEA,Globex,5,,30
APAC,Acme,20,,10
APAC,Globex,15,,10
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty keeps config default", "", nil},
		{"single", "svg", []string{"svg"}},
		{"multiple", "svg,json,msgpack", []string{"svg", "json", "msgpack"}},
		{"spaces and blanks", " svg , ,png", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/sales.csv", "data/sales"},
		{"", "https://example.com/data/sales.csv", "sales"},
		{"out/chart.svg", "sales.csv", "out/chart"},
		{"out/chart.PNG", "sales.csv", "out/chart"},
		{"out/chart", "sales.csv", "out/chart"},
		{"out/chart.v2", "sales.csv", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestTrimLayoutSuffix(t *testing.T) {
	tests := map[string]string{
		"sales.layout.json":    "sales",
		"sales.layout.msgpack": "sales",
		"sales.json":           "sales.json",
	}
	for in, want := range tests {
		if got := trimLayoutSuffix(in); got != want {
			t.Errorf("trimLayoutSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, filepath.Join(dir, "chart"), "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "chart.svg"), filepath.Join(dir, "chart.json")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	explicit := filepath.Join(dir, "named.out")
	paths, err = writeArtifacts(artifacts, []string{"svg"}, filepath.Join(dir, "chart"), explicit)
	if err != nil || len(paths) != 1 || paths[0] != explicit {
		t.Fatalf("single format with output = %v, %v", paths, err)
	}
	if data, _ := os.ReadFile(explicit); string(data) != "<svg/>" {
		t.Errorf("written = %q", data)
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(1, 3, true)
	for _, want := range []string{"1 category", "3 series", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine = %q, missing %q", line, want)
		}
	}
	if !strings.Contains(statsLine(2, 1, false), "fresh") {
		t.Error("uncached stats should say fresh")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(input, []byte(salesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	c := testCLI(t, "[cache]\nbackend = \"none\"\n")
	cfgPath := c.configPath

	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "render", input, "-f", "svg,json", "--sort", "desc"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "sales.svg"))
	if err != nil || !strings.Contains(string(svg), "<svg") {
		t.Errorf("sales.svg = %.60s (%v)", svg, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sales.json")); err != nil {
		t.Errorf("sales.json missing: %v", err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(input, []byte(salesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	c := testCLI(t, "[cache]\nbackend = \"none\"\n")
	cfgPath := c.configPath

	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "layout", input, "--percent"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout: %v", err)
	}
	layoutPath := filepath.Join(dir, "sales.layout.json")
	l, err := dataset.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if len(l.Categories) != 2 || !l.Options.Is100PercentStacked {
		t.Errorf("layout = %d categories, options %+v", len(l.Categories), l.Options)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "visualize", layoutPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sales.svg")); err != nil {
		t.Errorf("sales.svg missing: %v", err)
	}
}

func TestRenderUploadWithoutBucket(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	_ = os.WriteFile(input, []byte(salesCSV), 0o644)
	c := testCLI(t, "[cache]\nbackend = \"none\"\n")
	cfgPath := c.configPath

	root := c.RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "render", input, "--upload"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("--upload without a bucket should fail")
	}
}

func sampleLayout() layout.Layout {
	in := chart.Input{
		Categories: []chart.Category{{Value: "EMEA"}, {Value: "APAC"}, {Value: "LATAM"}},
		Columns: []chart.Column{
			{Name: "Acme", Values: chart.Nums(10, 20, 5)},
			{Name: "Globex", Values: chart.Nums(5, 15, 5)},
		},
	}
	return layout.Build(in, chart.Options{})
}

func TestInspectModel(t *testing.T) {
	m := newInspectModel("Sales", sampleLayout(), language.English)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := model.(inspectModel).cursor; got != 2 {
		t.Errorf("cursor after 3 downs = %d, want clamp at 2", got)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if got := model.(inspectModel).cursor; got != 0 {
		t.Errorf("cursor after g = %d", got)
	}

	view := model.View()
	for _, want := range []string{"Sales", "EMEA", "Acme", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	m := newInspectModel("Empty", layout.Layout{}, language.English)
	if !strings.Contains(m.View(), "nothing to draw") {
		t.Errorf("empty view = %q", m.View())
	}
}
