package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/dataset"
)

const regionsCSV = `category,series,value,width
EMEA,Acme,10,30
EMEA,Globex,5,30
APAC,Acme,20,10
APAC,Globex,-4,10
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.csv")
	if err := os.WriteFile(path, []byte(regionsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryCache()
	r := NewRunner(store, nil, nil)

	opts := Options{Source: writeDataset(t), Formats: []string{"svg", "json", "msgpack"}, Title: "Regions"}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.Categories != 2 || res.Stats.Series != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", res.CacheInfo)
	}
	if res.Dataset.Name != "regions" || res.DatasetHash == "" {
		t.Errorf("dataset = %q, hash = %q", res.Dataset.Name, res.DatasetHash)
	}

	svg := string(res.Artifacts["svg"])
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Regions") {
		t.Errorf("svg artifact missing content:\n%.200s", svg)
	}
	var doc map[string]any
	if err := json.Unmarshal(res.Artifacts["json"], &doc); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if _, err := dataset.UnmarshalLayoutMsgpack(res.Artifacts["msgpack"]); err != nil {
		t.Errorf("msgpack artifact: %v", err)
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", again.CacheInfo)
	}
	if string(again.Artifacts["svg"]) != svg {
		t.Error("cached svg differs")
	}
}

func TestRunnerOptionsChangeLayoutKey(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)
	path := writeDataset(t)

	if _, err := r.Execute(ctx, Options{Source: path}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Source: path, PercentStacked: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("different chart options should not reuse the layout")
	}
	if !res.Layout.Options.Is100PercentStacked {
		t.Error("layout should carry the effective options")
	}
}

func TestRunnerExecuteDataset(t *testing.T) {
	d := dataset.Dataset{
		Title: "Inline",
		Input: chart.Input{
			Categories: []chart.Category{{Value: "A"}},
			Columns:    []chart.Column{{Name: "x", Values: chart.Nums(3)}},
		},
	}
	res, err := NewRunner(nil, nil, nil).ExecuteDataset(context.Background(), d, Options{})
	if err != nil {
		t.Fatalf("ExecuteDataset: %v", err)
	}
	if len(res.Layout.Series) != 1 || res.Artifacts["svg"] == nil {
		t.Errorf("result = %+v", res.Stats)
	}
}

func TestRunnerLoadErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Source: filepath.Join(t.TempDir(), "none.csv")}); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("empty source should fail")
	}
}
