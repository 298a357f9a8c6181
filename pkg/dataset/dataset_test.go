package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
	"github.com/matzehuels/mekko/pkg/errors"
)

func sample() Dataset {
	return Dataset{
		Name:  "share",
		Title: "Market share",
		Input: chart.Input{
			Categories: []chart.Category{{Value: "EMEA"}, {Value: "APAC"}},
			Columns: []chart.Column{
				{Name: "Revenue", Roles: []chart.Role{chart.RoleWidth}, Values: chart.Nums(30, 10)},
				{Name: "Acme", Roles: []chart.Role{chart.RoleY}, Values: chart.Nums(10, 20)},
				{Name: "Globex", Roles: []chart.Role{chart.RoleY}, Values: []chart.Number{chart.Num(5), chart.Absent()}},
			},
		},
		Options: chart.Options{Is100PercentStacked: true},
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `null`) {
		t.Errorf("absent value should encode as null:\n%s", data)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Name != "share" || !got.Options.Is100PercentStacked {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.Input.Columns) != 3 || got.Input.Columns[2].Values[1].Present() {
		t.Errorf("round trip lost absent value: %+v", got.Input.Columns)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := Unmarshal([]byte(`{"input": [`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share.json")
	if err := WriteFile(sample(), path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Title != "Market share" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr errors.Code
	}{
		{"valid", func(*Dataset) {}, ""},
		{"bad name", func(d *Dataset) { d.Name = "../etc" }, errors.ErrCodeInvalidDataset},
		{"bad column color", func(d *Dataset) { d.Input.Columns[1].Color = "blue" }, errors.ErrCodeInvalidColor},
		{"bad palette", func(d *Dataset) { d.Options.Palette = []string{"#fff", "nope"} }, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sample()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestHash(t *testing.T) {
	a, err := sample().Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	renamed := sample()
	renamed.Name = "other"
	renamed.Title = "Other"
	b, _ := renamed.Hash()
	if a != b {
		t.Error("name and title should not change the hash")
	}

	changed := sample()
	changed.Options.Is100PercentStacked = false
	c, _ := changed.Hash()
	if a == c {
		t.Error("options should change the hash")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	d := sample()
	l := layout.Build(d.Input, d.Options)

	for _, tc := range []struct {
		name      string
		marshal   func(layout.Layout) ([]byte, error)
		unmarshal func([]byte) (layout.Layout, error)
	}{
		{"json", MarshalLayout, UnmarshalLayout},
		{"msgpack", MarshalLayoutMsgpack, UnmarshalLayoutMsgpack},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.marshal(l)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := tc.unmarshal(data)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(got.Series) != len(l.Series) || len(got.Categories) != len(l.Categories) {
				t.Fatalf("shape changed: %d series, %d categories", len(got.Series), len(got.Categories))
			}
			for s := range l.Series {
				if got.Series[s].Color != l.Series[s].Color {
					t.Errorf("series %d color = %s, want %s", s, got.Series[s].Color, l.Series[s].Color)
				}
				for i, p := range l.Series[s].Points {
					if got.Series[s].Points[i] != p {
						t.Errorf("series %d point %d = %+v, want %+v", s, i, got.Series[s].Points[i], p)
					}
				}
			}
			if got.ValueDomain != l.ValueDomain {
				t.Errorf("domain = %+v, want %+v", got.ValueDomain, l.ValueDomain)
			}
			if got.Options.Is100PercentStacked != l.Options.Is100PercentStacked {
				t.Error("options lost")
			}
		})
	}
}

func TestLayoutFileByExtension(t *testing.T) {
	l := layout.Build(sample().Input, chart.Options{})
	dir := t.TempDir()
	for _, name := range []string{"layout.json", "layout.msgpack"} {
		path := filepath.Join(dir, name)
		if err := WriteLayoutFile(l, path); err != nil {
			t.Fatalf("WriteLayoutFile(%s): %v", name, err)
		}
		got, err := ReadLayoutFile(path)
		if err != nil {
			t.Fatalf("ReadLayoutFile(%s): %v", name, err)
		}
		if len(got.CategoryWidths) != 2 || got.CategoryWidths[0] != l.CategoryWidths[0] {
			t.Errorf("%s: widths = %v, want %v", name, got.CategoryWidths, l.CategoryWidths)
		}
	}
}
