package io

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
	"github.com/matzehuels/mekko/pkg/httputil"
)

// Input formats.
const (
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Formats lists the supported input formats.
var Formats = []string{FormatCSV, FormatTSV, FormatJSON, FormatTOML}

// WidthColumnName names the width column built from CSV and TOML input.
const WidthColumnName = "Width"

// DetectFormat maps a path or URL extension to an input format. Unknown
// extensions default to JSON.
func DetectFormat(source string) string {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" {
		source = u.Path
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".toml":
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses data in the given format.
func Decode(data []byte, format string) (dataset.Dataset, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(bytes.NewReader(data))
	case FormatTSV:
		return ReadTSV(bytes.NewReader(data))
	case FormatTOML:
		return ReadTOML(bytes.NewReader(data))
	case FormatJSON:
		return dataset.Unmarshal(data)
	}
	return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
}

// Import reads the dataset file at path. The format follows the extension
// and an unnamed dataset is named after the file.
func Import(path string) (dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	d, err := Decode(data, DetectFormat(path))
	if err != nil {
		return dataset.Dataset{}, err
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Open reads a dataset from a file path or an http(s) URL. A nil client
// fetches without caching.
func Open(ctx context.Context, source string, client *httputil.Client, refresh bool) (dataset.Dataset, error) {
	if !isURL(source) {
		return Import(source)
	}
	if err := errors.ValidateURL(source); err != nil {
		return dataset.Dataset{}, err
	}
	if client == nil {
		client = httputil.NewClient(nil, nil)
	}
	data, err := client.Fetch(ctx, source, refresh)
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", source)
	}
	d, err := Decode(data, DetectFormat(source))
	if err != nil {
		return dataset.Dataset{}, err
	}
	if d.Name == "" {
		u, _ := url.Parse(source)
		d.Name = strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
	}
	return d, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ReadCSV decodes a long-format CSV dataset.
func ReadCSV(r io.Reader) (dataset.Dataset, error) {
	return readDelimited(r, ',', FormatCSV)
}

// ReadTSV decodes a long-format dataset with tab-separated fields.
func ReadTSV(r io.Reader) (dataset.Dataset, error) {
	return readDelimited(r, '\t', FormatTSV)
}

func readDelimited(r io.Reader, comma rune, kind string) (dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	// Leading-space trimming would swallow the tabs around empty TSV fields;
	// fields are trimmed after reading instead.
	cr.TrimLeadingSpace = comma != '\t'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s header", kind)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "series", "value"} {
		if _, ok := cols[required]; !ok {
			return dataset.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "%s header missing %q column", kind, required)
		}
	}

	b := newLongBuilder()
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s line %d", kind, line)
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		value, err := parseNumber(field("value"))
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s line %d: value", kind, line)
		}
		highlight, err := parseNumber(field("highlight"))
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s line %d: highlight", kind, line)
		}
		width, err := parseNumber(field("width"))
		if err != nil {
			return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s line %d: width", kind, line)
		}
		b.add(field("category"), field("series"), value, highlight, width, field("color"))
	}
	return b.dataset(), nil
}

func parseNumber(s string) (chart.Number, error) {
	if s == "" {
		return chart.Absent(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return chart.Absent(), err
	}
	return chart.Num(v), nil
}

// longBuilder pivots long-format cells into category-aligned columns.
type longBuilder struct {
	categories []string
	catIndex   map[string]int
	series     []string
	serIndex   map[string]int
	values     map[[2]int]chart.Number
	highlights map[[2]int]chart.Number
	widths     map[int]chart.Number
	colors     map[int]string
}

func newLongBuilder() *longBuilder {
	return &longBuilder{
		catIndex:   map[string]int{},
		serIndex:   map[string]int{},
		values:     map[[2]int]chart.Number{},
		highlights: map[[2]int]chart.Number{},
		widths:     map[int]chart.Number{},
		colors:     map[int]string{},
	}
}

func (b *longBuilder) add(category, series string, value, highlight, width chart.Number, color string) {
	c, ok := b.catIndex[category]
	if !ok {
		c = len(b.categories)
		b.catIndex[category] = c
		b.categories = append(b.categories, category)
	}
	s, ok := b.serIndex[series]
	if !ok {
		s = len(b.series)
		b.serIndex[series] = s
		b.series = append(b.series, series)
	}
	b.values[[2]int{s, c}] = value
	if highlight.Present() {
		b.highlights[[2]int{s, c}] = highlight
	}
	if _, seen := b.widths[c]; !seen && width.Present() {
		b.widths[c] = width
	}
	if color != "" && b.colors[s] == "" {
		b.colors[s] = color
	}
}

func (b *longBuilder) dataset() dataset.Dataset {
	n := len(b.categories)
	var in chart.Input
	for _, c := range b.categories {
		in.Categories = append(in.Categories, chart.Category{Value: c})
	}
	if len(b.widths) > 0 {
		w := make([]chart.Number, n)
		for c, v := range b.widths {
			w[c] = v
		}
		in.Columns = append(in.Columns, chart.Column{Name: WidthColumnName, Roles: []chart.Role{chart.RoleWidth}, Values: w})
	}
	for s, name := range b.series {
		col := chart.Column{Name: name, Roles: []chart.Role{chart.RoleY}, Color: b.colors[s], Values: make([]chart.Number, n)}
		hasHighlight := false
		hl := make([]chart.Number, n)
		for c := range n {
			col.Values[c] = b.values[[2]int{s, c}]
			if h, ok := b.highlights[[2]int{s, c}]; ok {
				hl[c] = h
				hasHighlight = true
			}
		}
		if hasHighlight {
			col.Highlights = hl
		}
		in.Columns = append(in.Columns, col)
	}
	return dataset.Dataset{Input: in}
}

// tomlDataset is the TOML shape of a dataset.
type tomlDataset struct {
	Name       string        `toml:"name"`
	Title      string        `toml:"title"`
	Categories []string      `toml:"categories"`
	Widths     []float64     `toml:"widths,omitempty"`
	Dynamic    bool          `toml:"dynamic_series,omitempty"`
	Options    chart.Options `toml:"options"`
	Series     []tomlSeries  `toml:"series"`
}

type tomlSeries struct {
	Name       string    `toml:"name"`
	Color      string    `toml:"color,omitempty"`
	Values     []float64 `toml:"values"`
	Highlights []float64 `toml:"highlights,omitempty"`
}

// ReadTOML decodes a TOML dataset.
func ReadTOML(r io.Reader) (dataset.Dataset, error) {
	var td tomlDataset
	if _, err := toml.NewDecoder(r).Decode(&td); err != nil {
		return dataset.Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}

	d := dataset.Dataset{Name: td.Name, Title: td.Title, Options: td.Options}
	d.Input.DynamicSeries = td.Dynamic
	for _, c := range td.Categories {
		d.Input.Categories = append(d.Input.Categories, chart.Category{Value: c})
	}
	if len(td.Widths) > 0 {
		d.Input.Columns = append(d.Input.Columns, chart.Column{
			Name:   WidthColumnName,
			Roles:  []chart.Role{chart.RoleWidth},
			Values: chart.Nums(td.Widths...),
		})
	}
	for _, s := range td.Series {
		col := chart.Column{
			Name:   s.Name,
			Roles:  []chart.Role{chart.RoleY},
			Color:  s.Color,
			Values: chart.Nums(s.Values...),
		}
		if len(s.Highlights) > 0 {
			col.Highlights = chart.Nums(s.Highlights...)
		}
		d.Input.Columns = append(d.Input.Columns, col)
	}
	return d, nil
}

func toFloats(ns []chart.Number) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = n.Or(math.NaN())
	}
	return out
}
