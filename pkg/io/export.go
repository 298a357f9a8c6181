package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/dataset"
	"github.com/matzehuels/mekko/pkg/errors"
)

// WriteCSV writes d in long format. Width columns are summed per category.
// Category values are formatted with %v.
func WriteCSV(d dataset.Dataset, w io.Writer) error {
	return writeDelimited(d, w, ',')
}

// WriteTSV is [WriteCSV] with tab-separated fields.
func WriteTSV(d dataset.Dataset, w io.Writer) error {
	return writeDelimited(d, w, '\t')
}

func writeDelimited(d dataset.Dataset, w io.Writer, comma rune) error {
	in := d.Input
	widths := categoryWidths(in)
	series := in.SeriesColumns()

	hasHighlights := in.HasHighlights()
	header := []string{"category", "series", "value"}
	if hasHighlights {
		header = append(header, "highlight")
	}
	if widths != nil {
		header = append(header, "width")
	}

	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(header); err != nil {
		return err
	}
	for c, cat := range in.Categories {
		for _, col := range series {
			rec := []string{fmt.Sprint(cat.Value), col.Name, formatNumber(at(col.Values, c))}
			if hasHighlights {
				rec = append(rec, formatNumber(at(col.Highlights, c)))
			}
			if widths != nil {
				rec = append(rec, formatNumber(widths[c]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTOML writes d in the TOML layout read by [ReadTOML].
func WriteTOML(d dataset.Dataset, w io.Writer) error {
	td := tomlDataset{
		Name:    d.Name,
		Title:   d.Title,
		Dynamic: d.Input.DynamicSeries,
		Options: d.Options,
	}
	for _, c := range d.Input.Categories {
		td.Categories = append(td.Categories, fmt.Sprint(c.Value))
	}
	if widths := categoryWidths(d.Input); widths != nil {
		td.Widths = toFloats(widths)
	}
	for _, col := range d.Input.SeriesColumns() {
		s := tomlSeries{Name: col.Name, Color: col.Color, Values: toFloats(col.Values)}
		if len(col.Highlights) > 0 {
			s.Highlights = toFloats(col.Highlights)
		}
		td.Series = append(td.Series, s)
	}
	return toml.NewEncoder(w).Encode(td)
}

// Export writes d to path in the format given by its extension.
func Export(d dataset.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format := DetectFormat(path); format {
	case FormatCSV:
		return WriteCSV(d, f)
	case FormatTSV:
		return WriteTSV(d, f)
	case FormatTOML:
		return WriteTOML(d, f)
	case FormatJSON:
		return dataset.Write(d, f)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", format)
	}
}

// categoryWidths sums the width columns per category, or returns nil when
// the input has none.
func categoryWidths(in chart.Input) []chart.Number {
	cols := in.WidthColumns()
	if len(cols) == 0 {
		return nil
	}
	out := make([]chart.Number, in.CategoryCount())
	for c := range out {
		for _, col := range cols {
			v := at(col.Values, c)
			if !v.Present() {
				continue
			}
			out[c] = chart.Num(out[c].Or(0) + v.Value)
		}
	}
	return out
}

func at(ns []chart.Number, i int) chart.Number {
	if i < len(ns) {
		return ns[i]
	}
	return chart.Absent()
}

func formatNumber(n chart.Number) string {
	if !n.Present() {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}
