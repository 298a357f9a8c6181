// Package pkg provides the libraries behind mekko, a layout engine for
// variable-width stacked column (Marimekko) charts.
//
// # Overview
//
// A Marimekko chart is a stacked column chart whose column widths encode a
// second measure. mekko turns a categorical dataset into a layout: column
// spans on a normalized horizontal axis, stacked segments with positions on
// the value axis, per-category aggregates, legend entries and optional
// gradient shades. Sinks turn a layout into SVG, JSON, msgpack, PNG or PDF.
//
// # Architecture
//
// The data flow through mekko:
//
//	CSV / TSV / JSON / TOML dataset (file or URL)
//	         ↓
//	    [io] package (decode into a [dataset.Dataset])
//	         ↓
//	    [core/render/mekko/layout] package (stack → width → ordering → gradient)
//	         ↓
//	    [core/render/mekko/sink] package (geometry + styles)
//	         ↓
//	    SVG/JSON/msgpack/PNG/PDF output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mekko/pkg/core/chart"
//	    "github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
//	    "github.com/matzehuels/mekko/pkg/core/render/mekko/sink"
//	)
//
//	in := chart.Input{
//	    Categories: []chart.Category{{Value: "EMEA"}, {Value: "APAC"}},
//	    Columns: []chart.Column{
//	        {Name: "Acme", Values: chart.Nums(10, 20)},
//	        {Name: "Globex", Values: chart.Nums(5, 15)},
//	        {Name: "Revenue", Roles: []chart.Role{chart.RoleWidth}, Values: chart.Nums(30, 10)},
//	    },
//	}
//	l := layout.Build(in, chart.Options{SortSeries: chart.SortDescending})
//	svg := sink.RenderSVG(l, sink.WithTitle("Revenue by region"))
//
// # Main Packages
//
// ## Engine
//
// [core/chart] - Input model (categories, role-tagged columns, optional
// highlights), options and the positioned data point type.
//
// [core/render/mekko] - The layout engine, leaf first:
//
//   - [core/render/mekko/stats]: per-category sum, min, max and mean
//   - [core/render/mekko/stack]: value normalization, 100% stacking, overflow
//   - [core/render/mekko/width]: width measure to normalized column spans
//   - [core/render/mekko/ordering]: series sorting by total
//   - [core/render/mekko/gradient]: rank-based shading within a column
//   - [core/render/mekko/geometry]: scales and rectangle mapping
//   - [core/render/mekko/layout]: [layout.Build] ties the stages together
//   - [core/render/mekko/sink]: SVG, JSON, PNG and PDF output
//   - [core/render/mekko/styles]: bar styles (simple, outline)
//
// [core/render] - SVG to PNG/PDF conversion through rsvg-convert.
//
// ## Toolchain
//
// [dataset] - The dataset document and layout (de)serialization.
//
// [io] - CSV, TSV, JSON and TOML import and export.
//
// [pipeline] - load → layout → render with caching, used by the CLI and the
// HTTP server alike.
//
// [cache] - File, memory, Redis and null caches plus key derivation.
//
// [storage] - Saved charts (memory, MongoDB) and S3 artifact upload.
//
// [httputil] - Cached, retrying HTTP fetches for remote datasets.
//
// [observability] - Pipeline, cache and HTTP hooks.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information.
package pkg
