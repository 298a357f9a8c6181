// Package dataset defines the serialization formats of mekko: datasets (the
// categorical input plus its layout options) and computed layouts.
//
// # Dataset
//
// A dataset file is JSON:
//
//	{
//	  "name": "market-share",
//	  "title": "Market share by region",
//	  "input": {
//	    "categories": [{"value": "EMEA"}, {"value": "APAC"}],
//	    "columns": [
//	      {"name": "Revenue", "roles": ["Width"], "values": [30, 10]},
//	      {"name": "Acme", "roles": ["Y"], "values": [10, 20]},
//	      {"name": "Globex", "roles": ["Y"], "values": [5, null]}
//	    ]
//	  },
//	  "options": {"percent_stacked": true}
//	}
//
// Absent values are null. Other input formats (long CSV, TOML) are handled
// by pkg/io and decode into the same [Dataset].
//
// # Layout
//
// Layouts are written as JSON ([MarshalLayout]) or msgpack
// ([MarshalLayoutMsgpack]). Both carry the full [layout.Layout], so a saved
// layout can be re-rendered without recomputing it.
//
// # Constants
//
// This package is the single source of truth for output formats and style
// names accepted by the CLI and the HTTP API.
//
// [layout.Layout]: github.com/matzehuels/mekko/pkg/core/render/mekko/layout.Layout
package dataset
