// Package io imports and exports datasets in the formats users bring:
// long-format CSV or TSV, JSON and TOML.
//
// # CSV
//
// CSV input is long format, one row per (category, series) cell:
//
//	category,series,value,highlight,width
//	EMEA,Acme,10,4,30
//	EMEA,Globex,5,,30
//	APAC,Acme,20,,10
//
// Only "category", "series" and "value" are required. Header names are
// matched case-insensitively. Categories and series keep first-seen order.
// Empty cells are absent values. A category's width is the first non-empty
// width seen for it; when the column is missing every category gets width 1.
//
// Files ending in .tsv use the same columns separated by tabs.
//
// # TOML
//
// TOML datasets list series explicitly. TOML has no null, so absent values
// are written as nan:
//
//	name = "share"
//	categories = ["EMEA", "APAC"]
//	widths = [30, 10]
//
//	[options]
//	percent_stacked = true
//
//	[[series]]
//	name = "Acme"
//	values = [10, 20]
//	highlights = [4, nan]
//
// # JSON
//
// JSON is the native format of pkg/dataset.
//
// # Sources
//
// [Open] accepts a file path or an http(s) URL. URLs are fetched through an
// [httputil.Client], so remote datasets are cached and retried like any
// other request.
//
// [httputil.Client]: github.com/matzehuels/mekko/pkg/httputil.Client
package io
