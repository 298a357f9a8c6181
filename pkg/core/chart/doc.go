// Package chart defines the data model shared by every stage of the Mekko
// layout engine.
//
// # Overview
//
// A Mekko chart (also called a variable-width stacked column chart) places
// categories side by side along the horizontal axis. Each category spans a
// width proportional to a secondary "width" measure, and inside that span the
// series values are stacked vertically.
//
// This package holds the input side ([Input], [Column], [Category], [Number],
// [Options]) and the per-point output types ([CategoryKey], [SeriesKey],
// [DataPoint], [CategoryAggregate]) that the engine packages under
// pkg/core/render/mekko exchange. It imports none of those packages.
//
// # Absent Values
//
// Missing numbers are an explicit variant. A [Number] with Valid == false is
// absent: it contributes nothing to aggregates and produces no drawn
// rectangle. Non-finite inputs (NaN, ±Inf) are treated as absent.
//
// # Roles
//
// Columns carry role tags. A column tagged [RoleY] is a stacked series; a
// column tagged [RoleWidth] (and not [RoleY]) only feeds the width allocator.
// An untagged column is treated as a series.
package chart
