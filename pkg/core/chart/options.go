package chart

import (
	"fmt"
	"strings"
)

// SortDirection controls optional per-category series reordering.
type SortDirection int

// Sort directions.
const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// String returns the flag spelling of d.
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirection) UnmarshalText(b []byte) error {
	v, err := ParseSortDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseSortDirection parses "", "none", "asc"/"ascending" and
// "desc"/"descending" (case-insensitive).
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("unknown sort direction %q (must be none, asc or desc)", s)
}

// Options are the recognized layout options. The zero value is a plain
// stacked chart without overflow support, sorting or gradients.
type Options struct {
	Is100PercentStacked bool          `json:"percent_stacked,omitempty" toml:"percent_stacked"`
	SupportsOverflow    bool          `json:"supports_overflow,omitempty" toml:"supports_overflow"`
	SortSeries          SortDirection `json:"sort_series,omitempty" toml:"sort_series"`
	ColorGradient       bool          `json:"color_gradient,omitempty" toml:"color_gradient"`
	// Palette overrides the default series palette.
	Palette []string `json:"palette,omitempty" toml:"palette"`
}

// Sorted reports whether series reordering is requested.
func (o Options) Sorted() bool { return o.SortSeries != SortNone }
