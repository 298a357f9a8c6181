package chart

import (
	"bytes"
	"encoding/json"
	"math"
)

// Number is a nullable float64. The zero value is absent.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a present Number. Non-finite values are returned as absent.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

// Absent returns an absent Number.
func Absent() Number { return Number{} }

// Nums converts a float slice into Numbers.
func Nums(vs ...float64) []Number {
	out := make([]Number, len(vs))
	for i, v := range vs {
		out[i] = Num(v)
	}
	return out
}

// Present reports whether n holds a finite value.
func (n Number) Present() bool {
	return n.Valid && !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
}

// Sanitize returns n with non-finite values converted to absent.
func (n Number) Sanitize() Number {
	if !n.Present() {
		return Number{}
	}
	return n
}

// Or returns the value, or fallback if n is absent.
func (n Number) Or(fallback float64) float64 {
	if n.Present() {
		return n.Value
	}
	return fallback
}

// MarshalJSON encodes absent values as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON decodes null as absent.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Number{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Num(v)
	return nil
}
