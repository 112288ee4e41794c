// Package score holds the numeric helpers shared by the leaderboard builders:
// an optional value that replaces NaN as the "no data" marker, the mean used
// by the aggregators and the one-decimal rounding policy applied to every
// published number.
package score

import (
	"encoding/json"
	"math"
	"strconv"
)

// Missing is the display sentinel for a category without data.
const Missing = -1

// Optional is a float64 that may be absent.
type Optional struct {
	value float64
	valid bool
}

// Some wraps v as a present value.
func Some(v float64) Optional { return Optional{value: v, valid: true} }

// None returns an absent value.
func None() Optional { return Optional{} }

// Valid reports whether a value is present.
func (o Optional) Valid() bool { return o.valid }

// Get returns the value and whether it is present.
func (o Optional) Get() (float64, bool) { return o.value, o.valid }

// Value returns the value, or 0 when absent.
func (o Optional) Value() float64 {
	if !o.valid {
		return 0
	}
	return o.value
}

// OrMissing converts to the display form: the value when present, Missing otherwise.
func (o Optional) OrMissing() float64 {
	if !o.valid {
		return Missing
	}
	return o.value
}

// Round1 applies Round1 to a present value.
func (o Optional) Round1() Optional {
	if !o.valid {
		return o
	}
	return Some(Round1(o.value))
}

// MarshalJSON encodes an absent value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as absent.
func (o *Optional) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Mean returns the arithmetic mean of values, absent for an empty slice.
func Mean(values []float64) Optional {
	if len(values) == 0 {
		return None()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Some(sum / float64(len(values)))
}

// Round1 rounds x to one decimal place the way Number(x.toFixed(1)) does:
// the exact binary value picks the nearest tenth, and an exact tie goes
// away from zero. Exact ties only occur for odd multiples of 0.25.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if q := x * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		return math.Round(x*10) / 10
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	if err != nil {
		return x
	}
	return v
}
