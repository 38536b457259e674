package core

import (
	"math"
	"strconv"
)

// Float is a statistic that may be undefined. Undefined values are NaN in
// memory and null on the wire; they are never coerced to zero.
type Float float64

// Undefined returns the NaN Float
func Undefined() Float {
	return Float(math.NaN())
}

// Defined reports whether the value is a finite number
func (f Float) Defined() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON encodes NaN and infinities as null
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Defined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(f), 'g', -1, 64), nil
}

// UnmarshalJSON decodes null as NaN
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Undefined()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
