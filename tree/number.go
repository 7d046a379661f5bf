// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// A Number is a numeric Value. The concrete type records how the number was
// obtained: Int32, Int64, and BigInt are integers of increasing width;
// Float32 and Float64 are binary floating-point values; Decimal is an exact
// decimal floating-point value. Two numbers of different concrete types are
// distinct values even if they denote the same quantity.
type Number interface {
	Value

	// IsInt reports whether the number is an integer.
	IsInt() bool

	// Int returns the value as an int64, truncating if necessary.
	Int() int64

	// Float returns the value as a float64, rounding if necessary.
	Float() float64
}

// An Int32 is a 32-bit integer value.
type Int32 int32

func (z Int32) IsInt() bool { return true }

func (z Int32) Int() int64 { return int64(z) }

func (z Int32) Float() float64 { return float64(z) }

func (z Int32) JSON() string { return strconv.FormatInt(int64(z), 10) }

func (z Int32) String() string { return z.JSON() }

// An Int64 is a 64-bit integer value.
type Int64 int64

func (z Int64) IsInt() bool { return true }

func (z Int64) Int() int64 { return int64(z) }

func (z Int64) Float() float64 { return float64(z) }

func (z Int64) JSON() string { return strconv.FormatInt(int64(z), 10) }

func (z Int64) String() string { return z.JSON() }

// A BigInt is an arbitrary-precision integer value.
type BigInt struct {
	z *big.Int
}

// NewBigInt constructs a BigInt with the value of z.
// A nil z is treated as zero.
func NewBigInt(z *big.Int) BigInt {
	if z == nil {
		z = new(big.Int)
	}
	return BigInt{z: z}
}

// Value returns the value of b as a *big.Int.
// The caller must not modify the result.
func (b BigInt) Value() *big.Int { return b.z }

func (b BigInt) IsInt() bool { return true }

func (b BigInt) Int() int64 { return b.z.Int64() }

func (b BigInt) Float() float64 {
	f, _ := new(big.Float).SetInt(b.z).Float64()
	return f
}

func (b BigInt) JSON() string { return b.z.String() }

func (b BigInt) String() string { return b.z.String() }

// A Float32 is a 32-bit binary floating-point value.
type Float32 float32

func (f Float32) IsInt() bool { return false }

func (f Float32) Int() int64 { return int64(f) }

func (f Float32) Float() float64 { return float64(f) }

func (f Float32) JSON() string { return formatFloat(float64(f), 32) }

func (f Float32) String() string { return f.JSON() }

// A Float64 is a 64-bit binary floating-point value.
type Float64 float64

func (f Float64) IsInt() bool { return false }

func (f Float64) Int() int64 { return int64(f) }

func (f Float64) Float() float64 { return float64(f) }

func (f Float64) JSON() string { return formatFloat(float64(f), 64) }

func (f Float64) String() string { return f.JSON() }

// A Decimal is an arbitrary-precision decimal floating-point value.
type Decimal struct {
	d decimal.Decimal
}

// NewDecimal constructs a Decimal with the value of d.
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{d: d} }

// Value returns the value of d as a decimal.Decimal.
func (d Decimal) Value() decimal.Decimal { return d.d }

func (d Decimal) IsInt() bool { return false }

func (d Decimal) Int() int64 { return d.d.IntPart() }

func (d Decimal) Float() float64 { return d.d.InexactFloat64() }

func (d Decimal) JSON() string { return d.d.String() }

func (d Decimal) String() string { return d.d.String() }

// formatFloat renders f as JSON text. Non-finite values use the NaN and
// Infinity constant names, which are not standard JSON but are accepted by
// scanners with non-finite extensions enabled.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
