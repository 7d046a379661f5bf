// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package build

import (
	"math/big"

	"github.com/creachadair/jnode"
	"github.com/shopspring/decimal"
)

// A Source is a stream of tokens describing JSON values, along with the
// decoded content of the current token. A *jnode.Cursor is a Source; other
// implementations may deliver tokens that have no lexical form, such as
// values replayed from another structure.
//
// Next, Err, and Token follow the cursor protocol: Next advances to the next
// token and reports whether one is available, and once Next returns false,
// Err reports the reason, or nil at a normal end of input.
//
// The remaining methods report the content of the current token. Their
// behavior is defined only for the token types indicated, and they may panic
// for others.
type Source interface {
	// Next advances to the next token and reports whether one is available.
	Next() bool

	// Err reports the error that ended the stream, or nil.
	Err() error

	// Token returns the type of the current token.
	Token() jnode.Token

	// Unescape returns the decoded text of a String or Name token.
	Unescape() string

	// NumberKind reports the native representation called for by the value
	// of an Integer, Number, or NonFinite token.
	NumberKind() jnode.NumberKind

	// Int64 returns the value of an Integer token as an int64.
	Int64() int64

	// BigInt returns the value of an Integer token as a *big.Int.
	BigInt() *big.Int

	// Float64 returns the value of an Integer, Number, or NonFinite token
	// as a float64.
	Float64() float64

	// Decimal returns the value of an Integer or Number token as an
	// arbitrary-precision decimal.
	Decimal() decimal.Decimal

	// IsNaN reports whether the current token is a non-finite number
	// constant (NaN, Infinity, or -Infinity).
	IsNaN() bool

	// Embed returns the payload of an Embedded token, or nil.
	Embed() any

	// Location reports the position of the current token in the input.
	Location() jnode.Location
}
