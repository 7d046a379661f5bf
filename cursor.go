// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberKind classifies the native representation called for by the value of
// a number token.
type NumberKind byte

// Constants defining the valid NumberKind values.
const (
	Int32   NumberKind = iota // fits in an int32
	Int64                     // fits in an int64
	BigInt                    // integer wider than an int64
	Float32                   // 32-bit binary floating-point
	Float64                   // 64-bit binary floating-point
	Decimal                   // arbitrary-precision decimal
)

var kindStr = [...]string{
	Int32:   "int32",
	Int64:   "int64",
	BigInt:  "bigint",
	Float32: "float32",
	Float64: "float64",
	Decimal: "decimal",
}

func (k NumberKind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// The grammar states of a cursor, describing what the next lexical token may
// be. The zero state expects a top-level value.
type cstate byte

const (
	cValue     cstate = iota // a top-level value
	cFirstKey                // the first member key of an object, or its close
	cNextKey                 // a member key after a comma
	cColon                   // the colon after a member key
	cMember                  // the value of a member
	cFirstElem               // the first element of an array, or its close
	cNextElem                // an element after a comma
	cEndValue                // a comma or the close of the enclosing container
)

// A Cursor reads the logical structure of JSON input as a flat sequence of
// tokens. Each call to Next advances the cursor to the next token of the
// value grammar, verifying that the sequence remains well-formed.
//
// Object and array structure is delimited by LBrace/RBrace and
// LSquare/RSquare tokens, and member keys are reported as Name tokens; the
// separating punctuation is consumed internally and not reported. Comments,
// if enabled, are skipped. Nesting depth is tracked on the heap, so the
// depth of input a Cursor can traverse is not limited by the native call
// stack.
type Cursor struct {
	sc     *Scanner
	tcomma bool // allow trailing commas in objects and arrays

	tok   Token
	state cstate
	stk   []byte // kinds of open containers, '{' or '['
	err   error
}

// NewCursor constructs a new Cursor that consumes input from r.
func NewCursor(r io.Reader) *Cursor { return &Cursor{sc: NewScanner(r)} }

// AllowComments configures the cursor to accept (true) or reject (false)
// comments in the input. Comments are consumed and discarded.
func (c *Cursor) AllowComments(ok bool) { c.sc.AllowComments(ok) }

// AllowNonFinite configures the cursor to accept (true) or reject (false)
// the non-finite number constants NaN, Infinity, and -Infinity.
func (c *Cursor) AllowNonFinite(ok bool) { c.sc.AllowNonFinite(ok) }

// AllowTrailingCommas configures the cursor to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (c *Cursor) AllowTrailingCommas(ok bool) { c.tcomma = ok }

// Next advances c to the next token of the input and reports whether a token
// is available. Once the input is exhausted or an error occurs, Next returns
// false; Err reports the error, or nil if the input ended cleanly at the top
// level. In case of a syntax error, the error has type [*SyntaxError].
func (c *Cursor) Next() bool {
	if c.err != nil {
		return false
	}
	for {
		if !c.sc.Next() {
			if err := c.sc.Err(); err != nil {
				return c.fail(err, "invalid input")
			}
			return c.atEOF()
		}
		tok := c.sc.Token()
		if tok == LineComment || tok == BlockComment {
			continue
		}

		switch c.state {
		case cValue, cMember:
			return c.value(tok)

		case cFirstKey:
			if tok == String {
				return c.emit(Name, cColon)
			} else if tok == RBrace {
				return c.close()
			}
			return c.failExpect(tok, RBrace, String)

		case cNextKey:
			if tok == String {
				return c.emit(Name, cColon)
			} else if tok == RBrace && c.tcomma {
				return c.close()
			} else if c.tcomma {
				return c.failExpect(tok, String, RBrace)
			}
			return c.failExpect(tok, String)

		case cColon:
			if tok != Colon {
				return c.failExpect(tok, Colon)
			}
			c.state = cMember

		case cFirstElem:
			if tok == RSquare {
				return c.close()
			}
			return c.value(tok)

		case cNextElem:
			if tok == RSquare && c.tcomma {
				return c.close()
			}
			return c.value(tok)

		case cEndValue:
			end := RBrace
			if c.top() == '[' {
				end = RSquare
			}
			if tok == end {
				return c.close()
			} else if tok != Comma {
				return c.failExpect(tok, end, Comma)
			}
			if end == RBrace {
				c.state = cNextKey
			} else {
				c.state = cNextElem
			}
		}
	}
}

// value handles tok in a position where a value is required.
func (c *Cursor) value(tok Token) bool {
	switch tok {
	case LBrace:
		c.stk = append(c.stk, '{')
		return c.emit(LBrace, cFirstKey)
	case LSquare:
		c.stk = append(c.stk, '[')
		return c.emit(LSquare, cFirstElem)
	case Integer, Number, String, True, False, Null, NonFinite:
		return c.emit(tok, c.after())
	}
	return c.fail(nil, "unexpected %v", tok)
}

// atEOF handles a clean end of input in the current state.
func (c *Cursor) atEOF() bool {
	switch c.state {
	case cValue:
		return false // end of input at the top level
	case cFirstKey:
		return c.failShort(RBrace, String)
	case cNextKey:
		if c.tcomma {
			return c.failShort(String, RBrace)
		}
		return c.failShort(String)
	case cColon:
		return c.failShort(Colon)
	case cEndValue:
		if c.top() == '[' {
			return c.failShort(RSquare, Comma)
		}
		return c.failShort(RBrace, Comma)
	}
	return c.failShort() // a value may begin here
}

// close pops the innermost open container and emits its closing token.
func (c *Cursor) close() bool {
	kind := c.top()
	c.stk = c.stk[:len(c.stk)-1]
	if kind == '{' {
		return c.emit(RBrace, c.after())
	}
	return c.emit(RSquare, c.after())
}

// after returns the state following a completed value.
func (c *Cursor) after() cstate {
	if len(c.stk) == 0 {
		return cValue
	}
	return cEndValue
}

func (c *Cursor) top() byte { return c.stk[len(c.stk)-1] }

func (c *Cursor) emit(tok Token, next cstate) bool {
	c.tok = tok
	c.state = next
	return true
}

func (c *Cursor) fail(err error, msg string, args ...any) bool {
	c.err = &SyntaxError{
		Location: c.sc.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
	return false
}

func (c *Cursor) failExpect(got Token, want ...Token) bool {
	return c.fail(nil, "expected %s, got %v", tokLabel(want), got)
}

func (c *Cursor) failShort(want ...Token) bool {
	return c.fail(io.EOF, "expected %s, got error: %v", tokLabel(want), io.EOF)
}

// Token returns the type of the current token. Member keys are reported as
// Name tokens; their underlying lexical tokens are strings.
func (c *Cursor) Token() Token { return c.tok }

// Err returns the error that ended the token stream, or nil if the stream
// ended cleanly at the top level.
func (c *Cursor) Err() error { return c.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents
// of the returned slice if it is needed beyond that.
func (c *Cursor) Text() []byte { return c.sc.Text() }

// Location returns the complete location of the current token.
func (c *Cursor) Location() Location { return c.sc.Location() }

// Unescape returns the decoded text of the current Name or String token.
// It panics for other token types.
func (c *Cursor) Unescape() string { return string(c.sc.Unescape()) }

// NumberKind reports the numeric representation called for by the current
// number token: for an Integer, the narrowest of Int32, Int64, or BigInt
// able to hold its value; Float64 for Number and NonFinite tokens.
// It panics for other token types.
func (c *Cursor) NumberKind() NumberKind {
	switch c.tok {
	case Integer:
		v, err := strconv.ParseInt(c.sc.buf.String(), 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return BigInt
			}
			panic(err)
		}
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return Int32
		}
		return Int64
	case Number, NonFinite:
		return Float64
	}
	panic("token is not a number")
}

// Int64 returns the value of the current Integer token as an int64.
// It panics if the current token is not an Integer, or if the value does not
// fit in an int64.
func (c *Cursor) Int64() int64 { return c.sc.Int64() }

// BigInt returns the value of the current Integer token as a *big.Int.
// It panics if the current token is not an Integer.
func (c *Cursor) BigInt() *big.Int {
	if c.tok != Integer {
		panic("token is not an integer")
	}
	z, ok := new(big.Int).SetString(c.sc.buf.String(), 10)
	if !ok {
		panic("invalid integer text")
	}
	return z
}

// Float64 returns the value of the current number token as a float64.
// It panics if the current token is not an Integer, Number, or NonFinite.
func (c *Cursor) Float64() float64 { return c.sc.Float64() }

// Decimal returns the value of the current Integer or Number token as an
// arbitrary-precision decimal. It panics for other token types.
func (c *Cursor) Decimal() decimal.Decimal {
	if c.tok != Integer && c.tok != Number {
		panic("token is not a finite number")
	}
	d, err := decimal.NewFromString(c.sc.buf.String())
	if err != nil {
		panic(err)
	}
	return d
}

// IsNaN reports whether the current token is a non-finite number constant
// (NaN, Infinity, or -Infinity).
func (c *Cursor) IsNaN() bool { return c.tok == NonFinite }

// Embed returns the payload of an Embedded token. A Cursor reads lexical
// input and never produces embedded values, so Embed always returns nil.
// It is defined so that a Cursor satisfies interfaces for token sources that
// can deliver values with no lexical form.
func (c *Cursor) Embed() any { return nil }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token) string {
	if len(tokens) == 0 {
		return "more input"
	} else if len(tokens) == 1 {
		return tokens[0].String()
	}
	last := len(tokens) - 1
	ss := make([]string, last)
	for i, tok := range tokens[:last] {
		ss[i] = tok.String()
	}
	return strings.Join(ss, ", ") + " or " + tokens[last].String()
}

// SyntaxError is the concrete type of errors reported by a Cursor.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
