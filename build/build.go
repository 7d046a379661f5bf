// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package build constructs tree values from streams of tokens.
//
// A Builder translates the tokens describing a single JSON value, usually
// delivered by a jnode.Cursor, into a tree.Value. Containers are tracked on
// an explicit stack rather than in the call stack, so the nesting depth of
// the input is limited by memory rather than by goroutine stack growth.
//
// The zero Builder is ready to use with default settings. Its fields select
// the representation of numbers and the treatment of duplicate object keys,
// and an optional hook to substitute values for unexpected input:
//
//	b := build.Builder{Duplicates: build.Reject}
//	v, err := b.ParseSingle(strings.NewReader(input))
package build

import (
	"errors"
	"io"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/tree"
)

// IntMode selects the tree representation of integer tokens.
type IntMode byte

const (
	// NarrowInts uses the smallest of Int32 and Int64 that fits each
	// value, and BigInt for values wider than an int64. It is the default.
	NarrowInts IntMode = iota

	// LongInts uses Int64 for every value that fits in an int64, and
	// BigInt for wider values.
	LongInts

	// BigInts uses BigInt for every integer value.
	BigInts
)

// FloatMode selects the tree representation of floating-point tokens.
type FloatMode byte

const (
	// DoubleFloats uses Float64 unless the source calls for another
	// representation. It is the default.
	DoubleFloats FloatMode = iota

	// DecimalFloats uses Decimal for finite values. Non-finite values use
	// Float64, which unlike Decimal can represent them.
	DecimalFloats
)

// DupMode selects the treatment of duplicate object keys.
type DupMode byte

const (
	// KeepLast replaces the value of the existing member, which keeps its
	// position in the object. It is the default.
	KeepLast DupMode = iota

	// Reject reports a DuplicateKeyError for a repeated key.
	Reject

	// Coalesce collects the values of a repeated key into an array, in
	// order of occurrence.
	Coalesce
)

// A Builder constructs tree values from the tokens of a Source.
// The zero value is ready to use with default settings. Builder methods are
// safe for concurrent use by multiple goroutines as long as the fields are
// not modified.
type Builder struct {
	// Integers selects the representation of integer values.
	Integers IntMode

	// Floats selects the representation of floating-point values.
	Floats FloatMode

	// Duplicates selects the treatment of duplicate object keys.
	Duplicates DupMode

	// OnUnexpected, if set, is consulted when the source delivers a token
	// that cannot begin a value, or ends before a value is complete. If it
	// returns a non-nil value with a nil error, that value is used in
	// place of the one that could not be built. Otherwise the build fails,
	// with the returned error if any, or with the original error.
	OnUnexpected func(*UnexpectedTokenError) (tree.Value, error)
}

// Build constructs a value from the tokens of src.
func (b Builder) Build(src Source) (tree.Value, error) {
	tok, err := b.advance(src)
	if err != nil {
		return nil, err
	}
	return b.BuildAt(src, tok)
}

// BuildAt constructs a value from the tokens of src, where the first token
// of the value, tok, has already been read. The remaining tokens of the
// value are consumed from src.
func (b Builder) BuildAt(src Source, tok jnode.Token) (tree.Value, error) {
	switch tok {
	case jnode.LBrace:
		return b.buildContainer(src, new(tree.Object))
	case jnode.LSquare:
		return b.buildContainer(src, new(tree.Array))
	case jnode.Name:
		obj := new(tree.Object)
		if err := b.buildObjectAt(src, obj, src.Unescape()); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return b.resolveScalar(src, tok)
	}
}

// BuildObject constructs an object from the tokens of src.
func (b Builder) BuildObject(src Source) (*tree.Object, error) {
	tok, err := b.advance(src)
	if err != nil {
		return nil, err
	}
	return b.BuildObjectAt(src, tok)
}

// BuildObjectAt constructs an object from the tokens of src, where the first
// token, tok, has already been read.
//
// An opening brace begins a complete object. A member name resumes an object
// whose opening brace was consumed elsewhere, and a closing brace denotes an
// empty object. For any other token the OnUnexpected hook may substitute a
// value, but the substitute must be an object or the original error is
// reported.
func (b Builder) BuildObjectAt(src Source, tok jnode.Token) (*tree.Object, error) {
	switch tok {
	case jnode.LBrace:
		v, err := b.buildContainer(src, new(tree.Object))
		if err != nil {
			return nil, err
		}
		return v.(*tree.Object), nil
	case jnode.Name:
		obj := new(tree.Object)
		if err := b.buildObjectAt(src, obj, src.Unescape()); err != nil {
			return nil, err
		}
		return obj, nil
	case jnode.RBrace:
		return new(tree.Object), nil
	}
	uerr := b.unexpectedErr(src, tok)
	if b.OnUnexpected != nil {
		v, err := b.OnUnexpected(uerr)
		if err != nil {
			return nil, err
		}
		if obj, ok := v.(*tree.Object); ok && obj != nil {
			return obj, nil
		}
	}
	return nil, uerr
}

// BuildArray constructs an array from the tokens of src. The value must
// begin with an opening bracket. For any other token the OnUnexpected hook
// may substitute a value, but the substitute must be an array or the
// original error is reported.
func (b Builder) BuildArray(src Source) (*tree.Array, error) {
	tok, err := b.advance(src)
	if err != nil {
		return nil, err
	}
	if tok != jnode.LSquare {
		uerr := b.unexpectedErr(src, tok)
		if b.OnUnexpected != nil {
			v, err := b.OnUnexpected(uerr)
			if err != nil {
				return nil, err
			}
			if arr, ok := v.(*tree.Array); ok && arr != nil {
				return arr, nil
			}
		}
		return nil, uerr
	}
	v, err := b.buildContainer(src, new(tree.Array))
	if err != nil {
		return nil, err
	}
	return v.(*tree.Array), nil
}

// Parse constructs all the top-level values from the text of r.
// If an error occurs, the values built before the error are returned with it.
func (b Builder) Parse(r io.Reader) ([]tree.Value, error) {
	c := jnode.NewCursor(r)
	var vs []tree.Value
	for c.Next() {
		v, err := b.BuildAt(c, c.Token())
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, c.Err()
}

// ParseSingle constructs the single value from the text of r. If more input
// remains after the first value, ParseSingle returns the value along with an
// error.
func (b Builder) ParseSingle(r io.Reader) (tree.Value, error) {
	c := jnode.NewCursor(r)
	v, err := b.Build(c)
	if err != nil {
		return nil, err
	}
	if c.Next() {
		return v, errors.New("unexpected input after value")
	}
	return v, c.Err()
}

// buildContainer consumes the tokens of the container whose opening token
// has already been read, filling in root, which must be a *tree.Object or a
// *tree.Array, and returns root. Members of containers nested within root
// are filled in as they are read, and the chain of open containers is kept
// on an explicit stack.
func (b Builder) buildContainer(src Source, root tree.Value) (tree.Value, error) {
	var stk containerStack
	curr := root
outer:
	for {
		switch t := curr.(type) {
		case *tree.Object:
			// Each pass consumes one member. An object member nested in an
			// object continues in this loop; all other transitions between
			// containers dispatch through the outer loop.
			for {
				key, ok, err := b.nextKey(src)
				if err != nil {
					return nil, err
				} else if !ok {
					break // end of this object
				}
				tok, err := b.advance(src)
				if err != nil {
					return nil, err
				}
				switch tok {
				case jnode.LBrace:
					sub := new(tree.Object)
					if err := b.setMember(t, key, sub); err != nil {
						return nil, err
					}
					stk.push(t)
					t = sub
				case jnode.LSquare:
					sub := new(tree.Array)
					if err := b.setMember(t, key, sub); err != nil {
						return nil, err
					}
					stk.push(t)
					curr = sub
					continue outer
				default:
					v, err := b.resolveScalar(src, tok)
					if err != nil {
						return nil, err
					}
					if err := b.setMember(t, key, v); err != nil {
						return nil, err
					}
				}
			}

		case *tree.Array:
		elems:
			for {
				tok, err := b.advance(src)
				if err != nil {
					return nil, err
				}
				switch tok {
				case jnode.LBrace:
					sub := new(tree.Object)
					t.Values = append(t.Values, sub)
					stk.push(t)
					curr = sub
					continue outer
				case jnode.LSquare:
					sub := new(tree.Array)
					t.Values = append(t.Values, sub)
					stk.push(t)
					curr = sub
					continue outer
				case jnode.RSquare:
					break elems // end of this array
				default:
					v, err := b.resolveScalar(src, tok)
					if err != nil {
						return nil, err
					}
					t.Values = append(t.Values, v)
				}
			}
		}

		// The current container is complete. Resume its parent, or if no
		// containers remain open the root is complete.
		if curr = stk.pop(); curr == nil {
			return root, nil
		}
	}
}

// buildObjectAt consumes the members of an object from src into obj, where
// the name of the first member has already been read and decoded as key.
func (b Builder) buildObjectAt(src Source, obj *tree.Object, key string) error {
	for {
		tok, err := b.advance(src)
		if err != nil {
			return err
		}
		var v tree.Value
		switch tok {
		case jnode.LBrace:
			v, err = b.buildContainer(src, new(tree.Object))
		case jnode.LSquare:
			v, err = b.buildContainer(src, new(tree.Array))
		default:
			v, err = b.resolveScalar(src, tok)
		}
		if err != nil {
			return err
		}
		if err := b.setMember(obj, key, v); err != nil {
			return err
		}
		next, ok, err := b.nextKey(src)
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		key = next
	}
}

// nextKey reads the next member key from src. It reports false with no error
// at the closing brace of the object.
func (b Builder) nextKey(src Source) (string, bool, error) {
	tok, err := b.advance(src)
	if err != nil {
		return "", false, err
	}
	switch tok {
	case jnode.Name:
		return src.Unescape(), true, nil
	case jnode.RBrace:
		return "", false, nil
	}
	return "", false, &UnexpectedTokenError{
		Token:    tok,
		Location: src.Location(),
		Message:  "expected member name, got " + tokenName(tok),
	}
}

// advance reads the next token from src. At a clean end of input it returns
// Invalid with no error, and the caller decides whether the input may end.
func (b Builder) advance(src Source) (jnode.Token, error) {
	if src.Next() {
		return src.Token(), nil
	}
	return jnode.Invalid, src.Err()
}

// setMember assigns v to the member of obj with the given key, applying the
// configured policy if a member with that key already exists.
func (b Builder) setMember(obj *tree.Object, key string, v tree.Value) error {
	old := obj.Set(key, v)
	if old == nil {
		return nil
	}
	switch b.Duplicates {
	case Reject:
		return &DuplicateKeyError{Key: key, Object: obj}
	case Coalesce:
		if arr, ok := old.(*tree.Array); ok {
			arr.Values = append(arr.Values, v)
			obj.Set(key, arr)
		} else {
			obj.Set(key, &tree.Array{Values: []tree.Value{old, v}})
		}
	}
	return nil
}

// unexpectedErr constructs the error for an unexpected token in tok.
func (b Builder) unexpectedErr(src Source, tok jnode.Token) *UnexpectedTokenError {
	return &UnexpectedTokenError{
		Token:    tok,
		Location: src.Location(),
		Message:  "unexpected " + tokenName(tok),
	}
}

// unexpected reports an unexpected token in value position, giving the
// OnUnexpected hook an opportunity to substitute a value.
func (b Builder) unexpected(src Source, tok jnode.Token) (tree.Value, error) {
	uerr := b.unexpectedErr(src, tok)
	if b.OnUnexpected != nil {
		v, err := b.OnUnexpected(uerr)
		if err != nil {
			return nil, err
		} else if v != nil {
			return v, nil
		}
	}
	return nil, uerr
}

// initStackSize is the initial capacity of a container stack.
const initStackSize = 10

// A containerStack tracks the chain of open containers between the root and
// the container under construction. The zero value is ready to use.
type containerStack struct {
	vs []tree.Value
}

func (s *containerStack) push(v tree.Value) {
	if s.vs == nil {
		s.vs = make([]tree.Value, 0, initStackSize)
	} else if n := len(s.vs); n == cap(s.vs) {
		next := make([]tree.Value, n, n+min(4000, max(20, n/2)))
		copy(next, s.vs)
		s.vs = next
	}
	s.vs = append(s.vs, v)
}

// pop removes and returns the top of the stack, or nil if the stack is
// empty. The vacated slot is cleared so the value can be collected.
func (s *containerStack) pop() tree.Value {
	n := len(s.vs)
	if n == 0 {
		return nil
	}
	out := s.vs[n-1]
	s.vs[n-1] = nil
	s.vs = s.vs[:n-1]
	return out
}
