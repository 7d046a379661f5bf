// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package build

import (
	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/tree"
)

// resolveScalar converts the non-container token tok into a tree value.
func (b Builder) resolveScalar(src Source, tok jnode.Token) (tree.Value, error) {
	switch tok {
	case jnode.String:
		return tree.Text(src.Unescape()), nil
	case jnode.Integer:
		return b.resolveInt(src), nil
	case jnode.Number, jnode.NonFinite:
		return b.resolveFloat(src), nil
	case jnode.True:
		return tree.Bool(true), nil
	case jnode.False:
		return tree.Bool(false), nil
	case jnode.Null:
		return tree.Null, nil
	case jnode.Embedded:
		return b.resolveEmbedded(src), nil
	case jnode.RBrace:
		// A close brace in value position occurs when a source replays a
		// filtered or truncated stream; treat it as an empty object.
		return new(tree.Object), nil
	default:
		return b.unexpected(src, tok)
	}
}

// resolveInt converts the integer token at src into a tree value. The mode
// widens the representation, never narrows it: a value too wide for the
// selected representation takes the next wider one.
func (b Builder) resolveInt(src Source) tree.Value {
	kind := src.NumberKind()
	if b.Integers == BigInts || kind == jnode.BigInt {
		return tree.NewBigInt(src.BigInt())
	}
	if b.Integers == LongInts || kind == jnode.Int64 {
		return tree.Int64(src.Int64())
	}
	return tree.Int32(src.Int64())
}

// resolveFloat converts the floating-point token at src into a tree value.
func (b Builder) resolveFloat(src Source) tree.Value {
	kind := src.NumberKind()
	if kind == jnode.Decimal {
		return tree.NewDecimal(src.Decimal())
	}
	if b.Floats == DecimalFloats {
		if src.IsNaN() {
			return tree.Float64(src.Float64())
		}
		return tree.NewDecimal(src.Decimal())
	}
	if kind == jnode.Float32 {
		return tree.Float32(src.Float64())
	}
	return tree.Float64(src.Float64())
}

// resolveEmbedded converts the payload of an embedded token into a tree
// value. Byte slices become Binary, values already in tree form are adopted
// as given, and anything else is wrapped in Opaque.
func (b Builder) resolveEmbedded(src Source) tree.Value {
	switch t := src.Embed().(type) {
	case nil:
		return tree.Null
	case []byte:
		return tree.Binary(t)
	case tree.Value:
		return t
	default:
		return tree.Opaque{Payload: t}
	}
}
