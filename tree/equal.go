// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bytes"
	"math"
	"reflect"
)

// Equal reports whether a and b are structurally equal. Two values are equal
// if they have the same concrete type and equal contents. Objects are equal
// if their members have equal keys and values in the same order. Numbers of
// different concrete types are never equal, and floating-point values are
// compared by bit pattern, so NaN compares equal to itself.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case *Object:
		u, ok := b.(*Object)
		if !ok || len(t.Members) != len(u.Members) {
			return false
		}
		for i, m := range t.Members {
			if m.Key != u.Members[i].Key || !Equal(m.Value, u.Members[i].Value) {
				return false
			}
		}
		return true
	case *Array:
		u, ok := b.(*Array)
		if !ok || len(t.Values) != len(u.Values) {
			return false
		}
		for i, v := range t.Values {
			if !Equal(v, u.Values[i]) {
				return false
			}
		}
		return true
	case Text:
		u, ok := b.(Text)
		return ok && t == u
	case Bool:
		u, ok := b.(Bool)
		return ok && t == u
	case nullValue:
		_, ok := b.(nullValue)
		return ok
	case Binary:
		u, ok := b.(Binary)
		return ok && bytes.Equal(t, u)
	case Raw:
		u, ok := b.(Raw)
		return ok && t == u
	case Opaque:
		u, ok := b.(Opaque)
		return ok && reflect.DeepEqual(t.Payload, u.Payload)
	case Int32:
		u, ok := b.(Int32)
		return ok && t == u
	case Int64:
		u, ok := b.(Int64)
		return ok && t == u
	case BigInt:
		u, ok := b.(BigInt)
		return ok && t.z.Cmp(u.z) == 0
	case Float32:
		u, ok := b.(Float32)
		return ok && math.Float32bits(float32(t)) == math.Float32bits(float32(u))
	case Float64:
		u, ok := b.(Float64)
		return ok && math.Float64bits(float64(t)) == math.Float64bits(float64(u))
	case Decimal:
		u, ok := b.(Decimal)
		return ok && t.d.Equal(u.d)
	}
	return false
}
