// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package tree defines a mutable in-memory representation of JSON values.
//
// The concrete types defined here are *Object, *Array, Text, Bool, Null,
// Binary, Raw, Opaque, and the numeric types Int32, Int64, BigInt, Float32,
// Float64, and Decimal. Containers are addressed by pointer so that values
// can be updated in place; the scalar types are immutable.
package tree

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/creachadair/jnode"
	"github.com/shopspring/decimal"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON renders the value as JSON text.
	JSON() string

	// String renders a human-readable summary of the value.
	String() string
}

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member
}

// Find returns the first member of o with the given key, or nil if no such
// member exists. Keys are compared exactly.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// FindKey returns the first member of o for whose key f reports true, or nil.
func (o *Object) FindKey(f func(string) bool) *Member {
	if i := o.IndexKey(f); i >= 0 {
		return o.Members[i]
	}
	return nil
}

// IndexKey returns the index of the first member of o for whose key f reports
// true, or -1.
func (o *Object) IndexKey(f func(string) bool) int {
	for i, m := range o.Members {
		if f(m.Key) {
			return i
		}
	}
	return -1
}

// Set updates the member of o with the given key to v, adding a new member if
// no member with that key exists. It returns the value formerly held by the
// member, or nil if the member was newly added. The position of an existing
// member is not disturbed.
func (o *Object) Set(key string, v Value) Value {
	if m := o.Find(key); m != nil {
		old := m.Value
		m.Value = v
		return old
	}
	o.Members = append(o.Members, &Member{Key: key, Value: v})
	return nil
}

func (o Object) Len() int { return len(o.Members) }

func (o Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o.Members[0].JSON())
	for _, elt := range o.Members[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// Sort sorts the members of o in ascending order by key.
func (o Object) Sort() {
	sort.Slice(o.Members, func(i, j int) bool {
		return o.Members[i].Key < o.Members[j].Key
	})
}

// A Member is a key-value pair in an object.
type Member struct {
	Key   string
	Value Value
}

func (m Member) JSON() string {
	k := jnode.Quote(m.Key)
	v := m.Value.JSON()
	buf := make([]byte, len(k)+len(v)+1)
	n := copy(buf, k)
	buf[n] = ':'
	copy(buf[n+1:], v)
	return string(buf)
}

func (m Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be one of the types supported by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// An Array is a sequence of values.
type Array struct {
	Values []Value
}

func (a Array) Len() int { return len(a.Values) }

func (a Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a.Values[0].JSON())
	for _, elt := range a.Values[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

// ArrayOf constructs an Array from the given values, converting each via
// ToValue. It panics if any value has a type not supported by ToValue.
func ArrayOf[T any](vs ...T) *Array {
	out := &Array{Values: make([]Value, len(vs))}
	for i, v := range vs {
		out.Values[i] = ToValue(v)
	}
	return out
}

// A Text is a string value.
type Text string

func (t Text) JSON() string { return string(jnode.Quote(string(t))) }

func (t Text) String() string { return string(t) }

// Len reports the number of bytes in the text.
func (t Text) Len() int { return len(t) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) String() string { return b.JSON() }

// Null is the JSON null constant.
var Null nullValue

type nullValue struct{}

func (nullValue) JSON() string { return "null" }

func (nullValue) String() string { return "null" }

// Len reports the length of null, which is zero.
func (nullValue) Len() int { return 0 }

// A Binary is a slice of bytes, rendered as a base64-encoded JSON string.
type Binary []byte

func (b Binary) JSON() string { return `"` + b.String() + `"` }

func (b Binary) String() string { return base64.StdEncoding.EncodeToString(b) }

// Len reports the number of bytes in the value.
func (b Binary) Len() int { return len(b) }

// A Raw is a fragment of pre-rendered JSON text, emitted verbatim.
// The contents are not checked for validity.
type Raw string

func (r Raw) JSON() string { return string(r) }

func (r Raw) String() string { return string(r) }

// An Opaque wraps an arbitrary Go value carried through a tree. It renders as
// the JSON encoding of its payload, or null if the payload cannot be encoded.
type Opaque struct {
	Payload any
}

func (o Opaque) JSON() string {
	data, err := json.Marshal(o.Payload)
	if err != nil {
		return "null"
	}
	return string(data)
}

func (o Opaque) String() string { return fmt.Sprintf("Opaque(%T)", o.Payload) }

// ToValue converts a string, integer, float, bool, nil, []byte, *big.Int,
// decimal.Decimal, map[string]any, or []any into a Value. A value that is
// already a Value is returned unchanged. ToValue panics if v does not have
// one of those types.
//
// Integers are converted to Int32 if the value fits, otherwise Int64, and to
// BigInt if the value exceeds the range of int64. The members of a
// map[string]any are ordered by key in the resulting object.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case string:
		return Text(t)
	case bool:
		return Bool(t)
	case []byte:
		return Binary(t)
	case int:
		return intValue(int64(t))
	case int8:
		return Int32(t)
	case int16:
		return Int32(t)
	case int32:
		return Int32(t)
	case int64:
		return intValue(t)
	case uint8:
		return Int32(t)
	case uint16:
		return Int32(t)
	case uint32:
		return intValue(int64(t))
	case uint:
		return uintValue(uint64(t))
	case uint64:
		return uintValue(t)
	case float32:
		return Float32(t)
	case float64:
		return Float64(t)
	case *big.Int:
		return NewBigInt(t)
	case decimal.Decimal:
		return NewDecimal(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		o := &Object{Members: make([]*Member, len(keys))}
		for i, key := range keys {
			o.Members[i] = &Member{Key: key, Value: ToValue(t[key])}
		}
		return o
	case []any:
		return ArrayOf(t...)
	}
	panic(fmt.Sprintf("unsupported value type %T", v))
}

func intValue(z int64) Value {
	if z >= math.MinInt32 && z <= math.MaxInt32 {
		return Int32(z)
	}
	return Int64(z)
}

func uintValue(z uint64) Value {
	if z <= math.MaxInt32 {
		return Int32(z)
	} else if z <= math.MaxInt64 {
		return Int64(z)
	}
	return NewBigInt(new(big.Int).SetUint64(z))
}
