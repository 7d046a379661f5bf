// Package query implements structural queries over JSON values.
//
// A query describes a substructure of a JSON value, such as an object
// member, array element, or a path through the tree. Evaluating a query
// against a concrete value traverses the structure described by the query
// and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a JSON value. For example,
// given the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value "true".
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/jnode/tree"
)

// Eval evaluates the given query beginning from root, returning the
// resulting value or an error.
func Eval(root tree.Value, q Query) (tree.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(tree.Value) (tree.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic("invalid path element")
	}
}

type objKey string

func (o objKey) eval(v tree.Value) (tree.Value, error) {
	obj, ok := v.(*tree.Object)
	if !ok {
		return nil, fmt.Errorf("got %T, want object", v)
	}
	mem := obj.Find(string(o))
	if mem == nil {
		return nil, fmt.Errorf("key %q not found", o)
	}
	return mem.Value, nil
}

type nthQuery int

func (nq nthQuery) eval(v tree.Value) (tree.Value, error) {
	arr, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	idx := int(nq)
	if idx < 0 {
		idx += len(arr.Values)
	}
	if idx < 0 || idx >= len(arr.Values) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, len(arr.Values))
	}
	return arr.Values[idx], nil
}

// Selection constructs an array of the elements of its input array, for
// which the specified function returns true.
type Selection func(tree.Value) bool

func (q Selection) eval(v tree.Value) (tree.Value, error) {
	a, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := new(tree.Array)
	for _, elt := range a.Values {
		if q(elt) {
			out.Values = append(out.Values, elt)
		}
	}
	return out, nil
}

// Mapping constructs an array in which each value is replaced by the result
// of calling the specified function on the corresponding input value.
type Mapping func(tree.Value) tree.Value

func (q Mapping) eval(v tree.Value) (tree.Value, error) {
	a, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := &tree.Array{Values: make([]tree.Value, len(a.Values))}
	for i, elt := range a.Values {
		out.Values[i] = q(elt)
	}
	return out, nil
}

// Slice selects a slice of an array from offsets lo to hi.  The range
// includes lo but excludes hi. Negative offsets select from the end of the
// array. If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v tree.Value) (tree.Value, error) {
	arr, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	n := len(arr.Values)
	lox := q.lo
	if lox < 0 {
		lox += n
	}
	hix := q.hi
	if hix <= 0 {
		hix += n
	}
	if lox < 0 || lox >= n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, n)
	} else if hix < 0 || hix > n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, n)
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return &tree.Array{Values: arr.Values[lox:hix]}, nil
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v tree.Value) (tree.Value, error) {
	arr, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := new(tree.Array)
	for _, off := range q {
		if off < 0 {
			off += len(arr.Values)
		}
		if off < 0 || off >= len(arr.Values) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", off, len(arr.Values))
		}
		out.Values = append(out.Values, arr.Values[off])
	}
	return out, nil
}

// Len returns an integer representing the length of the root.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string or binary value, the length is the number of bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v tree.Value) (tree.Value, error) {
	if t, ok := v.(interface {
		Len() int
	}); ok {
		return tree.ToValue(t.Len()), nil
	}
	return nil, fmt.Errorf("cannot take length of %T", v)
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v tree.Value) (tree.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result
// of the first alternative that does not report an error is returned. If
// there are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v tree.Value) (tree.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input and
// returns an array of the resulting values. The arguments have the same
// constraints as Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v tree.Value) (tree.Value, error) {
	var out []tree.Value

	stk := []tree.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// N.B. Push in reverse order, so we visit in lexical order.
		switch t := next.(type) {
		case *tree.Object:
			for i := len(t.Members) - 1; i >= 0; i-- {
				stk = append(stk, t.Members[i].Value)
			}
		case *tree.Array:
			for i := len(t.Values) - 1; i >= 0; i-- {
				stk = append(stk, t.Values[i])
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return &tree.Array{Values: out}, nil
}

// Each applies a query to each element of an array and returns an array of
// the resulting values. It fails if the input is not an array.  The
// arguments have the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v tree.Value) (tree.Value, error) {
	arr, ok := v.(*tree.Array)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := new(tree.Array)
	for i, elt := range arr.Values {
		v, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out.Values = append(out.Values, v)
	}
	return out, nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input.
type Object map[string]Query

func (o Object) eval(v tree.Value) (tree.Value, error) {
	out := new(tree.Object)
	for key, q := range o {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out.Members = append(out.Members, tree.Field(key, val))
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v tree.Value) (tree.Value, error) {
	out := &tree.Array{Values: make([]tree.Value, len(a))}
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out.Values[i] = val
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(tree.Text(s)) }

// A Float query ignores its input and returns the given number.
func Float(n float64) Query { return Value(tree.Float64(n)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Value(tree.Int64(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(tree.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(tree.Null) }

// A Value query ignores its input and returns the given value.
func Value(v tree.Value) Query { return constQuery{v} }

type constQuery struct{ tree.Value }

func (c constQuery) eval(_ tree.Value) (tree.Value, error) { return c.Value, nil }

// A Glob query returns an array of all its inputs.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v tree.Value) (tree.Value, error) {
	switch t := v.(type) {
	case *tree.Object:
		out := &tree.Array{Values: make([]tree.Value, len(t.Members))}
		for i, m := range t.Members {
			out.Values[i] = m.Value
		}
		return out, nil
	case *tree.Array:
		return t, nil
	default:
		return nil, errors.New("no matching values")
	}
}
