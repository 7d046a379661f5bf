// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package build_test

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/build"
	"github.com/creachadair/jnode/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/tailscale/hujson"
)

// mustBuild builds a single value from s using b, failing the test on error.
// Non-finite number constants are enabled.
func mustBuild(t *testing.T, b build.Builder, s string) tree.Value {
	t.Helper()
	c := jnode.NewCursor(strings.NewReader(s))
	c.AllowNonFinite(true)
	v, err := b.Build(c)
	if err != nil {
		t.Fatalf("Build %#q: unexpected error: %v", s, err)
	}
	return v
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("Invalid big integer %q", s)
	}
	return z
}

func TestBuild(t *testing.T) {
	const input = `{"a": 1, "b": [true, null, "three"], "c": {"d": 2.5, "e": {}}}`

	want := &tree.Object{Members: []*tree.Member{
		tree.Field("a", 1),
		tree.Field("b", tree.ArrayOf[any](true, nil, "three")),
		tree.Field("c", &tree.Object{Members: []*tree.Member{
			tree.Field("d", 2.5),
			tree.Field("e", new(tree.Object)),
		}}),
	}}
	got := mustBuild(t, build.Builder{}, input)
	if !tree.Equal(got, want) {
		t.Errorf("Build: got %s, want %s", got.JSON(), want.JSON())
	}
	const wantJSON = `{"a":1,"b":[true,null,"three"],"c":{"d":2.5,"e":{}}}`
	if js := got.JSON(); js != wantJSON {
		t.Errorf("JSON: got %#q, want %#q", js, wantJSON)
	}

	t.Run("Types", func(t *testing.T) {
		// Small integers get the narrow representation by default.
		got := mustBuild(t, build.Builder{}, `{"a": 1, "b": [1, 2, {"c": 3}]}`)
		want := &tree.Object{Members: []*tree.Member{
			tree.Field("a", tree.Int32(1)),
			tree.Field("b", tree.ArrayOf[tree.Value](
				tree.Int32(1),
				tree.Int32(2),
				&tree.Object{Members: []*tree.Member{tree.Field("c", tree.Int32(3))}},
			)),
		}}
		if !tree.Equal(got, want) {
			t.Errorf("Build: got %s, want %s", got.JSON(), want.JSON())
		}
		if v := got.(*tree.Object).Find("a").Value; v != tree.Value(tree.Int32(1)) {
			t.Errorf("Member a: got %[1]T %[1]v, want Int32 1", v)
		}
	})
}

func TestDuplicates(t *testing.T) {
	t.Run("KeepLast", func(t *testing.T) {
		// The repeated member keeps its original position.
		got := mustBuild(t, build.Builder{}, `{"a": 1, "b": 2, "a": 3}`)
		if js := got.JSON(); js != `{"a":3,"b":2}` {
			t.Errorf("Build: got %#q, want {\"a\":3,\"b\":2}", js)
		}
	})
	t.Run("Reject", func(t *testing.T) {
		b := build.Builder{Duplicates: build.Reject}
		c := jnode.NewCursor(strings.NewReader(`{"a": 1, "a": 2}`))
		v, err := b.Build(c)
		if err == nil {
			t.Fatalf("Build: got %s, want error", v.JSON())
		}
		var derr *build.DuplicateKeyError
		if !errors.As(err, &derr) {
			t.Fatalf("Build: got error %[1]T (%[1]v), want DuplicateKeyError", err)
		}
		if derr.Key != "a" {
			t.Errorf("Duplicate key: got %q, want a", derr.Key)
		}
	})
	t.Run("Coalesce", func(t *testing.T) {
		b := build.Builder{Duplicates: build.Coalesce}
		got := mustBuild(t, b, `{"a": 1, "a": 2, "a": 3}`)
		if js := got.JSON(); js != `{"a":[1,2,3]}` {
			t.Errorf("Build: got %#q, want {\"a\":[1,2,3]}", js)
		}
	})
	t.Run("CoalesceArray", func(t *testing.T) {
		// When the first value is itself an array, later values are
		// appended to it rather than nested in a new one.
		b := build.Builder{Duplicates: build.Coalesce}
		got := mustBuild(t, b, `{"a": [1], "a": 2}`)
		if js := got.JSON(); js != `{"a":[1,2]}` {
			t.Errorf("Build: got %#q, want {\"a\":[1,2]}", js)
		}
	})
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		b     build.Builder
		want  tree.Value
	}{
		// The default uses the narrowest representation that fits.
		{"15", build.Builder{}, tree.Int32(15)},
		{"-2147483648", build.Builder{}, tree.Int32(math.MinInt32)},
		{"2147483647", build.Builder{}, tree.Int32(math.MaxInt32)},
		{"2147483648", build.Builder{}, tree.Int64(2147483648)},
		{"-2147483649", build.Builder{}, tree.Int64(-2147483649)},
		{"9223372036854775807", build.Builder{}, tree.Int64(math.MaxInt64)},
		{"9223372036854775808", build.Builder{}, tree.NewBigInt(mustBig(t, "9223372036854775808"))},
		{"-123456789012345678901234567890", build.Builder{},
			tree.NewBigInt(mustBig(t, "-123456789012345678901234567890"))},

		// The mode widens the representation, but never narrows it.
		{"15", build.Builder{Integers: build.LongInts}, tree.Int64(15)},
		{"15", build.Builder{Integers: build.BigInts}, tree.NewBigInt(big.NewInt(15))},
		{"123456789012345678901234567890", build.Builder{Integers: build.LongInts},
			tree.NewBigInt(mustBig(t, "123456789012345678901234567890"))},

		{"3.25", build.Builder{}, tree.Float64(3.25)},
		{"6e-2", build.Builder{}, tree.Float64(0.06)},
		{"3.25", build.Builder{Floats: build.DecimalFloats},
			tree.NewDecimal(decimal.RequireFromString("3.25"))},

		// Floating-point modes do not affect integer tokens.
		{"15", build.Builder{Floats: build.DecimalFloats}, tree.Int32(15)},

		// Non-finite values have no decimal representation.
		{"NaN", build.Builder{}, tree.Float64(math.NaN())},
		{"NaN", build.Builder{Floats: build.DecimalFloats}, tree.Float64(math.NaN())},
		{"Infinity", build.Builder{Floats: build.DecimalFloats}, tree.Float64(math.Inf(1))},
		{"-Infinity", build.Builder{Floats: build.DecimalFloats}, tree.Float64(math.Inf(-1))},
	}
	for _, tc := range tests {
		got := mustBuild(t, tc.b, tc.input)
		if !tree.Equal(got, tc.want) {
			t.Errorf("Build %#q: got %v (%T), want %v (%T)",
				tc.input, got, got, tc.want, tc.want)
		}
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 50000

	t.Run("Arrays", func(t *testing.T) {
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		v, err := build.Builder{}.ParseSingle(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseSingle: unexpected error: %v", err)
		}
		for i := 0; i < depth-1; i++ {
			arr, ok := v.(*tree.Array)
			if !ok {
				t.Fatalf("Depth %d: got %T, want array", i, v)
			} else if len(arr.Values) != 1 {
				t.Fatalf("Depth %d: got %d elements, want 1", i, len(arr.Values))
			}
			v = arr.Values[0]
		}
		if arr, ok := v.(*tree.Array); !ok || len(arr.Values) != 0 {
			t.Errorf("Innermost value: got %v, want empty array", v)
		}
	})

	t.Run("Objects", func(t *testing.T) {
		input := strings.Repeat(`{"a":`, depth) + "null" + strings.Repeat("}", depth)
		v, err := build.Builder{}.ParseSingle(strings.NewReader(input))
		if err != nil {
			t.Fatalf("ParseSingle: unexpected error: %v", err)
		}
		for i := 0; i < depth; i++ {
			obj, ok := v.(*tree.Object)
			if !ok {
				t.Fatalf("Depth %d: got %T, want object", i, v)
			} else if obj.Len() != 1 {
				t.Fatalf("Depth %d: got %d members, want 1", i, obj.Len())
			}
			v = obj.Members[0].Value
		}
		if v != tree.Null {
			t.Errorf("Innermost value: got %v, want null", v)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	const input = `{
  "name": "Aloysius & Co.",
  "values": [1, 2.5, -0.00036, 3e+300, 9223372036854775807, 123456789012345678901234567890],
  "ok": true,
  "blob": {"nested": [{"p": false}, [], {}], "last": null}
}`
	v := mustBuild(t, build.Builder{}, input)
	text := v.JSON()
	back := mustBuild(t, build.Builder{}, text)
	if !tree.Equal(back, v) {
		t.Errorf("Rebuilt value:\n got %s\nwant %s", back.JSON(), text)
	}
	if js := back.JSON(); js != text {
		t.Errorf("Rebuilt JSON:\n got %#q\nwant %#q", js, text)
	}
}

func TestBuildObject(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		c := jnode.NewCursor(strings.NewReader(`{"one": 1, "two": [2]}`))
		obj, err := build.Builder{}.BuildObject(c)
		if err != nil {
			t.Fatalf("BuildObject: unexpected error: %v", err)
		}
		if js := obj.JSON(); js != `{"one":1,"two":[2]}` {
			t.Errorf("BuildObject: got %#q, want {\"one\":1,\"two\":[2]}", js)
		}
	})
	t.Run("Resume", func(t *testing.T) {
		// Skip past the open brace so the cursor rests on the first member
		// name, as a source resuming a partly-consumed object would.
		c := jnode.NewCursor(strings.NewReader(`{"one": 1, "two": [2]}`))
		for i := 0; i < 2; i++ {
			if !c.Next() {
				t.Fatalf("Next: unexpected end of input (err=%v)", c.Err())
			}
		}
		obj, err := build.Builder{}.BuildObjectAt(c, c.Token())
		if err != nil {
			t.Fatalf("BuildObjectAt: unexpected error: %v", err)
		}
		if js := obj.JSON(); js != `{"one":1,"two":[2]}` {
			t.Errorf("BuildObjectAt: got %#q, want {\"one\":1,\"two\":[2]}", js)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		c := jnode.NewCursor(strings.NewReader(`{}`))
		for i := 0; i < 2; i++ {
			if !c.Next() {
				t.Fatalf("Next: unexpected end of input (err=%v)", c.Err())
			}
		}
		obj, err := build.Builder{}.BuildObjectAt(c, c.Token())
		if err != nil {
			t.Fatalf("BuildObjectAt: unexpected error: %v", err)
		} else if obj.Len() != 0 {
			t.Errorf("BuildObjectAt: got %s, want empty object", obj.JSON())
		}
	})
	t.Run("NotObject", func(t *testing.T) {
		c := jnode.NewCursor(strings.NewReader(`[5]`))
		obj, err := build.Builder{}.BuildObject(c)
		if err == nil {
			t.Fatalf("BuildObject: got %s, want error", obj.JSON())
		}
		var uerr *build.UnexpectedTokenError
		if !errors.As(err, &uerr) {
			t.Fatalf("BuildObject: got error %[1]T (%[1]v), want UnexpectedTokenError", err)
		}
		if uerr.Token != jnode.LSquare {
			t.Errorf("Unexpected token: got %v, want %v", uerr.Token, jnode.LSquare)
		}
	})
	t.Run("Substitute", func(t *testing.T) {
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			return &tree.Object{Members: []*tree.Member{tree.Field("sub", true)}}, nil
		}}
		obj, err := b.BuildObject(jnode.NewCursor(strings.NewReader(`[5]`)))
		if err != nil {
			t.Fatalf("BuildObject: unexpected error: %v", err)
		}
		if js := obj.JSON(); js != `{"sub":true}` {
			t.Errorf("BuildObject: got %#q, want {\"sub\":true}", js)
		}
	})
	t.Run("SubstituteWrongType", func(t *testing.T) {
		// A substitute that is not an object does not satisfy the caller,
		// and the original error is reported.
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			return tree.Bool(true), nil
		}}
		obj, err := b.BuildObject(jnode.NewCursor(strings.NewReader(`[5]`)))
		if err == nil {
			t.Fatalf("BuildObject: got %s, want error", obj.JSON())
		}
		var uerr *build.UnexpectedTokenError
		if !errors.As(err, &uerr) {
			t.Errorf("BuildObject: got error %[1]T (%[1]v), want UnexpectedTokenError", err)
		}
	})
}

func TestBuildArray(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		c := jnode.NewCursor(strings.NewReader(`[1, [2], {"three": 3}]`))
		arr, err := build.Builder{}.BuildArray(c)
		if err != nil {
			t.Fatalf("BuildArray: unexpected error: %v", err)
		}
		if js := arr.JSON(); js != `[1,[2],{"three":3}]` {
			t.Errorf("BuildArray: got %#q, want [1,[2],{\"three\":3}]", js)
		}
	})
	t.Run("NotArray", func(t *testing.T) {
		c := jnode.NewCursor(strings.NewReader(`{"a": 1}`))
		arr, err := build.Builder{}.BuildArray(c)
		if err == nil {
			t.Fatalf("BuildArray: got %s, want error", arr.JSON())
		}
		var uerr *build.UnexpectedTokenError
		if !errors.As(err, &uerr) {
			t.Fatalf("BuildArray: got error %[1]T (%[1]v), want UnexpectedTokenError", err)
		}
		if uerr.Token != jnode.LBrace {
			t.Errorf("Unexpected token: got %v, want %v", uerr.Token, jnode.LBrace)
		}
	})
	t.Run("Substitute", func(t *testing.T) {
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			return tree.ArrayOf(9), nil
		}}
		arr, err := b.BuildArray(jnode.NewCursor(strings.NewReader(`true`)))
		if err != nil {
			t.Fatalf("BuildArray: unexpected error: %v", err)
		}
		if js := arr.JSON(); js != `[9]` {
			t.Errorf("BuildArray: got %#q, want [9]", js)
		}
	})
}

func TestParse(t *testing.T) {
	vs, err := build.Builder{}.Parse(strings.NewReader(`1 "two" [3] {"four": 4} null`))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	var got []string
	for _, v := range vs {
		got = append(got, v.JSON())
	}
	want := []string{`1`, `"two"`, `[3]`, `{"four":4}`, `null`}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Parse results (-got, +want):\n%s", diff)
	}

	t.Run("Empty", func(t *testing.T) {
		vs, err := build.Builder{}.Parse(strings.NewReader(""))
		if err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
		}
		if len(vs) != 0 {
			t.Errorf("Parse: got %d values, want 0", len(vs))
		}
	})
}

func TestParseSingle(t *testing.T) {
	v, err := build.Builder{}.ParseSingle(strings.NewReader(`{"a": [1, 2]}`))
	if err != nil {
		t.Fatalf("ParseSingle: unexpected error: %v", err)
	}
	if js := v.JSON(); js != `{"a":[1,2]}` {
		t.Errorf("ParseSingle: got %#q, want {\"a\":[1,2]}", js)
	}

	t.Run("Trailing", func(t *testing.T) {
		v, err := build.Builder{}.ParseSingle(strings.NewReader(`1 2`))
		if err == nil {
			t.Fatalf("ParseSingle: got %s, want error", v.JSON())
		}
		t.Logf("Got expected error: %v", err)
	})
	t.Run("Empty", func(t *testing.T) {
		_, err := build.Builder{}.ParseSingle(strings.NewReader(""))
		var uerr *build.UnexpectedTokenError
		if !errors.As(err, &uerr) {
			t.Fatalf("ParseSingle: got error %[1]T (%[1]v), want UnexpectedTokenError", err)
		}
		if uerr.Token != jnode.Invalid {
			t.Errorf("Unexpected token: got %v, want %v", uerr.Token, jnode.Invalid)
		}
		if !strings.Contains(uerr.Message, "end of input") {
			t.Errorf("Error message %q does not mention end of input", uerr.Message)
		}
	})
}

func TestUnexpected(t *testing.T) {
	t.Run("Recover", func(t *testing.T) {
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			if e.Token != jnode.Invalid {
				t.Errorf("Unexpected token: got %v, want %v", e.Token, jnode.Invalid)
			}
			return tree.Null, nil
		}}
		v, err := b.ParseSingle(strings.NewReader(""))
		if err != nil {
			t.Fatalf("ParseSingle: unexpected error: %v", err)
		}
		if v != tree.Null {
			t.Errorf("ParseSingle: got %v, want null", v)
		}
	})
	t.Run("Decline", func(t *testing.T) {
		// A hook that returns nothing leaves the original error in place.
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			return nil, nil
		}}
		_, err := b.ParseSingle(strings.NewReader(""))
		var uerr *build.UnexpectedTokenError
		if !errors.As(err, &uerr) {
			t.Fatalf("ParseSingle: got error %[1]T (%[1]v), want UnexpectedTokenError", err)
		}
	})
	t.Run("Fail", func(t *testing.T) {
		sentinel := errors.New("lexical hiccup")
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			return nil, sentinel
		}}
		_, err := b.ParseSingle(strings.NewReader(""))
		if !errors.Is(err, sentinel) {
			t.Errorf("ParseSingle: got error %v, want %v", err, sentinel)
		}
	})
	t.Run("Continue", func(t *testing.T) {
		// Recovery replaces the value that could not be built, and the
		// rest of the container is consumed normally.
		src := &tokenSource{toks: []fakeToken{
			{tok: jnode.LBrace},
			{tok: jnode.Name, text: "a"},
			{tok: jnode.Comma},
			{tok: jnode.Name, text: "b"},
			{tok: jnode.True},
			{tok: jnode.RBrace},
		}}
		b := build.Builder{OnUnexpected: func(e *build.UnexpectedTokenError) (tree.Value, error) {
			if e.Token != jnode.Comma {
				t.Errorf("Unexpected token: got %v, want %v", e.Token, jnode.Comma)
			}
			return tree.Null, nil
		}}
		v, err := b.Build(src)
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		if js := v.JSON(); js != `{"a":null,"b":true}` {
			t.Errorf("Build: got %#q, want {\"a\":null,\"b\":true}", js)
		}
	})
}

func TestEmbedded(t *testing.T) {
	adopted := tree.ArrayOf(1, 2)
	src := &tokenSource{toks: []fakeToken{
		{tok: jnode.LSquare},
		{tok: jnode.Embedded},
		{tok: jnode.Embedded, embed: []byte("pay")},
		{tok: jnode.Embedded, embed: adopted},
		{tok: jnode.Embedded, embed: 42},
		{tok: jnode.RSquare},
	}}
	v, err := build.Builder{}.Build(src)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	arr, ok := v.(*tree.Array)
	if !ok {
		t.Fatalf("Build: got %T, want array", v)
	} else if len(arr.Values) != 4 {
		t.Fatalf("Build: got %d elements, want 4", len(arr.Values))
	}

	if arr.Values[0] != tree.Null {
		t.Errorf("Element 0: got %v, want null", arr.Values[0])
	}
	if bin, ok := arr.Values[1].(tree.Binary); !ok || string(bin) != "pay" {
		t.Errorf("Element 1: got %v, want Binary pay", arr.Values[1])
	}
	if arr.Values[2] != tree.Value(adopted) {
		t.Errorf("Element 2: got %v, want the adopted array", arr.Values[2])
	}
	if op, ok := arr.Values[3].(tree.Opaque); !ok || op.Payload != any(42) {
		t.Errorf("Element 3: got %v, want Opaque 42", arr.Values[3])
	}
}

func TestSourceKinds(t *testing.T) {
	tests := []struct {
		name string
		in   fakeToken
		b    build.Builder
		want tree.Value
	}{
		// The kind reported by the source wins over the builder's mode
		// when it calls for a wider or more exact representation.
		{"Float32", fakeToken{tok: jnode.Number, text: "0.25", kind: jnode.Float32},
			build.Builder{}, tree.Float32(0.25)},
		{"DecimalKind", fakeToken{tok: jnode.Number, text: "3.000", kind: jnode.Decimal},
			build.Builder{}, tree.NewDecimal(decimal.RequireFromString("3.000"))},
		{"Float32Decimal", fakeToken{tok: jnode.Number, text: "0.25", kind: jnode.Float32},
			build.Builder{Floats: build.DecimalFloats},
			tree.NewDecimal(decimal.RequireFromString("0.25"))},
		{"Int64Kind", fakeToken{tok: jnode.Integer, text: "12", kind: jnode.Int64},
			build.Builder{}, tree.Int64(12)},
		{"BigKind", fakeToken{tok: jnode.Integer, text: "12", kind: jnode.BigInt},
			build.Builder{}, tree.NewBigInt(big.NewInt(12))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &tokenSource{toks: []fakeToken{tc.in}}
			got, err := tc.b.Build(src)
			if err != nil {
				t.Fatalf("Build: unexpected error: %v", err)
			}
			if !tree.Equal(got, tc.want) {
				t.Errorf("Build: got %v (%T), want %v (%T)", got, got, tc.want, tc.want)
			}
		})
	}
}

func TestEmptyObject(t *testing.T) {
	// A close brace in value position denotes an empty object. Sources that
	// replay filtered or truncated streams deliver these.
	t.Run("Bare", func(t *testing.T) {
		src := &tokenSource{toks: []fakeToken{{tok: jnode.RBrace}}}
		v, err := build.Builder{}.Build(src)
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		if obj, ok := v.(*tree.Object); !ok || obj.Len() != 0 {
			t.Errorf("Build: got %v, want empty object", v)
		}
	})
	t.Run("InArray", func(t *testing.T) {
		src := &tokenSource{toks: []fakeToken{
			{tok: jnode.LSquare},
			{tok: jnode.RBrace},
			{tok: jnode.RSquare},
		}}
		v, err := build.Builder{}.Build(src)
		if err != nil {
			t.Fatalf("Build: unexpected error: %v", err)
		}
		if js := v.JSON(); js != `[{}]` {
			t.Errorf("Build: got %#q, want [{}]", js)
		}
	})
}

func TestHuJSON(t *testing.T) {
	const input = `{
  // A line comment.
  "a": 1,          // Another.
  "b": [2, 3, 4,], /* A block comment. */
  "c": {"d": null,},
}`
	std, err := hujson.Standardize([]byte(input))
	if err != nil {
		t.Fatalf("Standardize: unexpected error: %v", err)
	}
	want, err := build.Builder{}.ParseSingle(bytes.NewReader(std))
	if err != nil {
		t.Fatalf("ParseSingle: unexpected error: %v", err)
	}

	c := jnode.NewCursor(strings.NewReader(input))
	c.AllowComments(true)
	c.AllowTrailingCommas(true)
	got, err := build.Builder{}.Build(c)
	if err != nil {
		t.Fatalf("Build: unexpected error: %v", err)
	}
	if !tree.Equal(got, want) {
		t.Errorf("Build: got %s, want %s", got.JSON(), want.JSON())
	}
}

// A fakeToken is a single token with its content, as delivered by a
// tokenSource.
type fakeToken struct {
	tok   jnode.Token
	text  string
	kind  jnode.NumberKind
	embed any
}

// A tokenSource is a Source that replays a fixed sequence of tokens. It
// stands in for sources that do not read lexical input, which can deliver
// embedded values and number kinds a Cursor never produces.
type tokenSource struct {
	toks []fakeToken
	pos  int
	cur  fakeToken
}

func (s *tokenSource) Next() bool {
	if s.pos < len(s.toks) {
		s.cur = s.toks[s.pos]
		s.pos++
		return true
	}
	s.cur = fakeToken{}
	return false
}

func (s *tokenSource) Err() error                   { return nil }
func (s *tokenSource) Token() jnode.Token           { return s.cur.tok }
func (s *tokenSource) Unescape() string             { return s.cur.text }
func (s *tokenSource) NumberKind() jnode.NumberKind { return s.cur.kind }
func (s *tokenSource) IsNaN() bool                  { return s.cur.tok == jnode.NonFinite }
func (s *tokenSource) Embed() any                   { return s.cur.embed }
func (s *tokenSource) Location() jnode.Location     { return jnode.Location{} }

func (s *tokenSource) Int64() int64 {
	v, err := strconv.ParseInt(s.cur.text, 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *tokenSource) BigInt() *big.Int {
	z, ok := new(big.Int).SetString(s.cur.text, 10)
	if !ok {
		panic("invalid integer text")
	}
	return z
}

func (s *tokenSource) Float64() float64 {
	v, err := strconv.ParseFloat(s.cur.text, 64)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *tokenSource) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(s.cur.text)
	if err != nil {
		panic(err)
	}
	return d
}
