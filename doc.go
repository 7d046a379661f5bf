// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jnode implements a JSON scanner and token cursor.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a
// scanner from an io.Reader and call its Next method to iterate over the
// stream. Next advances to the next input token and reports whether one is
// available:
//
//	s := jnode.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Once the input is exhausted, Next returns false. Err reports the error
// that ended the scan, or nil at a clean end of input:
//
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// # Cursors
//
// The Cursor type implements a pull parser for JSON. A cursor reads lexical
// tokens from a scanner and reports the logical structure of the input as a
// flat token sequence, verifying along the way that the input is
// well-formed. In case of error, iteration is terminated and an error of
// concrete type *jnode.SyntaxError is reported by Err.
//
//	c := jnode.NewCursor(input)
//	for c.Next() {
//	   log.Printf("Next token: %v", c.Token())
//	}
//	if c.Err() != nil {
//	   log.Fatalf("Parse failed: %v", c.Err())
//	}
//
// The tokens reported by a cursor correspond to the syntax of JSON values:
//
//	JSON type  | Tokens                    | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | LBrace, RBrace            | { ... }
//	array      | LSquare, RSquare          | [ ... ]
//	member key | Name                      | "key":
//	value      | Integer, Number, String,  | scalar values
//	           | True, False, Null         |
//
// Commas and colons are consumed by the cursor and not reported. The cursor
// guarantees that container tokens are correctly paired and that member
// names are followed by values, so a consumer can reconstruct the tree
// structure from the token sequence alone without further validation.
//
// The text and location of the current token are available from the Text and
// Location methods, and the decoded values of scalars from Unescape, Int64,
// BigInt, Float64, and Decimal. For numbers, NumberKind reports the
// narrowest representation that can hold the current token's value.
//
// # Extensions
//
// Three non-standard extensions of the JSON grammar are available on both
// the Scanner and the Cursor, all disabled by default: AllowComments enables
// C++ style line and block comments, AllowTrailingCommas (Cursor only)
// permits a comma before a closing bracket, and AllowNonFinite adds the
// constants NaN, Infinity, and -Infinity as number tokens.
package jnode
