// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package build

import (
	"fmt"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/tree"
)

// An UnexpectedTokenError reports that a token source delivered a token that
// cannot occur at the current position of a value, or that the source ended
// before the value was complete.
type UnexpectedTokenError struct {
	Token    jnode.Token    // the unwanted token (Invalid at end of input)
	Location jnode.Location // the position of the token in the input
	Message  string         // a human-readable description of the problem
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// A DuplicateKeyError reports that a member key occurred more than once in
// the same object, and the builder is configured to reject duplicates.
type DuplicateKeyError struct {
	Key    string       // the duplicated key
	Object *tree.Object // the object containing the key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in object", e.Key)
}

// tokenName renders tok for use in a diagnostic message.
func tokenName(tok jnode.Token) string {
	if tok == jnode.Invalid {
		return "end of input"
	}
	return tok.String()
}
