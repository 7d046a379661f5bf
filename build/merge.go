// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package build

import (
	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/tree"
)

// Update applies the object described by the tokens of src to node, and
// returns the updated value. Members of node are updated in place:
//
//   - A member absent from node is added.
//   - An object member whose incoming value is also an object is merged
//     recursively by the same rules.
//   - An array member whose incoming value is also an array has the incoming
//     elements appended to it.
//   - Otherwise, the incoming value replaces the existing one.
//
// The duplicate-key policy of the builder does not apply to updates.
// If the input does not describe an object at all, the input value is built
// fresh and returned, and node is not modified; otherwise the returned value
// is node itself.
func (b Builder) Update(src Source, node *tree.Object) (tree.Value, error) {
	tok, err := b.advance(src)
	if err != nil {
		return nil, err
	}
	return b.UpdateAt(src, tok, node)
}

// UpdateAt applies an update to node as Update does, where the first token
// of the input, tok, has already been read. An opening brace begins a
// complete update, and a member name resumes an update whose opening brace
// was consumed elsewhere.
func (b Builder) UpdateAt(src Source, tok jnode.Token, node *tree.Object) (tree.Value, error) {
	var key string
	switch tok {
	case jnode.LBrace:
		k, ok, err := b.nextKey(src)
		if err != nil {
			return nil, err
		} else if !ok {
			return node, nil // empty update
		}
		key = k
	case jnode.Name:
		key = src.Unescape()
	default:
		// The input does not describe an object; build its value fresh.
		return b.BuildAt(src, tok)
	}
	for {
		tok, err := b.advance(src)
		if err != nil {
			return nil, err
		}
		if err := b.mergeMember(src, tok, node, key); err != nil {
			return nil, err
		}
		next, ok, err := b.nextKey(src)
		if err != nil {
			return nil, err
		} else if !ok {
			return node, nil
		}
		key = next
	}
}

// mergeMember applies the incoming value for key, whose first token is tok,
// to the object node.
func (b Builder) mergeMember(src Source, tok jnode.Token, node *tree.Object, key string) error {
	if old := node.Find(key); old != nil {
		switch sub := old.Value.(type) {
		case *tree.Object:
			if tok == jnode.LBrace {
				nv, err := b.UpdateAt(src, tok, sub)
				if err != nil {
					return err
				}
				if nv != old.Value {
					node.Set(key, nv)
				}
				return nil
			}
		case *tree.Array:
			if tok == jnode.LSquare {
				// Append the incoming elements to the existing array.
				_, err := b.buildContainer(src, sub)
				return err
			}
		}
	}

	// Replacement does not engage the duplicate-key policy.
	var v tree.Value
	var err error
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
	node.Set(key, v)
	return nil
}
