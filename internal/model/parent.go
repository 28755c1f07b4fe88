package model

import (
	"fmt"

	"github.com/google/uuid"
)

// RootParentValue is the wire representation of "no parent".
const RootParentValue = "0"

// ParentRef is a tagged reference to a node's parent: either the root of
// the hierarchy or the id of an existing folder node. The zero value is
// the root reference.
type ParentRef struct {
	id     uuid.UUID
	isNode bool
}

// RootParent returns the reference to the top of the hierarchy.
func RootParent() ParentRef {
	return ParentRef{}
}

// NodeParent returns a reference to the node with the given id.
func NodeParent(id uuid.UUID) ParentRef {
	return ParentRef{id: id, isNode: true}
}

// IsRoot reports whether the reference points at the hierarchy root.
func (p ParentRef) IsRoot() bool {
	return !p.isNode
}

// NodeID returns the referenced node id and whether the reference is a
// node reference at all.
func (p ParentRef) NodeID() (uuid.UUID, bool) {
	return p.id, p.isNode
}

// String renders the reference in its wire form: "0" for root, the node
// id otherwise.
func (p ParentRef) String() string {
	if !p.isNode {
		return RootParentValue
	}
	return p.id.String()
}

// ParseParentRef converts a wire value into a ParentRef. An empty string
// and "0" both mean root.
func ParseParentRef(s string) (ParentRef, error) {
	if s == "" || s == RootParentValue {
		return RootParent(), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return ParentRef{}, fmt.Errorf("failed to parse parent id: %w", err)
	}
	return NodeParent(id), nil
}
