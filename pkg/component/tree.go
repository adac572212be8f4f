package component

import (
	"slices"

	"github.com/matzehuels/frameloom/pkg/errors"
)

// AddChild appends child to the node's child list and takes ownership.
//
// Ownership is exclusive: a child belongs to exactly one parent. Attaching a
// node that already has a parent, attaching a canvas root (placement fields
// are only meaningful on parentless nodes), or attaching the node to itself
// or to one of its own ancestors (which would create a cycle) is rejected
// with INVALID_OPERATION.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New(errors.ErrCodeInvalidInput, "child must not be nil")
	}
	if child == n {
		return errors.New(errors.ErrCodeInvalidOperation, "cannot attach node %q to itself", n.ID)
	}
	if child.parent != nil {
		return errors.New(errors.ErrCodeInvalidOperation, "node %q already has a parent", child.ID)
	}
	if child.IsCanvasRoot() {
		return errors.New(errors.ErrCodeInvalidOperation, "node %q is a canvas root and cannot be a child", child.ID)
	}
	// Ancestor check: re-parenting a node into its own descendant would
	// create a cycle.
	for anc := n.parent; anc != nil; anc = anc.parent {
		if anc == child {
			return errors.New(errors.ErrCodeInvalidOperation, "node %q is an ancestor of %q", child.ID, n.ID)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches the direct child with the given id and returns it.
// Returns NODE_NOT_FOUND if no direct child has that id.
func (n *Node) RemoveChild(id string) (*Node, error) {
	idx := slices.IndexFunc(n.children, func(c *Node) bool { return c.ID == id })
	if idx < 0 {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node %q has no child %q", n.ID, id)
	}
	child := n.children[idx]
	child.parent = nil
	n.children = slices.Delete(n.children, idx, idx+1)
	return child, nil
}

// Descendants returns the subtree rooted at the node in pre-order,
// including the node itself.
func (n *Node) Descendants() []*Node {
	out := make([]*Node, 0, 1+len(n.children))
	n.walk(&out)
	return out
}

func (n *Node) walk(out *[]*Node) {
	*out = append(*out, n)
	for _, c := range n.children {
		c.walk(out)
	}
}

// FindByID searches the subtree in pre-order and returns the first node with
// the given id. Ids are expected to be unique, so the first match is the only
// match. Returns nil if not found.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Contains reports whether the subtree rooted at the node includes a node
// with the given id.
func (n *Node) Contains(id string) bool {
	return n.FindByID(id) != nil
}
