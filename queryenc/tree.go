package queryenc

import "slices"

// ValueTree is the intermediate form built while encoding: an ordered
// sequence of scalar Fragments plus named child trees. A node carries both
// values and children only transiently, during array-encoding collapse.
type ValueTree struct {
	values   []Fragment
	children map[string]*ValueTree
}

// NewValueTree creates an empty node.
func NewValueTree() *ValueTree {
	return &ValueTree{}
}

// Append adds a scalar fragment to this node.
func (t *ValueTree) Append(f Fragment) {
	t.values = append(t.values, f)
}

// Child returns the child tree for key, creating it if absent.
func (t *ValueTree) Child(key string) *ValueTree {
	if t.children == nil {
		t.children = make(map[string]*ValueTree)
	}
	c, ok := t.children[key]
	if !ok {
		c = NewValueTree()
		t.children[key] = c
	}
	return c
}

// adopt attaches a detached subtree as the child for key, replacing any
// existing child. Used when array collapse grafts element trees in place.
func (t *ValueTree) adopt(key string, child *ValueTree) {
	if t.children == nil {
		t.children = make(map[string]*ValueTree)
	}
	t.children[key] = child
}

// IsEmpty reports whether the node holds no fragments and no children.
// Empty nodes serialize to nothing.
func (t *ValueTree) IsEmpty() bool {
	return len(t.values) == 0 && len(t.children) == 0
}

// sortedChildKeys returns child keys in lexicographic order. Serialization
// enumerates children in this order so output is deterministic; callers must
// not depend on any particular cross-implementation ordering.
func (t *ValueTree) sortedChildKeys() []string {
	keys := make([]string, 0, len(t.children))
	for k := range t.children {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
