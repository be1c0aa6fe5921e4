package vdf

import (
	"fmt"
	"strconv"
)

// Kind is the variant of a decoded node
type Kind int

const (
	KindObject Kind = iota // ordered collection of named children
	KindInt                // 32-bit signed integer leaf
	KindString             // text leaf
	KindOther              // any other leaf tag, payload kept raw
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one decoded value of the binary key/value tree.
//
// Kind decides which fields carry data: Children for objects, Int for
// integers, Str for strings, Tag and Raw for every other leaf. Build
// nodes with the New* constructors so that invariant holds.
type Node struct {
	Kind     Kind
	Name     string
	Int      int32
	Str      string
	Tag      Tag
	Raw      []byte
	Children []*Node
}

// NewObject creates an object node with the given children
func NewObject(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: KindObject, Name: name, Children: children}
}

// NewInt creates an integer leaf
func NewInt(name string, v int32) *Node {
	return &Node{Kind: KindInt, Name: name, Tag: TagInt, Int: v}
}

// NewString creates a text leaf
func NewString(name, v string) *Node {
	return &Node{Kind: KindString, Name: name, Tag: TagString, Str: v}
}

// NewOther creates a leaf for a tag that is neither int nor string.
// The payload is stored as read from the stream.
func NewOther(name string, tag Tag, raw []byte) *Node {
	return &Node{Kind: KindOther, Name: name, Tag: tag, Raw: raw}
}

// Child returns the first direct child with the given name, or nil
func (n *Node) Child(name string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NodeAt walks path from n, matching child names case-sensitively and
// taking the first match at each level. It returns nil when any step is
// missing or hits a leaf. With create set, missing steps are appended as
// empty objects instead, so only a leaf in the way yields nil.
func (n *Node) NodeAt(path []string, create bool) *Node {
	cur := n
	for _, name := range path {
		if cur == nil || cur.Kind != KindObject {
			return nil
		}
		next := cur.Child(name)
		if next == nil {
			if !create {
				return nil
			}
			next = NewObject(name)
			cur.Children = append(cur.Children, next)
		}
		cur = next
	}
	return cur
}

// Lookup is the read-only form of NodeAt
func (n *Node) Lookup(path ...string) *Node {
	return n.NodeAt(path, false)
}

// Text returns the textual representation of a node: the string itself,
// the decimal integer, the tag-specific rendering of other leaves, or an
// empty string for objects.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindString:
		return n.Str
	case KindInt:
		return strconv.FormatInt(int64(n.Int), 10)
	case KindOther:
		if f, ok := leafFormats[n.Tag]; ok {
			return f.format(n.Raw)
		}
		return fmt.Sprintf("%x", n.Raw)
	case KindObject:
		return ""
	default:
		return ""
	}
}

// Walk visits n and its descendants depth-first in encounter order.
// depth is 0 for n itself.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	if n.Kind == KindObject {
		for _, c := range n.Children {
			c.walk(fn, depth+1)
		}
	}
}
