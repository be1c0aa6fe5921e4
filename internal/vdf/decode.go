package vdf

import (
	"encoding/binary"
	"fmt"
)

// MaxDepth bounds object nesting so hostile input cannot exhaust the stack
const MaxDepth = 64

// Decoder turns the tagged byte stream under a Cursor into Nodes.
//
// The format carries no lengths: structure is discovered from tags and
// from the end-of-object tag alone. A single bad tag therefore poisons
// the rest of the entry, and callers are expected to drop the entry and
// rescan rather than continue.
type Decoder struct {
	c        *Cursor
	maxDepth int
}

// NewDecoder creates a decoder reading from c
func NewDecoder(c *Cursor) *Decoder {
	return &Decoder{c: c, maxDepth: MaxDepth}
}

// Decode reads one complete tagged value (tag, key, payload) and returns
// it with the cursor offset just past its last byte.
func (d *Decoder) Decode() (*Node, int64, error) {
	start := d.c.Pos()
	b, err := d.c.ReadByte()
	if err != nil {
		return nil, d.c.Pos(), err
	}
	tag := Tag(b)
	if tag == TagEnd {
		return nil, d.c.Pos(), malformed(start, "end tag outside an object")
	}
	n, err := d.decodeTagged(tag, start, 0)
	return n, d.c.Pos(), err
}

// DecodeRoot reads the body of an object whose tag and key have already
// been consumed, typically as part of a signature match. anchor becomes
// the root node's name.
func (d *Decoder) DecodeRoot(anchor string) (*Node, int64, error) {
	n, err := d.decodeObject(anchor, 1)
	return n, d.c.Pos(), err
}

// decodeTagged reads the key and payload for a tag that has been read
// from offset start.
func (d *Decoder) decodeTagged(tag Tag, start int64, depth int) (*Node, error) {
	if tag == TagObject {
		name, err := d.c.ReadCString()
		if err != nil {
			return nil, err
		}
		return d.decodeObject(name, depth+1)
	}

	f, ok := leafFormats[tag]
	if !ok {
		return nil, malformed(start, fmt.Sprintf("unknown tag 0x%02x", byte(tag)))
	}
	name, err := d.c.ReadCString()
	if err != nil {
		return nil, err
	}
	raw, err := d.readPayload(f)
	if err != nil {
		return nil, err
	}

	switch f.kind {
	case KindInt:
		return NewInt(name, int32(binary.LittleEndian.Uint32(raw))), nil
	case KindString:
		return NewString(name, string(raw)), nil
	case KindOther:
		return NewOther(name, tag, raw), nil
	case KindObject:
		return nil, malformed(start, "object tag in leaf table")
	default:
		return nil, malformed(start, fmt.Sprintf("leaf tag %s has kind %s", tag, f.kind))
	}
}

// decodeObject reads children until the end tag, which is consumed
func (d *Decoder) decodeObject(name string, depth int) (*Node, error) {
	if depth > d.maxDepth {
		return nil, malformed(d.c.Pos(), fmt.Sprintf("nesting deeper than %d", d.maxDepth))
	}
	obj := NewObject(name)
	for {
		start := d.c.Pos()
		b, err := d.c.ReadByte()
		if err != nil {
			return nil, err
		}
		tag := Tag(b)
		if tag == TagEnd {
			return obj, nil
		}
		child, err := d.decodeTagged(tag, start, depth)
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, child)
	}
}

func (d *Decoder) readPayload(f leafFormat) ([]byte, error) {
	if f.size > 0 {
		return d.c.ReadN(f.size)
	}
	return d.c.readDelimited(f.unit)
}
