// Package vdftest builds binary key/value fixtures for tests.
// It is not a general-purpose writer.
package vdftest

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Section is the byte that precedes the "common" object in an appinfo entry
const Section = 0x02

// Builder appends encoded values to a buffer
type Builder struct {
	buf bytes.Buffer
}

// New creates an empty builder
func New() *Builder {
	return &Builder{}
}

// Bytes returns the encoded bytes
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Raw appends bytes verbatim
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf.Write(p)
	return b
}

// Object opens an object; close it with End
func (b *Builder) Object(name string) *Builder {
	b.buf.WriteByte(0x00)
	b.key(name)
	return b
}

// End closes the innermost object
func (b *Builder) End() *Builder {
	b.buf.WriteByte(0x08)
	return b
}

// String appends a text leaf
func (b *Builder) String(name, v string) *Builder {
	b.buf.WriteByte(0x01)
	b.key(name)
	b.buf.WriteString(v)
	b.buf.WriteByte(0)
	return b
}

// Int appends a 32-bit integer leaf
func (b *Builder) Int(name string, v int32) *Builder {
	b.buf.WriteByte(0x02)
	b.key(name)
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

// Float32 appends a float leaf
func (b *Builder) Float32(name string, v float32) *Builder {
	b.buf.WriteByte(0x03)
	b.key(name)
	_ = binary.Write(&b.buf, binary.LittleEndian, math.Float32bits(v))
	return b
}

// WideString appends a UTF-16LE text leaf
func (b *Builder) WideString(name, v string) *Builder {
	b.buf.WriteByte(0x05)
	b.key(name)
	for _, u := range utf16.Encode([]rune(v)) {
		_ = binary.Write(&b.buf, binary.LittleEndian, u)
	}
	b.buf.Write([]byte{0, 0})
	return b
}

// Uint64 appends an unsigned 64-bit leaf
func (b *Builder) Uint64(name string, v uint64) *Builder {
	b.buf.WriteByte(0x07)
	b.key(name)
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

// Int64 appends a signed 64-bit leaf
func (b *Builder) Int64(name string, v int64) *Builder {
	b.buf.WriteByte(0x0A)
	b.key(name)
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

// Common writes a complete appinfo "common" section: the entry
// signature, whatever fields adds, and the closing end tag.
func (b *Builder) Common(fields func(*Builder)) *Builder {
	b.buf.WriteByte(Section)
	b.Object("common")
	if fields != nil {
		fields(b)
	}
	return b.End()
}

// App writes a common section with the usual fields. Empty strings are
// left out.
func (b *Builder) App(id int32, name, typ, oslist string) *Builder {
	return b.Common(func(c *Builder) {
		c.Int("gameid", id)
		if name != "" {
			c.String("name", name)
		}
		if typ != "" {
			c.String("type", typ)
		}
		if oslist != "" {
			c.String("oslist", oslist)
		}
	})
}

func (b *Builder) key(name string) {
	b.buf.WriteString(name)
	b.buf.WriteByte(0)
}
