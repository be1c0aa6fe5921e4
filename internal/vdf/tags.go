package vdf

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
)

// Tag is the type byte that precedes every serialized value
type Tag byte

const (
	TagObject     Tag = 0x00
	TagString     Tag = 0x01
	TagInt        Tag = 0x02
	TagFloat32    Tag = 0x03
	TagPointer    Tag = 0x04
	TagWideString Tag = 0x05
	TagColor      Tag = 0x06
	TagUint64     Tag = 0x07
	TagEnd        Tag = 0x08
	TagInt64      Tag = 0x0A
)

func (t Tag) String() string {
	switch t {
	case TagObject:
		return "object"
	case TagString:
		return "string"
	case TagInt:
		return "int32"
	case TagFloat32:
		return "float32"
	case TagPointer:
		return "pointer"
	case TagWideString:
		return "wstring"
	case TagColor:
		return "color"
	case TagUint64:
		return "uint64"
	case TagEnd:
		return "end"
	case TagInt64:
		return "int64"
	default:
		return fmt.Sprintf("tag(0x%02x)", byte(t))
	}
}

// leafFormat describes how a leaf payload is laid out and rendered.
// A fixed payload has size > 0. Otherwise the payload runs until a zero
// code unit of width unit; the terminator is consumed but not kept.
type leafFormat struct {
	kind   Kind
	size   int
	unit   int
	format func(raw []byte) string
}

// leafFormats lists every leaf tag the decoder understands. Adding a tag
// only needs a row here.
var leafFormats = map[Tag]leafFormat{
	TagString: {kind: KindString, unit: 1, format: func(raw []byte) string {
		return string(raw)
	}},
	TagInt: {kind: KindInt, size: 4, format: func(raw []byte) string {
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(raw))), 10)
	}},
	TagFloat32: {kind: KindOther, size: 4, format: func(raw []byte) string {
		f := math.Float32frombits(binary.LittleEndian.Uint32(raw))
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}},
	TagPointer: {kind: KindOther, size: 4, format: formatUint32},
	TagColor:   {kind: KindOther, size: 4, format: formatUint32},
	TagWideString: {kind: KindOther, unit: 2, format: func(raw []byte) string {
		units := make([]uint16, len(raw)/2)
		for i := range units {
			units[i] = binary.LittleEndian.Uint16(raw[i*2:])
		}
		return string(utf16.Decode(units))
	}},
	TagUint64: {kind: KindOther, size: 8, format: func(raw []byte) string {
		return strconv.FormatUint(binary.LittleEndian.Uint64(raw), 10)
	}},
	TagInt64: {kind: KindOther, size: 8, format: func(raw []byte) string {
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(raw)), 10)
	}},
}

func formatUint32(raw []byte) string {
	return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(raw)), 10)
}
