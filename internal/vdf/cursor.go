package vdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Stream is what the decoder needs from its input: sequential reads,
// absolute seeks and a known total length. *bytes.Reader and
// *io.SectionReader both satisfy it.
type Stream interface {
	io.Reader
	io.Seeker
	Size() int64
}

const bufferSize = 64 * 1024

// Cursor is a buffered, position-tracking reader over a Stream. Every
// read is checked against the declared stream length: running past it
// is ErrTruncated, while a read that fails before it is an *IOError.
type Cursor struct {
	s    Stream
	br   *bufio.Reader
	pos  int64
	size int64
}

// NewCursor creates a cursor positioned at the start of s
func NewCursor(s Stream) (*Cursor, error) {
	c := &Cursor{
		s:    s,
		br:   bufio.NewReaderSize(s, bufferSize),
		size: s.Size(),
	}
	if err := c.Seek(0); err != nil {
		return nil, err
	}
	return c, nil
}

// Pos returns the absolute offset of the next byte to be read
func (c *Cursor) Pos() int64 {
	return c.pos
}

// Size returns the declared stream length
func (c *Cursor) Size() int64 {
	return c.size
}

// Remaining returns the number of bytes left before the declared end
func (c *Cursor) Remaining() int64 {
	return c.size - c.pos
}

// AtEnd reports whether the cursor has reached the declared end
func (c *Cursor) AtEnd() bool {
	return c.pos >= c.size
}

// Seek moves the cursor to an absolute offset. Offsets past the end are
// clamped to the end.
func (c *Cursor) Seek(offset int64) error {
	if offset < 0 {
		return &IOError{Op: "seek", Offset: offset, Err: errors.New("negative offset")}
	}
	if offset > c.size {
		offset = c.size
	}
	if _, err := c.s.Seek(offset, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Offset: offset, Err: err}
	}
	c.br.Reset(c.s)
	c.pos = offset
	return nil
}

// ReadByte reads one byte
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= c.size {
		return 0, truncated(c.pos, "reading byte")
	}
	b, err := c.br.ReadByte()
	if err != nil {
		return 0, c.ioError("read", err)
	}
	c.pos++
	return b, nil
}

// ReadN reads exactly n bytes
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if int64(n) > c.Remaining() {
		return nil, truncated(c.pos, fmt.Sprintf("need %d bytes, %d left", n, c.Remaining()))
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.br, buf); err != nil {
		return nil, c.ioError("read", err)
	}
	c.pos += int64(n)
	return buf, nil
}

// Skip advances past n bytes
func (c *Cursor) Skip(n int) error {
	if int64(n) > c.Remaining() {
		return truncated(c.pos, fmt.Sprintf("skip %d bytes, %d left", n, c.Remaining()))
	}
	discarded, err := c.br.Discard(n)
	c.pos += int64(discarded)
	if err != nil {
		return c.ioError("skip", err)
	}
	return nil
}

// ReadCString reads a NUL-terminated byte string and drops the terminator
func (c *Cursor) ReadCString() (string, error) {
	raw, err := c.readDelimited(1)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// readDelimited reads code units of the given width until an all-zero
// unit. The terminator is consumed and not returned.
func (c *Cursor) readDelimited(unit int) ([]byte, error) {
	var out []byte
	if unit == 1 {
		for {
			b, err := c.ReadByte()
			if err != nil {
				return nil, err
			}
			if b == 0 {
				return out, nil
			}
			out = append(out, b)
		}
	}
	for {
		u, err := c.ReadN(unit)
		if err != nil {
			return nil, err
		}
		if isZero(u) {
			return out, nil
		}
		out = append(out, u...)
	}
}

func (c *Cursor) ioError(op string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &IOError{Op: op, Offset: c.pos, Err: err}
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
