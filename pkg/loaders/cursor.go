package loaders

import (
	"encoding/binary"
	"math"
)

// Cursor reads little-endian fields from an immutable byte slice, advancing
// past each field it consumes. Every read is length checked.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the position of the next unread byte
func (c *Cursor) Offset() int {
	return c.pos
}

// Remaining returns the number of unread bytes
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// take consumes n bytes or fails without moving the cursor
func (c *Cursor) take(n int, field string) ([]byte, error) {
	if c.Remaining() < n {
		return nil, &FormatError{Field: field, Offset: c.pos, Err: ErrTruncated}
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Byte consumes a single byte
func (c *Cursor) Byte(field string) (byte, error) {
	b, err := c.take(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint32 consumes a little-endian u32
func (c *Cursor) Uint32(field string) (uint32, error) {
	b, err := c.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Float32 consumes a little-endian IEEE-754 f32
func (c *Cursor) Float32(field string) (float32, error) {
	bits, err := c.Uint32(field)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Float32x3 consumes three consecutive f32 values
func (c *Cursor) Float32x3(field string) ([3]float32, error) {
	var out [3]float32
	b, err := c.take(12, field)
	if err != nil {
		return out, err
	}
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out, nil
}
