package recoder

// Cursor tracks a position in a caller-supplied input buffer across
// conversion calls. A session consumes bytes through the cursor and
// advances it in place, so after a buffer_too_small failure the caller can
// retry with more output space without re-feeding bytes that were already
// consumed. The cursor borrows the buffer; the caller must not mutate it
// while a session reads from it.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor wraps buf in a cursor positioned at its start.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Remaining reports how many input bytes have not been consumed yet.
func (c *Cursor) Remaining() int {
	if c == nil {
		return 0
	}
	return len(c.buf) - c.off
}

// Offset reports how many input bytes have been consumed so far.
func (c *Cursor) Offset() int {
	if c == nil {
		return 0
	}
	return c.off
}

// Bytes returns the unconsumed tail of the input.
func (c *Cursor) Bytes() []byte {
	if c == nil {
		return nil
	}
	return c.buf[c.off:]
}

func (c *Cursor) rest() []byte {
	return c.buf[c.off:]
}

func (c *Cursor) advance(n int) {
	c.off += n
}
