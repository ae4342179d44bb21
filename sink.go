package fmtx

import "io"

// Sink is the destination every writer appends to. Implementations accept
// all writes; a Sink that cannot store more bytes drops them but still
// advances Size.
type Sink interface {
	Append(p []byte)
	AppendString(s string)
	AppendByte(c byte)
	// Size reports the logical number of bytes written so far.
	Size() int
}

// Buffer is a growable Sink backed by a contiguous slice. Capacity doubles
// when exhausted, so appends are amortized O(1). Slices returned by Bytes are
// invalidated by the next write that grows the buffer.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer with room for capacity bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 64
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Grow ensures room for at least n more bytes.
func (b *Buffer) Grow(n int) {
	if len(b.buf)+n <= cap(b.buf) {
		return
	}
	newCap := cap(b.buf) * 2
	if newCap < len(b.buf)+n {
		newCap = len(b.buf) + n
	}
	nb := make([]byte, len(b.buf), newCap)
	copy(nb, b.buf)
	b.buf = nb
}

// Append appends p.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.buf = append(b.buf, p...)
}

// AppendString appends s.
func (b *Buffer) AppendString(s string) {
	b.Grow(len(s))
	b.buf = append(b.buf, s...)
}

// AppendByte appends c.
func (b *Buffer) AppendByte(c byte) {
	b.Grow(1)
	b.buf = append(b.buf, c)
}

// Write implements io.Writer; it never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Size returns the number of bytes written.
func (b *Buffer) Size() int { return len(b.buf) }

// Len is an alias of Size.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes returns the buffered content.
func (b *Buffer) Bytes() []byte { return b.buf }

// String returns the buffered content as a string.
func (b *Buffer) String() string { return string(b.buf) }

// Reset clears the content and keeps the memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// FixedBuffer writes into a caller-provided slice and never grows. Bytes past
// its capacity are discarded, but Size keeps counting them so callers can
// learn how large the full output would have been.
type FixedBuffer struct {
	buf []byte
	n   int
}

// NewFixedBuffer returns a FixedBuffer writing into dst[:cap(dst)].
func NewFixedBuffer(dst []byte) *FixedBuffer {
	return &FixedBuffer{buf: dst[:0:cap(dst)]}
}

// Append stores as much of p as fits.
func (f *FixedBuffer) Append(p []byte) {
	f.n += len(p)
	if room := cap(f.buf) - len(f.buf); room < len(p) {
		p = p[:room]
	}
	f.buf = append(f.buf, p...)
}

// AppendString stores as much of s as fits.
func (f *FixedBuffer) AppendString(s string) {
	f.n += len(s)
	if room := cap(f.buf) - len(f.buf); room < len(s) {
		s = s[:room]
	}
	f.buf = append(f.buf, s...)
}

// AppendByte stores c if there is room.
func (f *FixedBuffer) AppendByte(c byte) {
	f.n++
	if len(f.buf) < cap(f.buf) {
		f.buf = append(f.buf, c)
	}
}

// Size returns the number of bytes written, stored or not.
func (f *FixedBuffer) Size() int { return f.n }

// Bytes returns the physically stored part of the output.
func (f *FixedBuffer) Bytes() []byte { return f.buf }

// Truncated reports whether any byte was dropped.
func (f *FixedBuffer) Truncated() bool { return f.n > len(f.buf) }

// Reset forgets all written bytes.
func (f *FixedBuffer) Reset() {
	f.buf = f.buf[:0]
	f.n = 0
}

const chunkSize = 256

// ChunkSink collects output in fixed chunks and hands each full chunk to a
// callback. The first callback error is kept; later writes are counted but
// not delivered.
type ChunkSink struct {
	fn    func([]byte) error
	chunk [chunkSize]byte
	used  int
	n     int
	err   error
}

// NewChunkSink returns a ChunkSink delivering chunks to fn.
func NewChunkSink(fn func([]byte) error) *ChunkSink {
	return &ChunkSink{fn: fn}
}

// WriterSink returns a ChunkSink writing to w.
func WriterSink(w io.Writer) *ChunkSink {
	return NewChunkSink(func(p []byte) error {
		_, err := w.Write(p)
		return err
	})
}

// Append buffers p, emitting every chunk it fills.
func (c *ChunkSink) Append(p []byte) {
	c.n += len(p)
	for len(p) > 0 {
		k := copy(c.chunk[c.used:], p)
		c.used += k
		p = p[k:]
		if c.used == chunkSize {
			c.emit()
		}
	}
}

// AppendString buffers s, emitting every chunk it fills.
func (c *ChunkSink) AppendString(s string) {
	c.n += len(s)
	for len(s) > 0 {
		k := copy(c.chunk[c.used:], s)
		c.used += k
		s = s[k:]
		if c.used == chunkSize {
			c.emit()
		}
	}
}

// AppendByte buffers b.
func (c *ChunkSink) AppendByte(b byte) {
	c.n++
	c.chunk[c.used] = b
	c.used++
	if c.used == chunkSize {
		c.emit()
	}
}

// Size returns the number of bytes written, delivered or not.
func (c *ChunkSink) Size() int { return c.n }

func (c *ChunkSink) emit() {
	if c.used == 0 {
		return
	}
	if c.err == nil {
		c.err = c.fn(c.chunk[:c.used])
	}
	c.used = 0
}

// Flush delivers any pending bytes and returns the first callback error.
func (c *ChunkSink) Flush() error {
	c.emit()
	return c.err
}

// Err returns the first callback error seen so far.
func (c *ChunkSink) Err() error { return c.err }
