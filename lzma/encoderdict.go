// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// EncoderDataBuffer is the encoder-side dictionary: a window of already
// consumed history plus a lookahead of input bytes not yet turned into
// packets. head marks the boundary between the two; bytes at offsets
// [head, buf.top) are lookahead, bytes at [buf.bottom, head) are history
// available to the match finder.
type EncoderDataBuffer struct {
	buf      cyclicBuffer
	head     int64
	capacity int
}

// newEncoderDataBuffer creates an encoder dictionary with dictCap bytes of
// history and room for lookaheadCap bytes of unconsumed input.
func newEncoderDataBuffer(dictCap, lookaheadCap int) *EncoderDataBuffer {
	if dictCap < 1 {
		panic(rangeError{"dictCap", dictCap})
	}
	if lookaheadCap < maxLength {
		lookaheadCap = maxLength
	}
	return &EncoderDataBuffer{
		buf:      *newCyclicBuffer(dictCap + lookaheadCap),
		capacity: dictCap,
	}
}

// Write appends input bytes to the lookahead region. It returns
// ErrNoSpace, with a short count, if the buffer lacks room; the caller
// must Advance to make room before writing more.
func (d *EncoderDataBuffer) Write(p []byte) (n int, err error) {
	avail := d.Available()
	if len(p) > avail {
		p = p[:avail]
		err = ErrNoSpace
	}
	n, _ = d.buf.write(p)
	return n, err
}

// Available returns how many more lookahead bytes can be written without
// overwriting any of the up to dictCap history bytes behind the head.
func (d *EncoderDataBuffer) Available() int {
	return d.buf.capacity() - d.Buffered() - d.DictLen()
}

// Buffered returns the number of unconsumed lookahead bytes.
func (d *EncoderDataBuffer) Buffered() int {
	return int(d.buf.top - d.head)
}

// Pos returns the current compressed position (the dictionary head).
func (d *EncoderDataBuffer) Pos() int64 { return d.head }

// DictLen returns how many history bytes are available for matching.
func (d *EncoderDataBuffer) DictLen() int {
	if d.head < int64(d.capacity) {
		return int(d.head)
	}
	return d.capacity
}

// ByteAt returns the history byte dist positions behind the head.
func (d *EncoderDataBuffer) ByteAt(dist uint32) (byte, error) {
	off := d.head - int64(dist)
	if off < d.buf.bottom || off >= d.head {
		return 0, ErrInvalidDistance
	}
	return d.buf.data[d.buf.index(off)], nil
}

// bufferedAt returns how many buffered bytes (history plus lookahead)
// remain from pos onward, used by the match finder when it searches or
// inserts a position other than the current head.
func (d *EncoderDataBuffer) bufferedAt(pos int64) int {
	return int(d.buf.top - pos)
}

// byteAtRelative returns the history byte dist positions behind the
// absolute stream position pos, which may itself be anywhere in the
// buffered history or lookahead. Used by the optimal picker to price a
// matched literal or rep match at a position other than the current head.
func (d *EncoderDataBuffer) byteAtRelative(pos int64, dist uint32) (byte, error) {
	off := pos - int64(dist)
	if off < d.buf.bottom || off >= d.buf.top {
		return 0, ErrInvalidDistance
	}
	return d.buf.data[d.buf.index(off)], nil
}

// byteAtPos returns the byte stored at the absolute stream position pos,
// which may be in the lookahead region (pos >= head) as well as history.
// Used by the match finder to hash and compare candidate positions.
func (d *EncoderDataBuffer) byteAtPos(pos int64) byte {
	return d.buf.data[d.buf.index(pos)]
}

// Peek copies up to len(p) unconsumed lookahead bytes, starting at head,
// into p without advancing the head.
func (d *EncoderDataBuffer) Peek(p []byte) int {
	n := d.Buffered()
	if n > len(p) {
		n = len(p)
	}
	lo, hi := d.buf.asSlicesBetween(d.head, d.head+int64(n))
	k := copy(p, lo)
	k += copy(p[k:], hi)
	return k
}

// Advance moves the head forward by n bytes, turning lookahead into
// history; the caller must have already fed those bytes to the match
// finder's insert/skip methods before or while advancing.
func (d *EncoderDataBuffer) Advance(n int) {
	d.head += int64(n)
}

// EqualBytes counts the bytes that match at off1 and off2, up to max,
// delegating to the underlying cyclic buffer.
func (d *EncoderDataBuffer) EqualBytes(off1, off2 int64, max int) int {
	return d.buf.equalBytes(off1, off2, max)
}

// Reset clears the dictionary back to an empty state at position zero.
func (d *EncoderDataBuffer) Reset() {
	d.buf.reset()
	d.head = 0
}
