// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"io"
	"sort"

	"github.com/arduano/lzma/basics/i64"
)

// cyclicBuffer is a ring buffer over the most recent window of the
// uncompressed stream. top tracks the logical byte-stream offset one past
// the last byte written; bottom is the oldest offset still held, derived
// from top so data never needs moving on discard.
//
// It backs both EncoderDataBuffer and DecoderDataBuffer: the encoder
// writes bytes as it consumes input and searches the window for matches,
// the decoder writes bytes as it reconstructs output and copies matches
// out of the window.
type cyclicBuffer struct {
	data   []byte
	bottom int64 // bottom == max(top-len(data), 0)
	top    int64
}

// newCyclicBuffer creates a buffer with room for capacity bytes of
// history. capacity must be positive.
func newCyclicBuffer(capacity int) *cyclicBuffer {
	if capacity <= 0 {
		panic(negError{"capacity", capacity})
	}
	return &cyclicBuffer{data: make([]byte, capacity)}
}

// capacity returns the maximum number of history bytes the buffer holds.
func (b *cyclicBuffer) capacity() int {
	return len(b.data)
}

// len returns the number of history bytes currently held.
func (b *cyclicBuffer) len() int64 {
	return b.top - b.bottom
}

// pos returns the logical stream offset of the next byte to be written.
func (b *cyclicBuffer) pos() int64 {
	return b.top
}

// index converts a byte-stream offset into an index into data.
func (b *cyclicBuffer) index(off int64) int {
	return int(off % int64(len(b.data)))
}

// setTop advances top to off, recomputing bottom. Callers must never move
// top backwards.
func (b *cyclicBuffer) setTop(off int64) {
	if off < b.top {
		panic(negError{"off", off})
	}
	b.top = off
	bottom, overflow := i64.Sub(off, int64(len(b.data)))
	if overflow || bottom < 0 {
		bottom = 0
	}
	b.bottom = bottom
}

// writeByte appends a single byte to the buffer.
func (b *cyclicBuffer) writeByte(c byte) {
	b.data[b.index(b.top)] = c
	off, overflow := i64.Add(b.top, 1)
	if overflow {
		panic(lzmaError{"stream position overflowed int64"})
	}
	b.setTop(off)
}

// write appends p to the buffer, satisfying io.Writer.
func (b *cyclicBuffer) write(p []byte) (n int, err error) {
	for _, c := range p {
		b.writeByte(c)
	}
	return len(p), nil
}

// byteAt returns the byte dist positions behind the current top (dist==1
// is the most recently written byte). It returns ErrInvalidDistance if
// dist reaches outside the buffered history.
func (b *cyclicBuffer) byteAt(dist uint32) (byte, error) {
	off := b.top - int64(dist)
	if off < b.bottom || off >= b.top {
		return 0, ErrInvalidDistance
	}
	return b.data[b.index(off)], nil
}

// asSlicesBetween returns the logical range [off,end) as at most two
// contiguous slices into the underlying array, split at the seam where
// the cyclic buffer wraps; concatenating the two reproduces the range in
// stream order. Both off and end must lie within [bottom,top].
func (b *cyclicBuffer) asSlicesBetween(off, end int64) (lo, hi []byte) {
	if off >= end {
		return nil, nil
	}
	s := b.index(off)
	n := int(end - off)
	if s+n <= len(b.data) {
		return b.data[s : s+n], nil
	}
	return b.data[s:], b.data[:n-(len(b.data)-s)]
}

// asSlicesAfter returns [off,top) the same way asSlicesBetween does.
func (b *cyclicBuffer) asSlicesAfter(off int64) (lo, hi []byte) {
	return b.asSlicesBetween(off, b.top)
}

// asSlices returns the full buffered history [bottom,top) the same way
// asSlicesBetween does.
func (b *cyclicBuffer) asSlices() (lo, hi []byte) {
	return b.asSlicesBetween(b.bottom, b.top)
}

// copySeam copies src into the data array starting at byte offset dst,
// wrapping around the end of the array if src crosses the seam.
func (b *cyclicBuffer) copySeam(dst int, src []byte) {
	n := copy(b.data[dst:], src)
	if n < len(src) {
		copy(b.data, src[n:])
	}
}

// appendPastData bulk-copies the length bytes starting at srcOff, which
// must already be buffered history not overlapping the bytes about to be
// written, onto the head of the buffer. Source and destination may each
// independently straddle the array's wraparound seam; copySeam handles
// both without per-byte stepping.
func (b *cyclicBuffer) appendPastData(srcOff int64, length int) {
	if length == 0 {
		return
	}
	lo, hi := b.asSlicesBetween(srcOff, srcOff+int64(length))
	dst := b.index(b.top)
	b.copySeam(dst, lo)
	b.copySeam((dst+len(lo))%len(b.data), hi)
	b.setTop(b.top + int64(length))
}

// writeMatch appends length bytes copied from dist positions behind the
// current top. When the match is shorter than its distance, source and
// destination never overlap and the whole run is copied in bulk via
// appendPastData; otherwise the copy must proceed one byte at a time,
// since later bytes repeat output this same call is still producing.
func (b *cyclicBuffer) writeMatch(dist uint32, length int) error {
	if dist == 0 {
		return ErrInvalidDistance
	}
	if int64(dist) > b.len() {
		return ErrInvalidDistance
	}
	if length <= 0 {
		return nil
	}
	if int64(length) <= int64(dist) {
		b.appendPastData(b.top-int64(dist), length)
		return nil
	}
	for i := 0; i < length; i++ {
		c, err := b.byteAt(dist)
		if err != nil {
			return err
		}
		b.writeByte(c)
	}
	return nil
}

// writeRangeTo copies the history between off and end (exclusive) to w,
// in at most two Write calls split at the buffer's wraparound seam.
func (b *cyclicBuffer) writeRangeTo(off, end int64, w io.Writer) (int, error) {
	lo, hi := b.asSlicesBetween(off, end)
	n := 0
	for _, p := range [2][]byte{lo, hi} {
		if len(p) == 0 {
			continue
		}
		k, err := w.Write(p)
		n += k
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// alignSliceViews splits the logical ranges backing (l0,l1) and (r0,r1)
// into matching-length 3-tuples [a,b,c] and [x,y,z]: the pair [i] is
// always drawn from a single contiguous chunk on each side, so a caller
// can compare each pair with one bounded loop instead of stepping
// index-by-index across up to two independent wraparound seams. Segments
// beyond however many are needed (fewer than two seams fall inside the
// compared range) come back empty.
func alignSliceViews(l0, l1, r0, r1 []byte) (a, b, c, x, y, z []byte) {
	total := len(l0) + len(l1)
	if rt := len(r0) + len(r1); rt < total {
		total = rt
	}
	var cuts []int
	for _, s := range [2]int{len(l0), len(r0)} {
		if s > 0 && s < total && (len(cuts) == 0 || s != cuts[len(cuts)-1]) {
			cuts = append(cuts, s)
		}
	}
	sort.Ints(cuts)
	bounds := [4]int{0, total, total, total}
	if len(cuts) >= 1 {
		bounds[1] = cuts[0]
	}
	if len(cuts) >= 2 {
		bounds[2] = cuts[1]
	}
	seg := func(c0, c1 []byte, from, to int) []byte {
		if to <= len(c0) {
			return c0[from:to]
		}
		return c1[from-len(c0) : to-len(c0)]
	}
	a, b, c = seg(l0, l1, bounds[0], bounds[1]), seg(l0, l1, bounds[1], bounds[2]), seg(l0, l1, bounds[2], bounds[3])
	x, y, z = seg(r0, r1, bounds[0], bounds[1]), seg(r0, r1, bounds[1], bounds[2]), seg(r0, r1, bounds[2], bounds[3])
	return
}

// matchPrefixLen returns how many leading bytes of p and q are equal, up
// to the shorter of the two.
func matchPrefixLen(p, q []byte) int {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		if p[i] != q[i] {
			return i
		}
	}
	return n
}

// equalBytes counts the matching bytes at off1 and off2, up to max, used
// by the match finder and the pickers to measure a candidate match's
// length. The comparison is split into at most three bounded,
// non-wrapping loops via alignSliceViews rather than one loop stepping
// through cyclic-buffer indices byte by byte.
func (b *cyclicBuffer) equalBytes(off1, off2 int64, max int) int {
	if off1 < b.bottom || off2 < b.bottom || max <= 0 {
		return 0
	}
	m := int64(max)
	if k := b.top - off1; k < m {
		if k <= 0 {
			return 0
		}
		m = k
	}
	if k := b.top - off2; k < m {
		if k <= 0 {
			return 0
		}
		m = k
	}
	l0, l1 := b.asSlicesBetween(off1, off1+m)
	r0, r1 := b.asSlicesBetween(off2, off2+m)
	a, bb, c, x, y, z := alignSliceViews(l0, l1, r0, r1)
	n := 0
	for _, pair := range [3][2][]byte{{a, x}, {bb, y}, {c, z}} {
		k := matchPrefixLen(pair[0], pair[1])
		n += k
		if k < len(pair[0]) {
			break
		}
	}
	return n
}

// reset restores the buffer to its initial, empty state.
func (b *cyclicBuffer) reset() {
	b.top = 0
	b.bottom = 0
}
