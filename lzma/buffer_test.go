// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "testing"

func TestCyclicBufferWriteAndByteAt(t *testing.T) {
	b := newCyclicBuffer(10)
	data := []byte("0123456789")
	for _, c := range data {
		b.writeByte(c)
	}
	if b.len() != 10 {
		t.Fatalf("b.len() = %d; want 10", b.len())
	}
	c, err := b.byteAt(1)
	if err != nil {
		t.Fatalf("byteAt(1) error %s", err)
	}
	if c != '9' {
		t.Fatalf("byteAt(1) = %c; want 9", c)
	}
	c, err = b.byteAt(10)
	if err != nil {
		t.Fatalf("byteAt(10) error %s", err)
	}
	if c != '0' {
		t.Fatalf("byteAt(10) = %c; want 0", c)
	}
}

func TestCyclicBufferWrap(t *testing.T) {
	b := newCyclicBuffer(4)
	for _, c := range []byte("abcdefgh") {
		b.writeByte(c)
	}
	if b.len() != 4 {
		t.Fatalf("b.len() = %d; want 4", b.len())
	}
	c, err := b.byteAt(1)
	if err != nil {
		t.Fatalf("byteAt(1) error %s", err)
	}
	if c != 'h' {
		t.Fatalf("byteAt(1) = %c; want h", c)
	}
	if _, err = b.byteAt(5); err == nil {
		t.Fatal("byteAt(5) beyond history returned no error")
	}
}

func TestCyclicBufferWriteMatch(t *testing.T) {
	b := newCyclicBuffer(16)
	for _, c := range []byte("abc") {
		b.writeByte(c)
	}
	// dist 3, length 6 repeats "abc" twice: "abcabc"
	if err := b.writeMatch(3, 6); err != nil {
		t.Fatalf("writeMatch error %s", err)
	}
	want := "abcabcabc"
	for i := 0; i < len(want); i++ {
		dist := uint32(len(want) - i)
		c, err := b.byteAt(dist)
		if err != nil {
			t.Fatalf("byteAt(%d) error %s", dist, err)
		}
		if c != want[i] {
			t.Fatalf("byte %d = %c; want %c", i, c, want[i])
		}
	}
}

func TestCyclicBufferInvalidDistance(t *testing.T) {
	b := newCyclicBuffer(16)
	b.writeByte('a')
	if err := b.writeMatch(5, 1); err != ErrInvalidDistance {
		t.Fatalf("writeMatch with distance beyond history returned %v; want ErrInvalidDistance", err)
	}
}

// TestCyclicBufferWriteMatchNonOverlapping exercises writeMatch's bulk
// appendPastData path (length <= dist), across the buffer's wraparound
// seam, rather than the byte-by-byte path TestCyclicBufferWriteMatch
// already covers for an overlapping rep.
func TestCyclicBufferWriteMatchNonOverlapping(t *testing.T) {
	b := newCyclicBuffer(8)
	for _, c := range []byte("abcdef") {
		b.writeByte(c)
	}
	// history is "abcdef" (6 bytes); copy the first 4 ("abcd") to the
	// head by reaching back distance 6. The destination write lands at
	// index 6 in the 8-byte backing array and wraps after 2 bytes,
	// straddling the seam.
	if err := b.writeMatch(6, 4); err != nil {
		t.Fatalf("writeMatch error %s", err)
	}
	// The full logical stream is "abcdefabcd" (10 bytes); only the last
	// capacity (8) bytes remain addressable.
	full := "abcdefabcd"
	want := full[len(full)-b.capacity():]
	for i := 0; i < len(want); i++ {
		dist := uint32(len(want) - i)
		c, err := b.byteAt(dist)
		if err != nil {
			t.Fatalf("byteAt(%d) error %s", dist, err)
		}
		if c != want[i] {
			t.Fatalf("byte %d = %c; want %c", i, c, want[i])
		}
	}
}

// TestCyclicBufferAsSlices checks as_slices/as_slices_after/
// as_slices_between both when the logical range sits entirely within the
// backing array and when it straddles the wraparound seam.
func TestCyclicBufferAsSlices(t *testing.T) {
	b := newCyclicBuffer(4)
	for _, c := range []byte("abcdef") {
		b.writeByte(c)
	}
	// history is "cdef" (capacity 4), top == 6, bottom == 2.

	join := func(lo, hi []byte) string { return string(lo) + string(hi) }

	if lo, hi := b.asSlices(); join(lo, hi) != "cdef" {
		t.Fatalf("asSlices() = %q; want %q", join(lo, hi), "cdef")
	}
	if lo, hi := b.asSlicesAfter(4); join(lo, hi) != "ef" {
		t.Fatalf("asSlicesAfter(4) = %q; want %q", join(lo, hi), "ef")
	}
	if lo, hi := b.asSlicesBetween(3, 5); join(lo, hi) != "de" {
		t.Fatalf("asSlicesBetween(3,5) = %q; want %q", join(lo, hi), "de")
	}
	// [2,6) straddles the seam at index 4%4==0: "cd" then "ef".
	lo, hi := b.asSlicesBetween(2, 6)
	if len(lo) == 0 || len(hi) == 0 {
		t.Fatalf("asSlicesBetween(2,6) = %q/%q; want a seam split", lo, hi)
	}
	if join(lo, hi) != "cdef" {
		t.Fatalf("asSlicesBetween(2,6) = %q; want %q", join(lo, hi), "cdef")
	}
}

// TestCyclicBufferEqualBytesAcrossSeam checks equalBytes (and the
// alignSliceViews/matchPrefixLen helpers it drives) when the two compared
// ranges straddle the wraparound seam at different offsets from each
// other.
func TestCyclicBufferEqualBytesAcrossSeam(t *testing.T) {
	// capacity 7 holds an alternating 2-byte period ("xyxyxy..."): any two
	// offsets an even distance apart compare equal for as long as both
	// stay in range, regardless of where each range happens to cross the
	// seam.
	b := newCyclicBuffer(7)
	for i := 0; i < 16; i++ {
		c := byte('x')
		if i%2 == 1 {
			c = 'y'
		}
		b.writeByte(c)
	}
	// top==16, bottom==9. [13,16) wraps the 7-byte array (seam at index
	// 13%7==6); [11,14) does not (seam at index 11%7==4 leaves room for
	// all 3 bytes before the array end). Both stay in bounds.
	if n := b.equalBytes(13, 11, 3); n != 3 {
		t.Fatalf("equalBytes(13,11,3) = %d; want 3", n)
	}
	// one position over, the parity flips and every byte differs
	// immediately.
	if n := b.equalBytes(12, 11, 3); n != 0 {
		t.Fatalf("equalBytes(12,11,3) = %d; want 0", n)
	}
}

func TestAlignSliceViews(t *testing.T) {
	l0, l1 := []byte("ab"), []byte("cdef")
	r0, r1 := []byte("abcd"), []byte("ef")
	a, b, c, x, y, z := alignSliceViews(l0, l1, r0, r1)
	if len(a) != len(x) || len(b) != len(y) || len(c) != len(z) {
		t.Fatalf("alignSliceViews produced mismatched tuple lengths: "+
			"%d/%d %d/%d %d/%d", len(a), len(x), len(b), len(y), len(c), len(z))
	}
	got := string(a) + string(b) + string(c)
	want := string(l0) + string(l1)
	if got != want {
		t.Fatalf("left side reassembled as %q; want %q", got, want)
	}
	got = string(x) + string(y) + string(z)
	want = string(r0) + string(r1)
	if got != want {
		t.Fatalf("right side reassembled as %q; want %q", got, want)
	}
}
