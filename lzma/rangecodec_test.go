// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"testing"
)

// TestDirectBitsRoundTrip covers spec.md §8 scenario 1: encoding the
// integers 0..99 as 8-bit direct values must produce a 105-byte buffer
// (100 bytes of payload rounded up by the 5-byte finish prelude) and
// decode back to the same sequence with a clean finish.
func TestDirectBitsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	e, err := newRangeEncoder(&buf)
	if err != nil {
		t.Fatalf("newRangeEncoder: %s", err)
	}
	enc := makeDirectEncoder(8)
	for v := uint32(0); v < 100; v++ {
		if err = enc.Encode(v, e); err != nil {
			t.Fatalf("Encode(%d): %s", v, err)
		}
	}
	if err = e.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if buf.Len() != 105 {
		t.Fatalf("buffer length = %d; want 105", buf.Len())
	}

	d, err := newRangeDecoder(&buf)
	if err != nil {
		t.Fatalf("newRangeDecoder: %s", err)
	}
	dec := makeDirectDecoder(8)
	for v := uint32(0); v < 100; v++ {
		got, err := dec.Decode(d)
		if err != nil {
			t.Fatalf("Decode: %s", err)
		}
		if got != v {
			t.Fatalf("Decode() = %d; want %d", got, v)
		}
	}
	if !d.possiblyAtEnd() {
		t.Errorf("possiblyAtEnd() = false; want true")
	}
}

// TestBitTreeRoundTrip covers spec.md §8 scenario 2: encoding the values
// 0..255 through the forward and reverse 256-entry bit trees produces
// 227 and 266 bytes respectively, and both round-trip.
func TestBitTreeRoundTrip(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		var buf bytes.Buffer
		e, err := newRangeEncoder(&buf)
		if err != nil {
			t.Fatalf("newRangeEncoder: %s", err)
		}
		tc := makeBitTreeCodec(8)
		for v := uint32(0); v < 256; v++ {
			if err = tc.Encode(v, e); err != nil {
				t.Fatalf("Encode(%d): %s", v, err)
			}
		}
		if err = e.Close(); err != nil {
			t.Fatalf("Close: %s", err)
		}
		if buf.Len() != 227 {
			t.Fatalf("buffer length = %d; want 227", buf.Len())
		}

		d, err := newRangeDecoder(&buf)
		if err != nil {
			t.Fatalf("newRangeDecoder: %s", err)
		}
		td := makeBitTreeCodec(8)
		for v := uint32(0); v < 256; v++ {
			got, err := td.Decode(d)
			if err != nil {
				t.Fatalf("Decode: %s", err)
			}
			if got != v {
				t.Fatalf("Decode() = %d; want %d", got, v)
			}
		}
	})

	t.Run("reverse", func(t *testing.T) {
		var buf bytes.Buffer
		e, err := newRangeEncoder(&buf)
		if err != nil {
			t.Fatalf("newRangeEncoder: %s", err)
		}
		tc := makeBitTreeReverseCodec(8)
		for v := uint32(0); v < 256; v++ {
			if err = tc.Encode(v, e); err != nil {
				t.Fatalf("Encode(%d): %s", v, err)
			}
		}
		if err = e.Close(); err != nil {
			t.Fatalf("Close: %s", err)
		}
		if buf.Len() != 266 {
			t.Fatalf("buffer length = %d; want 266", buf.Len())
		}

		d, err := newRangeDecoder(&buf)
		if err != nil {
			t.Fatalf("newRangeDecoder: %s", err)
		}
		td := makeBitTreeReverseCodec(8)
		for v := uint32(0); v < 256; v++ {
			got, err := td.Decode(d)
			if err != nil {
				t.Fatalf("Decode: %s", err)
			}
			if got != v {
				t.Fatalf("Decode() = %d; want %d", got, v)
			}
		}
	})
}
