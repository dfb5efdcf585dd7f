// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"bytes"
	"strings"
	"testing"
)

var testString = `LZMA decoder test example
=========================
! LZMA ! Decoder ! TEST !
=========================
! TEST ! LZMA ! Decoder !
=========================
---- Test Line 1 --------
=========================
---- Test Line 2 --------
=========================
=== End of test file ====
=========================
`

// roundTrip compresses orig with cfg, decodes the result, and fails the
// test unless the decoded bytes equal orig exactly and the decoder's
// range coder ends cleanly.
func roundTrip(t *testing.T, cfg Config, orig []byte) []byte {
	t.Helper()
	cfg.Size = int64(len(orig))

	var compressed bytes.Buffer
	w, err := NewEncoder(&compressed, cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %s", err)
	}
	if _, err = w.Write(orig); err != nil {
		t.Fatalf("w.Write: %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close: %s", err)
	}

	var out bytes.Buffer
	r, err := NewDecoder(&compressed, &out)
	if err != nil {
		t.Fatalf("NewDecoder: %s", err)
	}
	if err = r.Decode(); err != nil {
		t.Fatalf("r.Decode: %s", err)
	}
	if !r.IsFinished() {
		t.Errorf("r.IsFinished() = false; want true")
	}
	if !bytes.Equal(out.Bytes(), orig) {
		t.Fatalf("decoded %d bytes differ from the %d-byte original",
			out.Len(), len(orig))
	}
	return compressed.Bytes()
}

func testConfig(picker PickerKind) Config {
	return Config{
		Properties: Properties{LC: 3, LP: 0, PB: 2},
		DictCap:    0x4000,
		NiceLen:    270,
		Depth:      48,
		Picker:     picker,
	}
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	for _, picker := range []PickerKind{PickerFast, PickerOptimal} {
		roundTrip(t, testConfig(picker), []byte(testString))
	}
}

// TestRoundTripRepetitive exercises the rep/shortrep packet paths heavily
// by compressing one fixed source buffer repeated 100 times, per
// spec.md §8 scenario 5.
func TestRoundTripRepetitive(t *testing.T) {
	orig := []byte(strings.Repeat(testString, 100))
	roundTrip(t, testConfig(PickerFast), orig)
}

// TestRoundTripLargeRandom compresses incompressible random-looking data
// (generated deterministically, since the harness disallows math/rand's
// time-seeded sources) to exercise the literal-heavy path and the match
// finder's dictionary-capacity edge when almost nothing matches.
func TestRoundTripLargeRandom(t *testing.T) {
	orig := make([]byte, 64*1024)
	x := uint32(0x2545F491)
	for i := range orig {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		orig[i] = byte(x)
	}
	roundTrip(t, testConfig(PickerFast), orig)
}

// TestOptimalNotWorseThanFast checks spec.md §8 scenario 6: for the same
// input and configuration, the optimal picker's output must be no larger
// than the fast picker's, and both must round-trip.
func TestOptimalNotWorseThanFast(t *testing.T) {
	orig := []byte(strings.Repeat(testString, 20))
	fast := roundTrip(t, testConfig(PickerFast), orig)
	optimal := roundTrip(t, testConfig(PickerOptimal), orig)
	if len(optimal) > len(fast) {
		t.Errorf("optimal output %d bytes; fast output %d bytes; "+
			"optimal must not be larger", len(optimal), len(fast))
	}
}

func TestEncoderWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(PickerFast)
	cfg.Size = 1
	w, err := NewEncoder(&buf, cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %s", err)
	}
	if _, err = w.Write([]byte("a")); err != nil {
		t.Fatalf("w.Write: %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close: %s", err)
	}
	if _, err = w.Write([]byte("b")); err != errWriterClosed {
		t.Fatalf("w.Write after Close: got error %v; want %v", err, errWriterClosed)
	}
}
