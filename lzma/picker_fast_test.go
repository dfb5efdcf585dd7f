package lzma

import (
	"bytes"
	"strings"
	"testing"
)

// TestPickFastRejectsLengthOneNonRep0 covers the tail-of-stream edge case
// where only a single lookahead byte remains: the fast picker must never
// return a generic rep packet of length 1 for a non-zero rep index, since
// repLenCodec.Encode subtracts minLength and underflows for any length
// below 2. Only rep0 has a length-1 encoding, as a short rep.
func TestPickFastRejectsLengthOneNonRep0(t *testing.T) {
	cfg := testConfig(PickerFast)
	cfg.Size = 3
	var buf bytes.Buffer
	e, err := NewEncoder(&buf, cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %s", err)
	}

	if _, err = e.dict.Write([]byte("ab")); err != nil {
		t.Fatalf("dict.Write: %s", err)
	}
	e.mf.Insert(e.dict, 0)
	e.mf.Insert(e.dict, 1)
	e.dict.Advance(2)

	// rep0 and rep2/rep3 point further back than the two bytes of
	// history held; only rep1, at distance 2, reaches the 'a' that the
	// single trailing lookahead byte repeats.
	e.st.reps[0] = 99
	e.st.reps[1] = 1
	e.st.reps[2] = 199
	e.st.reps[3] = 299

	if _, err = e.dict.Write([]byte("a")); err != nil {
		t.Fatalf("dict.Write: %s", err)
	}

	if n := e.dict.Buffered(); n != 1 {
		t.Fatalf("Buffered() = %d; want 1", n)
	}

	instr, n := pickFast(e)
	if n != 1 {
		t.Fatalf("pickFast consumed %d bytes; want 1", n)
	}
	if instr.kind == instrRep && instr.repIndex != 0 {
		t.Fatalf("pickFast returned length-%d rep%d packet; "+
			"the format has no encoding for a non-zero rep of length < 2",
			instr.length, instr.repIndex)
	}
	if instr.kind == instrRep && instr.length < minLength {
		t.Fatalf("pickFast returned rep packet with length %d; "+
			"lengths below minLength must be encoded as shortrep, not rep",
			instr.length)
	}
}

// TestRoundTripRepeatThenSingleByte forces a 1-byte final flush after a
// long repeat run, the scenario that used to let the fast picker emit an
// unencodable length-1 rep packet during Close.
func TestRoundTripRepeatThenSingleByte(t *testing.T) {
	orig := []byte(strings.Repeat("ab", 64) + "c")
	roundTrip(t, testConfig(PickerFast), orig)
}
