// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// Decoder reconstructs the original byte stream from a classic 13-byte-
// header LZMA stream, writing reconstructed bytes to an underlying
// io.Writer as they are produced. This port requires the header to carry
// a known uncompressed size (spec.md §9); there is no end-of-stream
// marker support.
type Decoder struct {
	st   *state
	dict *DecoderDataBuffer
	rd   *rangeDecoder
	pc   *packetCodec

	remaining int64
	done      bool
}

// NewDecoder reads and validates the 13-byte header from r, then the
// range coder's five-byte prelude, and returns a Decoder ready to produce
// out via Decode. Reconstructed bytes are streamed to out as they are
// decoded.
func NewDecoder(r io.Reader, out io.Writer) (*Decoder, error) {
	hdr := make([]byte, headerLen)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, err
	}
	var h Header
	if err := h.unmarshalBinary(hdr); err != nil {
		return nil, err
	}
	if h.Size < 0 {
		return nil, ErrInvalidHeader
	}

	rd, err := newRangeDecoder(r)
	if err != nil {
		return nil, err
	}

	st := new(state)
	initState(st, h.Properties)
	dict := newDecoderDataBuffer(int(h.DictSize), out)

	return &Decoder{
		st:        st,
		dict:      dict,
		rd:        rd,
		pc:        newPacketCodec(st),
		remaining: h.Size,
	}, nil
}

// Decode reconstructs the full uncompressed stream, writing every byte to
// the Writer passed to NewDecoder. It returns nil once exactly the
// header's declared size has been produced; IsFinished can then confirm
// the range coder ended cleanly.
func (d *Decoder) Decode() error {
	if d.done {
		return nil
	}
	for d.remaining > 0 {
		pos := d.dict.Pos()
		posState := d.st.posState(pos)
		prevByte, err := d.dict.ByteAt(1)
		if err != nil {
			prevByte = 0
		}
		instr, err := d.pc.decode(d.rd, posState, pos, prevByte, d.dict.ByteAt)
		if err != nil {
			return err
		}
		if err := d.apply(instr); err != nil {
			return err
		}
	}
	d.done = true
	return nil
}

// apply writes the bytes instr represents to the dictionary and decrements
// the remaining-byte counter, failing with ErrCorruptStream if a packet
// would produce more bytes than the header declared.
func (d *Decoder) apply(instr instruction) error {
	switch instr.kind {
	case instrLiteral:
		if d.remaining < 1 {
			return ErrCorruptStream
		}
		d.remaining--
		return d.dict.WriteByte(instr.literal)
	case instrMatch:
		length := int64(instr.length)
		if length > d.remaining {
			return ErrCorruptStream
		}
		d.remaining -= length
		return d.dict.WriteMatch(instr.distance+1, int(instr.length))
	case instrRep:
		length := int64(instr.length)
		if length > d.remaining {
			return ErrCorruptStream
		}
		d.remaining -= length
		return d.dict.WriteMatch(d.st.reps[0]+1, int(instr.length))
	case instrShortRep:
		if d.remaining < 1 {
			return ErrCorruptStream
		}
		d.remaining--
		return d.dict.WriteMatch(d.st.reps[0]+1, 1)
	}
	return lzmaError{"unknown instruction kind"}
}

// IsFinished reports whether the range decoder's internal code value
// reached zero, a post-decode integrity probe for a clean stream end
// (spec.md §7).
func (d *Decoder) IsFinished() bool {
	return d.rd.possiblyAtEnd()
}
