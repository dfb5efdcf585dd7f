// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// encoderLookaheadCap bounds how many input bytes Write buffers ahead of
// the dictionary head, once the dictionary holds a full DictCap of
// history, before a Write call must drive the picker to make room. It is
// a multiple of maxLength so a single Write of a few KiB does
// not thrash between buffering and compressing.
const encoderLookaheadCap = 4 * maxLength

// Encoder compresses bytes written to it into a classic 13-byte-header
// LZMA stream written to an underlying io.Writer. It owns the dictionary,
// match finder, packet state machine and range encoder for the lifetime
// of the stream; Close must be called exactly once to flush the range
// coder's trailing bytes.
type Encoder struct {
	cfg  Config
	st   *state
	dict *EncoderDataBuffer
	mf   *hc4MatchFinder
	re   *rangeEncoder
	pc   *packetCodec

	lenPrices    *lengthPriceCache
	repLenPrices *lengthPriceCache

	closed bool
}

// NewEncoder writes the 13-byte classic header to w (derived from cfg) and
// returns an Encoder ready to compress bytes written to it. cfg.Size must
// be the exact uncompressed size of the data that will be written; this
// port does not support an end-of-stream marker (spec.md §9).
func NewEncoder(w io.Writer, cfg Config) (*Encoder, error) {
	cfg.fill()
	if err := cfg.verify(); err != nil {
		return nil, err
	}

	h := Header{Properties: cfg.Properties, DictSize: uint32(cfg.DictCap), Size: cfg.Size}
	data, err := h.marshalBinary()
	if err != nil {
		return nil, err
	}
	cfg.Logger.Printf("lzma: encoding header %+v, picker %d\n", h, cfg.Picker)
	for _, c := range data {
		if err = writeByteTo(w, c); err != nil {
			return nil, err
		}
	}

	re, err := newRangeEncoder(w)
	if err != nil {
		return nil, err
	}

	st := new(state)
	initState(st, cfg.Properties)

	dict := newEncoderDataBuffer(cfg.DictCap, encoderLookaheadCap)
	mf := newHC4MatchFinder(cfg.DictCap, cfg.NiceLen, cfg.Depth)

	e := &Encoder{
		cfg:  cfg,
		st:   st,
		dict: dict,
		mf:   mf,
		re:   re,
		pc:   newPacketCodec(st),
	}
	e.lenPrices = newLengthPriceCache(&st.lenCodec, cfg.NiceLen)
	e.repLenPrices = newLengthPriceCache(&st.repLenCodec, cfg.NiceLen)
	return e, nil
}

// writeByteTo writes a single byte to w, using its WriteByte method if
// available and falling back to Write otherwise.
func writeByteTo(w io.Writer, c byte) error {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw.WriteByte(c)
	}
	_, err := w.Write([]byte{c})
	return err
}

// Write buffers p into the dictionary's lookahead region, compressing as
// much of it as fits while keeping enough lookahead for the match finder
// to work with. It returns ErrNoSpace only if the dictionary cannot make
// room even after compressing everything it can.
func (e *Encoder) Write(p []byte) (n int, err error) {
	if e.closed {
		return 0, errWriterClosed
	}
	for len(p) > 0 {
		if e.dict.Available() == 0 {
			if err = e.compress(false); err != nil {
				return n, err
			}
			if e.dict.Available() == 0 {
				return n, ErrNoSpace
			}
		}
		k := len(p)
		if avail := e.dict.Available(); k > avail {
			k = avail
		}
		wn, werr := e.dict.Write(p[:k])
		n += wn
		p = p[wn:]
		if werr != nil {
			return n, werr
		}
		if err = e.compress(false); err != nil {
			return n, err
		}
	}
	e.cfg.Logger.Printf("lzma: wrote %d bytes, dict pos now %d\n", n, e.dict.Pos())
	return n, nil
}

// compress drives the instruction picker and packet codec until at most
// encoderLookaheadCap/4 bytes of lookahead remain, or, when final is
// true, until every buffered byte has been turned into a packet.
func (e *Encoder) compress(final bool) error {
	margin := maxLength
	if final {
		margin = 0
	}
	for e.dict.Buffered() > margin {
		instr, n := e.pick()
		if n == 0 {
			break
		}
		if err := e.encodeInstr(instr); err != nil {
			return err
		}
		pos := e.dict.Pos()
		for i := 0; i < n; i++ {
			e.mf.Insert(e.dict, pos+int64(i))
		}
		e.dict.Advance(n)
	}
	return nil
}

// pick runs the configured instruction picker.
func (e *Encoder) pick() (instruction, int) {
	if e.cfg.Picker == PickerOptimal {
		return pickOptimal(e)
	}
	return pickFast(e)
}

// encodeInstr drives the packet codec for a single instruction, supplying
// the position/byte context the literal coder needs.
func (e *Encoder) encodeInstr(instr instruction) error {
	pos := e.dict.Pos()
	posState := e.st.posState(pos)
	prevByte, err := e.dict.ByteAt(1)
	if err != nil {
		prevByte = 0
	}
	return e.pc.encode(e.re, instr, posState, pos, prevByte, e.dict.ByteAt)
}

// currentLiteral returns the byte at the encoder's current head, used by
// the pickers when they decide to emit a literal.
func (e *Encoder) currentLiteral() (byte, error) {
	var p [1]byte
	if e.dict.Peek(p[:]) == 0 {
		return 0, errEmptyBuf
	}
	return p[0], nil
}

// byteAtLookahead returns the byte i positions past the current head,
// used by the optimal picker's window scan.
func (e *Encoder) byteAtLookahead(i int) byte {
	return e.dict.byteAtPos(e.dict.Pos() + int64(i))
}

// litPrice estimates the cost of coding literal b at window offset i (0
// is the current head). The optimal picker's window search holds state
// and reps fixed at their value on entry (see pickOptimal), so this uses
// the encoder's current state rather than a per-node projection.
func (e *Encoder) litPrice(i int, b byte) uint32 {
	pos := e.dict.Pos() + int64(i)
	var prev byte
	if i == 0 {
		prev, _ = e.dict.ByteAt(1)
	} else {
		prev = e.byteAtLookahead(i - 1)
	}
	litState := e.st.litState(prev, pos)
	st := e.st.state
	var match byte
	if st >= 7 {
		match, _ = e.dict.byteAtRelative(pos, e.st.reps[0]+1)
	}
	return e.st.litCodec.Price(b, st, match, litState)
}

// shortRepPrice estimates the cost of a short rep (rep0, length 1).
func (e *Encoder) shortRepPrice(posState uint32) uint32 {
	st := e.st
	return st.isMatch[(st.state<<maxPosBits)+posState].price(1) +
		st.isRep[st.state].price(1) +
		st.isRepG0[st.state].price(0) +
		st.isRepG0Long[(st.state<<maxPosBits)+posState].price(0)
}

// repPrice estimates the cost of a rep match reusing reps[idx] at the
// given length.
func (e *Encoder) repPrice(idx int, length uint32, posState uint32) uint32 {
	st := e.st
	price := st.isMatch[(st.state<<maxPosBits)+posState].price(1) +
		st.isRep[st.state].price(1)
	switch idx {
	case 0:
		price += st.isRepG0[st.state].price(0)
		price += st.isRepG0Long[(st.state<<maxPosBits)+posState].price(1)
	case 1:
		price += st.isRepG0[st.state].price(1)
		price += st.isRepG1[st.state].price(0)
	case 2:
		price += st.isRepG0[st.state].price(1)
		price += st.isRepG1[st.state].price(1)
		price += st.isRepG2[st.state].price(0)
	default:
		price += st.isRepG0[st.state].price(1)
		price += st.isRepG1[st.state].price(1)
		price += st.isRepG2[st.state].price(1)
	}
	price += e.repLenPrices.Price(length, posState)
	return price
}

// matchPrice estimates the cost of a new-distance match.
func (e *Encoder) matchPrice(dist uint32, length uint32, posState uint32) uint32 {
	st := e.st
	price := st.isMatch[(st.state<<maxPosBits)+posState].price(1) +
		st.isRep[st.state].price(0)
	price += e.lenPrices.Price(length, posState)
	price += st.distCodec.price(dist, length)
	return price
}

// Close compresses every remaining buffered byte, then flushes the range
// encoder's final five bytes. It must be called exactly once; dropping an
// Encoder without calling Close leaves a truncated, undecodable stream.
func (e *Encoder) Close() error {
	if e.closed {
		return errWriterClosed
	}
	if err := e.compress(true); err != nil {
		return err
	}
	e.closed = true
	e.cfg.Logger.Printf("lzma: closed encoder at dict pos %d, %d bytes written\n",
		e.dict.Pos(), e.re.Len())
	return e.re.Close()
}
