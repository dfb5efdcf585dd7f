// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// asByteWriter adapts an io.Writer to io.ByteWriter, wrapping it in a
// one-byte buffer when it doesn't already implement WriteByte.
func asByteWriter(w io.Writer) io.ByteWriter {
	if bw, ok := w.(io.ByteWriter); ok {
		return bw
	}
	return &singleByteWriter{w: w}
}

type singleByteWriter struct {
	w io.Writer
	a [1]byte
}

func (s *singleByteWriter) WriteByte(c byte) error {
	s.a[0] = c
	n, err := s.w.Write(s.a[:])
	if err != nil {
		return err
	}
	if n != 1 {
		panic("lzma: short write of a single byte")
	}
	return nil
}

// asByteReader adapts an io.Reader to io.ByteReader the same way
// asByteWriter adapts the write side.
func asByteReader(r io.Reader) io.ByteReader {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &singleByteReader{r: r}
}

type singleByteReader struct {
	r io.Reader
	a [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	n, err := s.r.Read(s.a[:])
	if n == 1 {
		return s.a[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

// rangeEncoder is a byte-oriented binary arithmetic coder: each call to
// EncodeBit narrows [0, nrange) by the probability carried in p and emits
// bytes of low as they become final. low holds 33 significant bits so a
// narrowing that overflows bit 32 can still be detected and carried into
// already-buffered output via cache/pending, the same trick range coders
// use to avoid re-reading already-written bytes.
type rangeEncoder struct {
	w       io.ByteWriter
	nrange  uint32
	low     uint64
	cache   byte
	pending int64 // bytes of output held back by a pending carry
	written int64
}

// newRangeEncoder starts a range encoder writing to w. The first byte it
// eventually emits is always zero, by construction of the carry scheme;
// the decoder's init discards it.
func newRangeEncoder(w io.Writer) (*rangeEncoder, error) {
	return &rangeEncoder{
		w:       asByteWriter(w),
		nrange:  0xffffffff,
		pending: 1,
	}, nil
}

// Len reports how many bytes have been committed to the underlying writer
// so far; bytes still held back by a pending carry are not counted until
// they are resolved.
func (e *rangeEncoder) Len() int64 { return e.written }

func (e *rangeEncoder) putByte(c byte) error {
	if err := e.w.WriteByte(c); err != nil {
		return err
	}
	e.written++
	return nil
}

// DirectEncodeBit narrows the range by exactly half, coding b with fixed
// probability 1/2; used for the header bits of distance slots that carry
// no adaptive model.
func (e *rangeEncoder) DirectEncodeBit(b uint32) error {
	e.nrange >>= 1
	if b&1 != 0 {
		e.low += uint64(e.nrange)
	}
	return e.normalize()
}

// EncodeBit codes the least significant bit of b against the adaptive
// probability in p, then updates p toward whichever symbol was coded.
func (e *rangeEncoder) EncodeBit(b uint32, p *prob) error {
	bound := p.bound(e.nrange)
	if b&1 == 0 {
		e.nrange = bound
		p.inc()
	} else {
		e.low += uint64(bound)
		e.nrange -= bound
		p.dec()
	}
	return e.normalize()
}

// normalize keeps nrange above the 2^24 threshold the coder requires,
// shifting a settled byte of low out through carryOut whenever it falls
// below that threshold.
func (e *rangeEncoder) normalize() error {
	const top = 1 << 24
	if e.nrange >= top {
		return nil
	}
	e.nrange <<= 8
	return e.carryOut()
}

// carryOut emits the top byte of low, propagating a carry into bytes
// already held back by a run of 0xff output (cache/pending) when the
// narrowing pushed low past the 32-bit boundary.
func (e *rangeEncoder) carryOut() error {
	if uint32(e.low) < 0xff000000 || e.low>>32 != 0 {
		carry := byte(e.low >> 32)
		c := e.cache
		for {
			if err := e.putByte(c + carry); err != nil {
				return err
			}
			c = 0xff
			e.pending--
			if e.pending <= 0 {
				break
			}
		}
		e.cache = byte(uint32(e.low) >> 24)
	}
	e.pending++
	e.low = uint64(uint32(e.low) << 8)
	return nil
}

// Close flushes the five bytes needed to pin down the final value of low,
// regardless of its pending-carry state.
func (e *rangeEncoder) Close() error {
	for i := 0; i < 5; i++ {
		if err := e.carryOut(); err != nil {
			return err
		}
	}
	return nil
}

// rangeDecoder mirrors rangeEncoder: it keeps a window [0, nrange) and a
// running code value, narrowing both the same way the encoder narrowed
// low, and recovers each coded bit from where code falls in the window.
type rangeDecoder struct {
	r      io.ByteReader
	nrange uint32
	code   uint32
}

// newRangeDecoder reads the five priming bytes a matching rangeEncoder
// wrote (the leading zero plus four bytes of low) and returns a decoder
// ready to decode the first coded bit.
func newRangeDecoder(r io.Reader) (*rangeDecoder, error) {
	d := &rangeDecoder{r: asByteReader(r), nrange: 0xffffffff}
	lead, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if lead != 0 {
		return nil, lzmaError{"range decoder: leading byte not zero"}
	}
	for i := 0; i < 4; i++ {
		if err := d.pullByte(); err != nil {
			return nil, err
		}
	}
	if d.code >= d.nrange {
		return nil, lzmaError{"range decoder: code out of range after init"}
	}
	return d, nil
}

// possiblyAtEnd reports whether the decoder's running code has drained to
// zero, a necessary (not sufficient) condition for having reached the end
// of a coded stream.
func (d *rangeDecoder) possiblyAtEnd() bool {
	return d.code == 0
}

func (d *rangeDecoder) pullByte() error {
	c, err := d.r.ReadByte()
	if err != nil {
		return err
	}
	d.code = d.code<<8 | uint32(c)
	return nil
}

// DirectDecodeBit decodes a bit coded with fixed probability 1/2, the
// counterpart of DirectEncodeBit.
func (d *rangeDecoder) DirectDecodeBit() (uint32, error) {
	d.nrange >>= 1
	d.code -= d.nrange
	mask := 0 - (d.code >> 31)
	d.code += d.nrange & mask
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return (mask + 1) & 1, nil
}

// DecodeBit decodes a bit coded against the adaptive probability in p,
// updating p the same way the encoder's EncodeBit did when it coded this
// bit.
func (d *rangeDecoder) DecodeBit(p *prob) (uint32, error) {
	bound := p.bound(d.nrange)
	var b uint32
	if d.code < bound {
		d.nrange = bound
		p.inc()
	} else {
		d.code -= bound
		d.nrange -= bound
		p.dec()
		b = 1
	}
	if err := d.normalize(); err != nil {
		return 0, err
	}
	return b, nil
}

// normalize mirrors the encoder's normalize: once nrange drops below the
// threshold, both nrange and code shift left by a byte, pulling in a
// fresh byte of coded input.
func (d *rangeDecoder) normalize() error {
	const top = 1 << 24
	if d.nrange < top {
		d.nrange <<= 8
		if err := d.pullByte(); err != nil {
			return err
		}
	}
	return nil
}
