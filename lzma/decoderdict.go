// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import "io"

// DecoderDataBuffer is the decoder-side dictionary: a history window used
// to resolve match and rep distances, with each reconstructed byte also
// streamed straight to the destination writer as it is produced.
type DecoderDataBuffer struct {
	hist     cyclicBuffer
	capacity int
	w        io.Writer
}

// newDecoderDataBuffer creates a decoder dictionary with dictCap bytes of
// history, streaming reconstructed output to w.
func newDecoderDataBuffer(dictCap int, w io.Writer) *DecoderDataBuffer {
	if dictCap < 1 {
		panic(rangeError{"dictCap", dictCap})
	}
	return &DecoderDataBuffer{
		hist:     *newCyclicBuffer(dictCap),
		capacity: dictCap,
		w:        w,
	}
}

// Pos returns the current uncompressed position.
func (d *DecoderDataBuffer) Pos() int64 { return d.hist.pos() }

// DictLen returns how many history bytes are available for distance
// resolution.
func (d *DecoderDataBuffer) DictLen() int {
	n := d.hist.len()
	if n > int64(d.capacity) {
		return d.capacity
	}
	return int(n)
}

// ByteAt returns the history byte dist positions behind the current
// position.
func (d *DecoderDataBuffer) ByteAt(dist uint32) (byte, error) {
	return d.hist.byteAt(dist)
}

// WriteByte appends a single reconstructed byte: it updates the history
// window and forwards the byte to the output writer.
func (d *DecoderDataBuffer) WriteByte(c byte) error {
	d.hist.writeByte(c)
	_, err := d.w.Write([]byte{c})
	return err
}

// WriteMatch reconstructs a run of length bytes copied from dist
// positions behind the current position. When the run is no longer than
// its distance, source and destination don't overlap, so the whole run
// is bulk-copied through the history buffer and forwarded to the output
// writer in its seam-split pieces; otherwise later bytes repeat output
// this same call is still producing, so the copy must proceed one byte
// at a time.
func (d *DecoderDataBuffer) WriteMatch(dist uint32, length int) error {
	if dist == 0 || int64(dist) > d.hist.len() {
		return ErrInvalidDistance
	}
	if length <= 0 {
		return nil
	}
	if int64(length) <= int64(dist) {
		start := d.hist.pos()
		if err := d.hist.writeMatch(dist, length); err != nil {
			return err
		}
		_, err := d.hist.writeRangeTo(start, start+int64(length), d.w)
		return err
	}
	for i := 0; i < length; i++ {
		c, err := d.hist.byteAt(dist)
		if err != nil {
			return err
		}
		if err := d.WriteByte(c); err != nil {
			return err
		}
	}
	return nil
}
