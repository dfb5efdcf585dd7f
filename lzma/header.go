// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// getUint32LE reads an uint32 integer from a byte slice.
func getUint32LE(b []byte) uint32 {
	x := uint32(b[3]) << 24
	x |= uint32(b[2]) << 16
	x |= uint32(b[1]) << 8
	x |= uint32(b[0])
	return x
}

// getUint64LE converts the uint64 value stored as little endian to an
// uint64 value.
func getUint64LE(b []byte) uint64 {
	x := uint64(b[7]) << 56
	x |= uint64(b[6]) << 48
	x |= uint64(b[5]) << 40
	x |= uint64(b[4]) << 32
	x |= uint64(b[3]) << 24
	x |= uint64(b[2]) << 16
	x |= uint64(b[1]) << 8
	x |= uint64(b[0])
	return x
}

// putUint32LE puts an uint32 integer into a byte slice that must have at
// least a length of 4 bytes.
func putUint32LE(b []byte, x uint32) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
}

// putUint64LE puts the uint64 value into the byte slice as little endian
// value. The byte slice b must have at least place for 8 bytes.
func putUint64LE(b []byte, x uint64) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}

// noHeaderSize marks an unknown uncompressed size in the classic header.
const noHeaderSize uint64 = 1<<64 - 1

// headerLen is the length in bytes of the classic LZMA header: one
// properties byte, four bytes of little-endian dictionary size, and eight
// bytes of little-endian uncompressed size.
const headerLen = 13

// dictSizeClampMax is the upper bound the reference encoder clamps the
// header's dictionary size field to; it leaves headroom below the 32-bit
// maximum so no implementation needs to special-case 0xFFFFFFFF.
const dictSizeClampMax = 0xFFFFFFF0

// Header represents the 13-byte header prefixing a classic .lzma stream.
type Header struct {
	Properties Properties
	DictSize   uint32
	// Size is the uncompressed size in bytes, or -1 if unknown (the
	// header then carries the all-ones sentinel and the stream must be
	// terminated by an end-of-stream marker instead).
	Size int64
}

// marshalBinary encodes h into the 13-byte classic header representation.
func (h Header) marshalBinary() (data []byte, err error) {
	if err = h.Properties.verify(); err != nil {
		return nil, err
	}
	if h.DictSize > MaxDictSize {
		return nil, rangeError{"DictSize", h.DictSize}
	}
	if h.Size < -1 {
		return nil, negError{"Size", h.Size}
	}
	data = make([]byte, headerLen)
	data[0] = h.Properties.byte()
	dictSize := h.DictSize
	if dictSize < MinDictSize {
		dictSize = MinDictSize
	} else if dictSize > dictSizeClampMax {
		dictSize = dictSizeClampMax
	}
	putUint32LE(data[1:5], dictSize)
	var u uint64
	if h.Size < 0 {
		u = noHeaderSize
	} else {
		u = uint64(h.Size)
	}
	putUint64LE(data[5:13], u)
	return data, nil
}

// unmarshalBinary decodes the 13-byte classic header representation into h.
func (h *Header) unmarshalBinary(data []byte) error {
	if len(data) != headerLen {
		return ErrInvalidHeader
	}
	if data[0] > MaxProperties {
		return ErrInvalidHeader
	}
	p := propertiesFromByte(data[0])
	if err := p.verify(); err != nil {
		return ErrInvalidHeader
	}
	dictSize := getUint32LE(data[1:5])
	if !(MinDictSize <= dictSize && dictSize <= dictSizeClampMax) {
		return ErrInvalidHeader
	}
	u := getUint64LE(data[5:13])
	var size int64
	if u == noHeaderSize {
		size = -1
	} else {
		size = int64(u)
		if size < 0 {
			return ErrInvalidHeader
		}
	}
	h.Properties = p
	h.DictSize = dictSize
	h.Size = size
	return nil
}

// ValidHeader reports whether data looks like a well-formed 13-byte
// classic LZMA header: correct length, a properties byte within range, and
// a dictionary size that parses without signalling an error.
func ValidHeader(data []byte) bool {
	var h Header
	return h.unmarshalBinary(data) == nil
}
