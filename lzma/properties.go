// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// Maximum and minimum values for individual parameters.
const (
	MinLC         = 0
	MaxLC         = 8
	MinLP         = 0
	MaxLP         = 4
	MinPB         = 0
	MaxPB         = 4
	MaxProperties = (MaxPB+1)*(MaxLP+1)*(MaxLC+1) - 1
	MinDictSize   = 1 << 12
	MaxDictSize   = 1<<32 - 1
)

// Properties holds the three parameters packed into the classic LZMA
// header's single properties byte: the number of literal context bits, the
// number of literal position bits, and the number of position bits.
type Properties struct {
	LC int
	LP int
	PB int
}

// defaultProperties matches the parameters used by the reference LZMA SDK
// when none are given explicitly.
var defaultProperties = Properties{LC: 3, LP: 0, PB: 2}

// byte packs p into the single properties byte used by the classic header.
func (p Properties) byte() byte {
	return byte((p.PB*5+p.LP)*9 + p.LC)
}

// propertiesFromByte unpacks the single properties byte into a Properties
// value. It does not validate the ranges; callers check with verify.
func propertiesFromByte(b byte) Properties {
	return Properties{
		LC: int(b) % 9,
		LP: (int(b) / 9) % 5,
		PB: (int(b) / 45) % 5,
	}
}

// verify checks that all three fields are within their supported ranges.
func (p Properties) verify() error {
	if !(MinLC <= p.LC && p.LC <= MaxLC) {
		return rangeError{"lc", p.LC}
	}
	if !(MinLP <= p.LP && p.LP <= MaxLP) {
		return rangeError{"lp", p.LP}
	}
	if !(MinPB <= p.PB && p.PB <= MaxPB) {
		return rangeError{"pb", p.PB}
	}
	return nil
}

// verifyProperties checks the argument for any errors.
func verifyProperties(p *Properties) error {
	return p.verify()
}
