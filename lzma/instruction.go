// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"fmt"
	"unicode"
)

// instrKind discriminates the four packet shapes the state machine can
// emit: a literal byte, a match against a brand-new distance, a match
// against one of the four most-recently-used distances, and a one-byte
// repeat of rep0.
type instrKind int

const (
	instrLiteral instrKind = iota
	instrMatch
	instrRep
	instrShortRep
)

// instruction represents a single packet of the LZMA operation stream, as
// produced by an instruction picker and consumed by the packet codec. It
// is a plain discriminated struct rather than a packed integer because rep
// packets need a rep index in [0,3] that a bit-packed distance/length pair
// has no room for.
type instruction struct {
	kind     instrKind
	literal  byte
	length   uint32
	distance uint32 // distance - 1, only meaningful for instrMatch
	repIndex int    // only meaningful for instrRep
}

func litInstr(b byte) instruction {
	return instruction{kind: instrLiteral, literal: b}
}

func matchInstr(dist uint32, length uint32) instruction {
	return instruction{kind: instrMatch, distance: dist, length: length}
}

func repInstr(repIndex int, length uint32) instruction {
	return instruction{kind: instrRep, repIndex: repIndex, length: length}
}

func shortRepInstr(repIndex int) instruction {
	return instruction{kind: instrShortRep, repIndex: repIndex}
}

func (op instruction) String() string {
	switch op.kind {
	case instrLiteral:
		c := op.literal
		if !unicode.IsPrint(rune(c)) {
			c = '.'
		}
		return fmt.Sprintf("L{%c/%02x}", c, c)
	case instrMatch:
		return fmt.Sprintf("M{%d,%d}", op.distance+1, op.length)
	case instrRep:
		return fmt.Sprintf("R%d{%d}", op.repIndex, op.length)
	case instrShortRep:
		return fmt.Sprintf("SR%d", op.repIndex)
	}
	return "?"
}
