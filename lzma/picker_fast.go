// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// isDistanceSufficientlyShorter reports whether distance a is short enough,
// relative to b, to prefer taking a match at a now rather than waiting one
// byte for a longer match at distance b. Matching a far-away distance costs
// many more price units than a nearby one, so a modestly longer match
// further away is not automatically better.
func isDistanceSufficientlyShorter(a, b uint32) bool {
	return uint64(a)*128 < uint64(b)
}

// repMatchLengths measures, for each of the four most-recently-used
// distances, how many bytes at pos match the history that distance back.
func repMatchLengths(st *state, dict *EncoderDataBuffer, pos int64, maxLen int) (lengths [4]int) {
	for i, rep := range st.reps {
		dist := int64(rep) + 1
		if dist > int64(dict.DictLen()) {
			continue
		}
		lengths[i] = dict.EqualBytes(pos, pos-dist, maxLen)
	}
	return
}

// bestRep picks the rep index with the longest match, preferring the
// lowest index (cheapest to encode) on ties.
func bestRep(lengths [4]int) (idx, length int) {
	for i, l := range lengths {
		if l > length {
			length, idx = l, i
		}
	}
	return
}

// repInstrFor returns the packet that reuses repIdx at repLen, and
// whether the format has one: a length of 1 only has an encoding for
// rep0, as a short rep; length 1 on rep1-3 has no packet at all, since
// repLenCodec.Encode requires at least minLength.
func repInstrFor(repIdx, repLen int) (instruction, bool) {
	switch {
	case repLen >= 2:
		return repInstr(repIdx, uint32(repLen)), true
	case repLen == 1 && repIdx == 0:
		return shortRepInstr(0), true
	default:
		return instruction{}, false
	}
}

// pickFast implements the greedy instruction picker: at each position it
// looks at the best rep match, the best new-distance match from the match
// finder, and a one-byte lookahead to decide whether postponing the
// current match by a literal would let a clearly better match emerge. It
// never looks further than one byte ahead, trading some ratio for speed.
func pickFast(e *Encoder) (instruction, int) {
	pos := e.dict.Pos()
	maxLen := e.dict.Buffered()
	if maxLen > maxLength {
		maxLen = maxLength
	}
	if maxLen == 0 {
		return instruction{}, 0
	}

	repLens := repMatchLengths(e.st, e.dict, pos, maxLen)
	repIdx, repLen := bestRep(repLens)

	if repLen >= maxLen {
		if instr, ok := repInstrFor(repIdx, repLen); ok {
			return instr, repLen
		}
	}

	matches := e.mf.Search(e.dict, pos, maxLen)
	var best matchCandidate
	for _, c := range matches {
		if c.length > best.length {
			best = c
		}
	}

	// A rep match that is at least as long, or only one byte shorter, is
	// cheaper to encode than any new-distance match and should win.
	if repLen >= 2 && repLen+1 >= best.length {
		instr, _ := repInstrFor(repIdx, repLen)
		return instr, repLen
	}

	if best.length < 2 {
		if repLen == 1 && repIdx == 0 {
			return shortRepInstr(0), 1
		}
		lit, _ := e.currentLiteral()
		return litInstr(lit), 1
	}

	if best.length >= e.cfg.NiceLen {
		return matchInstr(best.dist-1, uint32(best.length)), best.length
	}

	// Tiny/far match rejection: very short matches are only worth the
	// packet overhead when the distance is small.
	if best.length == 2 && best.dist >= 512 {
		lit, _ := e.currentLiteral()
		return litInstr(lit), 1
	}
	if best.length == 3 && best.dist >= 1<<16 {
		lit, _ := e.currentLiteral()
		return litInstr(lit), 1
	}

	// One-byte lookahead change-pair heuristic: if the very next position
	// offers a meaningfully better match, emit a literal now and let the
	// next iteration take it instead.
	if maxLen2 := maxLen - 1; maxLen2 >= 2 && e.dict.Buffered() > 1 {
		nextMatches := e.mf.Search(e.dict, pos+1, maxLen2)
		var next matchCandidate
		for _, c := range nextMatches {
			if c.length > next.length {
				next = c
			}
		}
		if next.length >= best.length+2 ||
			(next.length == best.length+1 && !isDistanceSufficientlyShorter(best.dist, next.dist)) {
			lit, _ := e.currentLiteral()
			return litInstr(lit), 1
		}
	}

	return matchInstr(best.dist-1, uint32(best.length)), best.length
}
