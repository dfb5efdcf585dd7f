// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// crcTable is the standard CRC-32 (IEEE 802.3) lookup table. The match
// finder only uses it to scatter single bytes into well-distributed hash
// values; it never computes or verifies an actual checksum.
var crcTable [256]uint32

func init() {
	const poly = 0xedb88320
	for i := range crcTable {
		c := uint32(i)
		for j := 0; j < 8; j++ {
			if c&1 != 0 {
				c = poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
}

// noPos marks an empty hash or chain slot.
const noPos int64 = -1

// matchCandidate is one match the finder reports: length bytes matching
// history dist positions behind the current position. Search reports
// candidates in order of strictly increasing length, as the optimal
// picker's price ladder expects.
type matchCandidate struct {
	length int
	dist   uint32
}

// hc4MatchFinder is the HC4 match finder: direct-indexed hash tables for
// 2- and 3-byte prefixes give an O(1) short-match check, and a 4-byte hash
// table backed by a chain of collisions (bounded to dictCap+1 entries,
// naturally evicting positions as the dictionary window slides) finds
// longer matches by walking up to depth candidates.
type hc4MatchFinder struct {
	dictCap   int
	hash2     []int64
	hash3     []int64
	hash4     []int64
	hash4Mask uint32
	chain     []int64
	niceLen   int
	depth     int
}

// newHC4MatchFinder creates a match finder sized for a dictionary of
// dictCap bytes. niceLen stops the chain walk early once a match that
// good is found; depth bounds how many chain links are followed per
// position.
func newHC4MatchFinder(dictCap, niceLen, depth int) *hc4MatchFinder {
	h4size := 1 << 10
	for h4size < dictCap && h4size < 1<<23 {
		h4size <<= 1
	}
	m := &hc4MatchFinder{
		dictCap:   dictCap,
		hash2:     make([]int64, 1<<10),
		hash3:     make([]int64, 1<<16),
		hash4:     make([]int64, h4size),
		hash4Mask: uint32(h4size - 1),
		chain:     make([]int64, dictCap+1),
		niceLen:   niceLen,
		depth:     depth,
	}
	m.Reset()
	return m
}

// Reset clears every hash table and the chain, as required when starting
// a fresh dictionary.
func (m *hc4MatchFinder) Reset() {
	for i := range m.hash2 {
		m.hash2[i] = noPos
	}
	for i := range m.hash3 {
		m.hash3[i] = noPos
	}
	for i := range m.hash4 {
		m.hash4[i] = noPos
	}
	for i := range m.chain {
		m.chain[i] = noPos
	}
}

func (m *hc4MatchFinder) slot(pos int64) int64 {
	return pos % int64(len(m.chain))
}

// hashes computes the 2-, 3- and 4-byte hash values for the bytes starting
// at a position, already masked to their respective table sizes.
func (m *hc4MatchFinder) hashes(b0, b1, b2, b3 byte) (h2, h3, h4 uint32) {
	h2raw := crcTable[b0] ^ uint32(b1)
	h3raw := h2raw ^ (uint32(b2) << 8)
	h4raw := h3raw ^ (crcTable[b3] << 5)
	h2 = h2raw & (1<<10 - 1)
	h3 = h3raw & (1<<16 - 1)
	h4 = h4raw & m.hash4Mask
	return
}

// insert records pos in all three hash tables and the chain, using the 4
// bytes starting at pos. The caller guarantees at least 4 bytes are
// available to read at pos.
func (m *hc4MatchFinder) insert(buf *EncoderDataBuffer, pos int64) {
	b0 := buf.byteAtPos(pos)
	b1 := buf.byteAtPos(pos + 1)
	b2 := buf.byteAtPos(pos + 2)
	b3 := buf.byteAtPos(pos + 3)
	h2, h3, h4 := m.hashes(b0, b1, b2, b3)
	m.hash2[h2] = pos
	m.hash3[h3] = pos
	slot := m.slot(pos)
	m.chain[slot] = m.hash4[h4]
	m.hash4[h4] = pos
}

// Insert records pos in the hash tables and chain without searching,
// equivalent to the classic match finder's "skip" operation used once a
// picker has committed to consuming a position without querying it
// directly (e.g. the interior bytes of a chosen match).
func (m *hc4MatchFinder) Insert(buf *EncoderDataBuffer, pos int64) {
	if buf.bufferedAt(pos) < 4 {
		return
	}
	m.insert(buf, pos)
}

// Search reports match candidates at pos without mutating any hash table
// or chain; callers that commit to consuming pos must separately call
// Insert once, so that positions explored speculatively by an optimal
// picker's lookahead are not inserted more than once. maxLen bounds how
// long a reported match may be. The result is ordered by strictly
// increasing length, as required by the optimal picker's price ladder.
func (m *hc4MatchFinder) Search(buf *EncoderDataBuffer, pos int64, maxLen int) []matchCandidate {
	var out []matchCandidate
	buffered := buf.bufferedAt(pos)
	if buffered < 2 {
		return out
	}
	b0 := buf.byteAtPos(pos)
	b1 := buf.byteAtPos(pos + 1)
	var b2, b3 byte
	have3 := buffered >= 3
	have4 := buffered >= 4
	if have3 {
		b2 = buf.byteAtPos(pos + 2)
	}
	if have4 {
		b3 = buf.byteAtPos(pos + 3)
	}
	h2, h3, h4 := m.hashes(b0, b1, b2, b3)

	bestLen := 1

	if p := m.hash2[h2]; p != noPos && p < pos {
		if dist := pos - p; dist <= int64(m.dictCap) {
			if n := buf.EqualBytes(pos, p, maxLen); n >= 2 && n > bestLen {
				bestLen = n
				out = append(out, matchCandidate{n, uint32(dist)})
			}
		}
	}
	if have3 {
		if p := m.hash3[h3]; p != noPos && p < pos {
			if dist := pos - p; dist <= int64(m.dictCap) {
				if n := buf.EqualBytes(pos, p, maxLen); n >= 3 && n > bestLen {
					bestLen = n
					out = append(out, matchCandidate{n, uint32(dist)})
				}
			}
		}
	}
	if have4 {
		p := m.hash4[h4]
		for steps := m.depth; p != noPos && p < pos && steps > 0; steps-- {
			dist := pos - p
			if dist > int64(m.dictCap) {
				break
			}
			if n := buf.EqualBytes(pos, p, maxLen); n > bestLen {
				bestLen = n
				out = append(out, matchCandidate{n, uint32(dist)})
				if n >= m.niceLen {
					break
				}
			}
			p = m.chain[m.slot(p)]
		}
	}

	return out
}
