// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// optWindowCap bounds how many positions ahead the optimal picker's
// shortest-path search looks; the reference encoder uses the same order
// of magnitude, trading a little ratio for a search that stays cheap.
const optWindowCap = 4096

// optNode is one position in the optimal picker's price DAG: the lowest
// price known to reach it from the window start, and which instruction
// arriving from an earlier node achieves that price.
type optNode struct {
	price uint32
	instr instruction
}

// pickOptimal runs a price-driven shortest-path search over a window of
// upcoming positions and returns the first instruction of the best path
// found. Relaxation considers literals, every rep distance, and every
// match candidate the finder reports at each node; every relaxation is a
// single instruction, and no two-hop links (such as literal+rep0) are
// relaxed. reps
// are held fixed at their value when entering the window: tracking how
// reps evolve along every candidate path would need a node per (position,
// rep-set) pair, which this port trades away for a window search cheap
// enough to run at every position.
func pickOptimal(e *Encoder) (instruction, int) {
	pos := e.dict.Pos()
	avail := e.dict.Buffered()
	if avail == 0 {
		return instruction{}, 0
	}
	winLen := avail
	if winLen > optWindowCap {
		winLen = optWindowCap
	}
	if winLen > maxLength {
		// a single match can't exceed maxLength anyway; no need for a
		// window larger than that plus a little slack
		winLen = maxLength + 2
		if winLen > avail {
			winLen = avail
		}
	}

	nodes := make([]optNode, winLen+1)
	for i := range nodes {
		nodes[i].price = infinityPrice
	}
	nodes[0].price = 0

	reps := e.st.reps

	relax := func(i int, price uint32, instr instruction) {
		if price < nodes[i].price {
			nodes[i].price = price
			nodes[i].instr = instr
		}
	}

	for i := 0; i < winLen; i++ {
		if nodes[i].price == infinityPrice {
			continue
		}
		base := nodes[i].price
		here := pos + int64(i)
		maxLen := winLen - i
		if maxLen > maxLength {
			maxLen = maxLength
		}
		posState := e.st.posState(here)

		// literal
		if i+1 <= winLen {
			curByte := e.byteAtLookahead(i)
			price := base + e.litPrice(i, curByte)
			relax(i+1, price, litInstr(curByte))
		}

		// rep matches, including the single-byte shortrep
		for r, dist := range reps {
			d := int64(dist) + 1
			n := e.dict.EqualBytes(here, here-d, maxLen)
			if n == 0 {
				continue
			}
			if r == 0 {
				price := base + e.shortRepPrice(posState)
				relax(i+1, price, shortRepInstr(0))
			}
			for l := 2; l <= n; l++ {
				price := base + e.repPrice(r, uint32(l), posState)
				relax(i+l, price, repInstr(r, uint32(l)))
			}
		}

		// new-distance matches from the finder
		matches := e.mf.Search(e.dict, here, maxLen)
		for _, c := range matches {
			if c.length < 2 {
				continue
			}
			price := base + e.matchPrice(c.dist-1, uint32(c.length), posState)
			relax(i+c.length, price, matchInstr(c.dist-1, uint32(c.length)))
		}
	}

	// Find the chosen path's first step by walking predecessors back from
	// the furthest reachable node, so the path covers as much of the
	// window as possible.
	end := winLen
	for end > 0 && nodes[end].price == infinityPrice {
		end--
	}
	if end == 0 {
		lit, _ := e.currentLiteral()
		return litInstr(lit), 1
	}

	// Walk back to find the first instruction: since we stored the
	// instruction reaching each node rather than a full predecessor
	// chain, recover the path by repeatedly stepping back by the
	// instruction length from end to 0.
	type step struct {
		instr instruction
		n     int
	}
	var path []step
	i := end
	for i > 0 {
		instr := nodes[i].instr
		n := instrConsumed(instr)
		if n <= 0 || n > i {
			// defensive: should not happen given relax() invariants
			lit, _ := e.currentLiteral()
			return litInstr(lit), 1
		}
		path = append(path, step{instr, n})
		i -= n
	}
	first := path[len(path)-1]
	return first.instr, first.n
}

// instrConsumed returns how many input bytes an instruction accounts for.
func instrConsumed(instr instruction) int {
	switch instr.kind {
	case instrLiteral:
		return 1
	case instrShortRep:
		return 1
	case instrMatch, instrRep:
		return int(instr.length)
	}
	return 0
}
