// Copyright 2014-2016 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

// packetCodec drives the range encoder/decoder through the LZMA packet
// state machine: for every instruction it consults and updates exactly
// the probabilities that the reference packet format defines, and keeps
// the four most-recently-used distances in sync with what the decoder
// will reconstruct.
type packetCodec struct {
	st *state
}

func newPacketCodec(st *state) *packetCodec {
	return &packetCodec{st: st}
}

// encode writes instr as a sequence of range-coded bits and updates the
// state machine and rep distances to match. dictHead and prevByte give the
// literal coder the position and preceding byte it needs to pick a
// subcoder and, in states 7-11, a match byte to diff against.
func (pc *packetCodec) encode(re *rangeEncoder, instr instruction, posState uint32, dictHead int64, prevByte byte, matchByteAt func(dist uint32) (byte, error)) error {
	st := pc.st
	switch instr.kind {
	case instrLiteral:
		if err := re.EncodeBit(0, &st.isMatch[(st.state<<maxPosBits)+posState]); err != nil {
			return err
		}
		litState := st.litState(prevByte, dictHead)
		var matchByte byte
		if st.state >= 7 {
			var err error
			matchByte, err = matchByteAt(st.reps[0] + 1)
			if err != nil {
				return err
			}
		}
		if err := st.litCodec.Encode(re, instr.literal, st.state, matchByte, litState); err != nil {
			return err
		}
		st.updateStateLiteral()
		return nil
	case instrMatch:
		if err := re.EncodeBit(1, &st.isMatch[(st.state<<maxPosBits)+posState]); err != nil {
			return err
		}
		if err := re.EncodeBit(0, &st.isRep[st.state]); err != nil {
			return err
		}
		if err := st.lenCodec.Encode(re, instr.length, posState); err != nil {
			return err
		}
		if err := st.distCodec.Encode(re, instr.distance, instr.length); err != nil {
			return err
		}
		st.pushRep(instr.distance, 0)
		st.updateStateMatch()
		return nil
	case instrRep:
		if err := re.EncodeBit(1, &st.isMatch[(st.state<<maxPosBits)+posState]); err != nil {
			return err
		}
		if err := re.EncodeBit(1, &st.isRep[st.state]); err != nil {
			return err
		}
		if err := pc.encodeRepIndex(re, instr.repIndex); err != nil {
			return err
		}
		if instr.repIndex == 0 {
			if err := re.EncodeBit(1, &st.isRepG0Long[(st.state<<maxPosBits)+posState]); err != nil {
				return err
			}
		}
		if err := st.repLenCodec.Encode(re, instr.length, posState); err != nil {
			return err
		}
		st.useRep(instr.repIndex)
		st.updateStateRep()
		return nil
	case instrShortRep:
		if err := re.EncodeBit(1, &st.isMatch[(st.state<<maxPosBits)+posState]); err != nil {
			return err
		}
		if err := re.EncodeBit(1, &st.isRep[st.state]); err != nil {
			return err
		}
		if err := re.EncodeBit(0, &st.isRepG0[st.state]); err != nil {
			return err
		}
		if err := re.EncodeBit(0, &st.isRepG0Long[(st.state<<maxPosBits)+posState]); err != nil {
			return err
		}
		st.updateStateShortRep()
		return nil
	}
	return lzmaError{"unknown instruction kind"}
}

// encodeRepIndex encodes which of the four reps a rep packet reuses via
// the isRepG0/isRepG1/isRepG2 cascade. isRepG0Long is handled separately
// by the caller since its meaning (short rep vs long rep on rep0) depends
// on more than just which rep index was chosen.
func (pc *packetCodec) encodeRepIndex(re *rangeEncoder, idx int) error {
	st := pc.st
	if idx == 0 {
		return re.EncodeBit(0, &st.isRepG0[st.state])
	}
	if err := re.EncodeBit(1, &st.isRepG0[st.state]); err != nil {
		return err
	}
	if idx == 1 {
		return re.EncodeBit(0, &st.isRepG1[st.state])
	}
	if err := re.EncodeBit(1, &st.isRepG1[st.state]); err != nil {
		return err
	}
	if idx == 2 {
		return re.EncodeBit(0, &st.isRepG2[st.state])
	}
	return re.EncodeBit(1, &st.isRepG2[st.state])
}

// decodeRepIndex mirrors encodeRepIndex.
func (pc *packetCodec) decodeRepIndex(rd *rangeDecoder) (int, error) {
	st := pc.st
	bit, err := rd.DecodeBit(&st.isRepG0[st.state])
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return 0, nil
	}
	bit, err = rd.DecodeBit(&st.isRepG1[st.state])
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return 1, nil
	}
	bit, err = rd.DecodeBit(&st.isRepG2[st.state])
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		return 2, nil
	}
	return 3, nil
}

// decode reads one packet from rd and returns the instruction it encodes,
// updating the state machine and rep distances to match. dictHead and
// prevByte give the literal coder the context it needs; byteAt fetches a
// history byte relative to the current dictionary head, used for the
// matched-literal bank and is otherwise unused.
func (pc *packetCodec) decode(rd *rangeDecoder, posState uint32, dictHead int64, prevByte byte, byteAt func(dist uint32) (byte, error)) (instruction, error) {
	st := pc.st
	isMatch, err := rd.DecodeBit(&st.isMatch[(st.state<<maxPosBits)+posState])
	if err != nil {
		return instruction{}, err
	}
	if isMatch == 0 {
		litState := st.litState(prevByte, dictHead)
		var matchByte byte
		if st.state >= 7 {
			matchByte, err = byteAt(st.reps[0] + 1)
			if err != nil {
				return instruction{}, err
			}
		}
		s, err := st.litCodec.Decode(rd, st.state, matchByte, litState)
		if err != nil {
			return instruction{}, err
		}
		st.updateStateLiteral()
		return litInstr(s), nil
	}

	isRep, err := rd.DecodeBit(&st.isRep[st.state])
	if err != nil {
		return instruction{}, err
	}
	if isRep == 0 {
		l, err := st.lenCodec.Decode(rd, posState)
		if err != nil {
			return instruction{}, err
		}
		dist, err := st.distCodec.Decode(rd, l)
		if err != nil {
			return instruction{}, err
		}
		st.pushRep(dist, 0)
		st.updateStateMatch()
		return matchInstr(dist, l), nil
	}

	idx, err := pc.decodeRepIndex(rd)
	if err != nil {
		return instruction{}, err
	}
	if idx == 0 {
		long, err := rd.DecodeBit(&st.isRepG0Long[(st.state<<maxPosBits)+posState])
		if err != nil {
			return instruction{}, err
		}
		if long == 0 {
			st.updateStateShortRep()
			return shortRepInstr(0), nil
		}
	}
	l, err := st.repLenCodec.Decode(rd, posState)
	if err != nil {
		return instruction{}, err
	}
	st.useRep(idx)
	st.updateStateRep()
	return repInstr(idx, l), nil
}
