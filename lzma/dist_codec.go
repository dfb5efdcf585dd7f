package lzma

import "github.com/arduano/lzma/basics/u32"

// Constants used by the distance codec.
const (
	// minimum supported distance
	minDistance = 1
	// maximum supported distance
	maxDistance = 1 << 32
	// number of the supported len states
	lenStates = 4
	// start for the position models
	startPosModel = 4
	// first index with align bits support
	endPosModel = 14
	// bits for the position slots
	posSlotBits = 6
	// number of align bits
	alignBits = 4
	// maximum position slot
	maxPosSlot = 63
)

// distCodec provides encoding and decoding of distance values. A distance
// is first reduced to a 6-bit slot; slots below startPosModel are literal,
// slots below endPosModel refine the footer with a reverse bit-tree, and
// the remaining slots split the footer into direct bits plus a shared
// 4-bit alignment tree.
type distCodec struct {
	posSlotCodecs [lenStates]bitTreeCodec
	posModel      [endPosModel - startPosModel]bitTreeReverseCodec
	alignCodec    bitTreeReverseCodec
}

// newDistCodec creates a new distance codec.
func newDistCodec() *distCodec {
	dc := new(distCodec)
	for i := range dc.posSlotCodecs {
		dc.posSlotCodecs[i] = makeBitTreeCodec(posSlotBits)
	}
	for i := range dc.posModel {
		posSlot := startPosModel + i
		bits := (posSlot >> 1) - 1
		dc.posModel[i] = makeBitTreeReverseCodec(bits)
	}
	dc.alignCodec = makeBitTreeReverseCodec(alignBits)
	return dc
}

// lenState converts the match length l to a supported lenState value:
// l-minLength, capped at lenStates-1.
func lenState(l uint32) uint32 {
	l -= minLength
	if l >= lenStates {
		l = lenStates - 1
	}
	return l
}

// distSlot computes the 6-bit slot and, for slot >= startPosModel, the
// number of footer bits for a distance offset.
func distSlot(dist uint32) (slot uint32, bits uint32) {
	if dist < startPosModel {
		return dist, 0
	}
	bits = uint32(30 - u32.NLZ(dist))
	slot = startPosModel - 2 + (bits << 1)
	slot += (dist >> bits) & 1
	return slot, bits
}

// Encode encodes the distance offset dist using the parameter l, which is
// the match length (used to select the lenState tree). dist is the match
// distance minus one.
func (dc *distCodec) Encode(e *rangeEncoder, dist uint32, l uint32) (err error) {
	posSlot, bits := distSlot(dist)

	if err = dc.posSlotCodecs[lenState(l)].Encode(posSlot, e); err != nil {
		return
	}

	switch {
	case posSlot < startPosModel:
		return nil
	case posSlot < endPosModel:
		tc := &dc.posModel[posSlot-startPosModel]
		return tc.Encode(dist, e)
	}
	dic := makeDirectEncoder(int(bits - alignBits))
	if err = dic.Encode(dist>>alignBits, e); err != nil {
		return
	}
	return dc.alignCodec.Encode(dist, e)
}

// Decode decodes the distance offset using the parameter l, the match
// length. Add one to the returned value to get the actual match distance.
func (dc *distCodec) Decode(d *rangeDecoder, l uint32) (dist uint32, err error) {
	posSlot, err := dc.posSlotCodecs[lenState(l)].Decode(d)
	if err != nil {
		return
	}

	if posSlot < startPosModel {
		return posSlot, nil
	}

	bits := (posSlot >> 1) - 1
	dist = (2 | (posSlot & 1)) << bits
	var v uint32
	if posSlot < endPosModel {
		tc := &dc.posModel[posSlot-startPosModel]
		if v, err = tc.Decode(d); err != nil {
			return 0, err
		}
		dist += v
		return dist, nil
	}

	dic := makeDirectDecoder(int(bits - alignBits))
	if v, err = dic.Decode(d); err != nil {
		return 0, err
	}
	dist += v << alignBits
	if v, err = dc.alignCodec.Decode(d); err != nil {
		return 0, err
	}
	dist += v
	return dist, nil
}

// price computes the cost of encoding dist under l without mutating any
// probability.
func (dc *distCodec) price(dist uint32, l uint32) uint32 {
	posSlot, bits := distSlot(dist)
	price := dc.posSlotCodecs[lenState(l)].Price(posSlot)

	switch {
	case posSlot < startPosModel:
		return price
	case posSlot < endPosModel:
		return price + dc.posModel[posSlot-startPosModel].Price(dist)
	}
	price += directPrice(int(bits - alignBits))
	return price + dc.alignCodec.Price(dist)
}
