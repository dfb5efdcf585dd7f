package lzma

import "fmt"

// directEncoder codes a fixed-width value bit by bit at the range coder's
// flat 1/2 probability rather than through an adaptive prob — used for
// the high bits of a distance slot, where the format defines no model to
// adapt. Width is limited to [1,32].
type directEncoder byte

// makeDirectEncoder returns an encoder for values of the given bit width.
// It panics if bits falls outside [1,32].
func makeDirectEncoder(bits int) directEncoder {
	if !(1 <= bits && bits <= 32) {
		panic(fmt.Errorf("lzma: direct encoder bit width %d out of range", bits))
	}
	return directEncoder(bits)
}

// Bits returns the encoder's configured bit width.
func (de directEncoder) Bits() int {
	return int(de)
}

// Encode writes v's bits most-significant first, each at probability 1/2.
func (de directEncoder) Encode(v uint32, e *rangeEncoder) error {
	for shift := int(de) - 1; shift >= 0; shift-- {
		if err := e.DirectEncodeBit(v >> uint(shift)); err != nil {
			return err
		}
	}
	return nil
}

// Price returns the cost of encoding any value at de's bit width; every
// value is equally likely under a flat 1/2 probability, so the value
// itself doesn't affect the cost.
func (de directEncoder) Price() uint32 {
	return directPrice(int(de))
}

// directDecoder is the decode-side counterpart of directEncoder.
type directDecoder byte

// makeDirectDecoder returns a decoder for values of the given bit width.
// It panics if bits falls outside [1,32].
func makeDirectDecoder(bits int) directDecoder {
	if !(1 <= bits && bits <= 32) {
		panic(fmt.Errorf("lzma: direct decoder bit width %d out of range", bits))
	}
	return directDecoder(bits)
}

// Bits returns the decoder's configured bit width.
func (dd directDecoder) Bits() int {
	return int(dd)
}

// Decode reads a value coded by Encode, most-significant bit first.
func (dd directDecoder) Decode(d *rangeDecoder) (v uint32, err error) {
	for i := int(dd) - 1; i >= 0; i-- {
		bit, err := d.DirectDecodeBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | bit
	}
	return v, nil
}
