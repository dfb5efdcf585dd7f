package lzma

// maxPosBits defines the number of bits of the position value that are used
// to compute the posState value. The value is used to select the tree codec
// for length encoding and decoding.
const maxPosBits = 4

// minLength and maxLength give the minimum and maximum values for encoding
// and decoding length values.
const (
	minLength = 2
	maxLength = minLength + 16 + 256 - 1
)

// lengthCodec supports the encoding of the length value: a choice bit
// selects between a low tier (8 values, one tree per pos_state), a mid tier
// (8 values, one tree per pos_state) and a high tier (256 values, one
// shared tree).
type lengthCodec struct {
	choice [2]prob
	low    [1 << maxPosBits]bitTreeCodec
	mid    [1 << maxPosBits]bitTreeCodec
	high   bitTreeCodec
}

// newLengthCodec creates and initializes a new length codec.
func newLengthCodec() *lengthCodec {
	lc := new(lengthCodec)
	for i := range lc.choice {
		lc.choice[i] = probInit
	}
	for i := range lc.low {
		lc.low[i] = makeBitTreeCodec(3)
	}
	for i := range lc.mid {
		lc.mid[i] = makeBitTreeCodec(3)
	}
	lc.high = makeBitTreeCodec(8)
	return lc
}

// Encode encodes a length value, posState is derived from the current
// uncompressed position.
func (lc *lengthCodec) Encode(e *rangeEncoder, l uint32, posState uint32) (err error) {
	l -= minLength
	if l < 8 {
		if err = e.EncodeBit(0, &lc.choice[0]); err != nil {
			return
		}
		return lc.low[posState].Encode(l, e)
	}
	if err = e.EncodeBit(1, &lc.choice[0]); err != nil {
		return
	}
	if l < 16 {
		if err = e.EncodeBit(0, &lc.choice[1]); err != nil {
			return
		}
		return lc.mid[posState].Encode(l-8, e)
	}
	if err = e.EncodeBit(1, &lc.choice[1]); err != nil {
		return
	}
	return lc.high.Encode(l-16, e)
}

// Decode decodes a length value.
func (lc *lengthCodec) Decode(d *rangeDecoder, posState uint32) (l uint32, err error) {
	var b uint32
	if b, err = d.DecodeBit(&lc.choice[0]); err != nil {
		return
	}
	if b == 0 {
		l, err = lc.low[posState].Decode(d)
		l += minLength
		return
	}
	if b, err = d.DecodeBit(&lc.choice[1]); err != nil {
		return
	}
	if b == 0 {
		l, err = lc.mid[posState].Decode(d)
		l += minLength + 8
		return
	}
	l, err = lc.high.Decode(d)
	l += minLength + 16
	return
}

// price computes the cost of encoding l uncached, without mutating any
// probability.
func (lc *lengthCodec) price(l uint32, posState uint32) uint32 {
	l -= minLength
	if l < 8 {
		return lc.choice[0].price(0) + lc.low[posState].Price(l)
	}
	p := lc.choice[0].price(1)
	if l < 16 {
		return p + lc.choice[1].price(0) + lc.mid[posState].Price(l-8)
	}
	return p + lc.choice[1].price(1) + lc.high.Price(l-16)
}

// lengthPriceRefreshInterval bounds how many cached Price lookups may pass
// between rebuilds of a lengthPriceCache's table. The counter is one per
// cache, shared by all pos_states, and is not advanced by Encode calls on
// the underlying lengthCodec. The choice probabilities
// drift slowly enough that this keeps the optimal picker's cost model close
// to current without recomputing on every call.
const lengthPriceRefreshInterval = 32

// lengthPriceCache memoizes lengthCodec.price across pos_states for the
// lengths the optimal picker actually considers (up to niceLen entries per
// pos_state), refreshing periodically rather than on every price lookup.
type lengthPriceCache struct {
	lc        *lengthCodec
	niceLen   int
	prices    [][]uint32 // prices[posState][l-minLength]
	counter   int
}

// newLengthPriceCache creates a cache sized for lengths [minLength, minLength+niceLen).
func newLengthPriceCache(lc *lengthCodec, niceLen int) *lengthPriceCache {
	c := &lengthPriceCache{lc: lc, niceLen: niceLen}
	c.prices = make([][]uint32, 1<<maxPosBits)
	for i := range c.prices {
		c.prices[i] = make([]uint32, niceLen)
	}
	c.update()
	return c
}

// update recomputes the whole table from the current lengthCodec state.
func (c *lengthPriceCache) update() {
	for posState := 0; posState < 1<<maxPosBits; posState++ {
		row := c.prices[posState]
		for i := range row {
			row[i] = c.lc.price(uint32(minLength+i), uint32(posState))
		}
	}
	c.counter = lengthPriceRefreshInterval
}

// Price returns a cached price for l at posState, refreshing the whole
// table if the refresh interval has elapsed. A length outside the table's
// range is priced directly and does not advance the refresh counter.
func (c *lengthPriceCache) Price(l uint32, posState uint32) uint32 {
	idx := int(l) - minLength
	if idx < 0 || idx >= c.niceLen {
		return c.lc.price(l, posState)
	}
	c.counter--
	if c.counter <= 0 {
		c.update()
	}
	return c.prices[posState][idx]
}
