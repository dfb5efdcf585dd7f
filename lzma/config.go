// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lzma

import (
	"errors"

	"github.com/arduano/lzma/xlog"
)

// PickerKind selects which instruction picker Encoder uses to turn match
// finder output into a packet stream.
type PickerKind int

const (
	// PickerFast runs a single greedy lookahead pass: fast, somewhat
	// worse compression.
	PickerFast PickerKind = iota
	// PickerOptimal runs the price-driven shortest-path search over a
	// window of upcoming positions: slower, better compression.
	PickerOptimal
)

// Default tuning values, matching the reference encoder's defaults.
const (
	defaultDictCap  = 8 << 20
	defaultNiceLen  = 64
	defaultDepth    = 0 // 0 means "derive from niceLen"
	minNiceLen      = 2
	maxNiceLen      = maxLength
)

// Config collects every parameter needed to construct an Encoder (Decoder
// takes its parameters from the stream header): the three LZMA properties, the dictionary size, match finder
// tuning, which picker to run, the uncompressed size (this port requires
// it to be known ahead of time), and a debug logger.
type Config struct {
	Properties Properties
	DictCap    int
	NiceLen    int
	Depth      int
	Picker     PickerKind

	// Size is the exact uncompressed size. This port always writes it
	// into the header rather than relying on an end-of-stream marker,
	// so it must be non-negative.
	Size int64

	// Logger receives diagnostic messages about the encoder's
	// progress: the header it wrote, bytes consumed per Write, and the
	// final dictionary position at Close. It is called once per
	// NewEncoder/Write/Close invocation, never per packet or per bit, so
	// a real logger costs nothing like per-symbol overhead. Defaults to
	// xlog.Quiet. Decoder has no Config parameter and does not log.
	Logger xlog.Logger
}

// fill applies defaults to zero-valued fields.
func (c *Config) fill() {
	if c.DictCap == 0 {
		c.DictCap = defaultDictCap
	}
	if c.NiceLen == 0 {
		c.NiceLen = defaultNiceLen
	}
	if c.Depth == 0 {
		c.Depth = 4 + c.NiceLen/4
	}
	if c.Logger == nil {
		c.Logger = xlog.Quiet
	}
}

// verify checks that the configuration is usable, after fill has been
// called.
func (c *Config) verify() error {
	if err := c.Properties.verify(); err != nil {
		return err
	}
	// The classic header byte can express lc+lp up to 12, but the
	// reference encoder never emits that combination; this port holds
	// new encoders to the canonical bound while still decoding any
	// in-range header a lenient producer might have written.
	if c.Properties.LC+c.Properties.LP > 4 {
		return rangeError{"lc+lp", c.Properties.LC + c.Properties.LP}
	}
	if !(MinDictSize <= c.DictCap && c.DictCap <= MaxDictSize) {
		return rangeError{"DictCap", c.DictCap}
	}
	if !(minNiceLen <= c.NiceLen && c.NiceLen <= maxNiceLen) {
		return rangeError{"NiceLen", c.NiceLen}
	}
	if c.Depth < 0 {
		return negError{"Depth", c.Depth}
	}
	if c.Size < 0 {
		return errors.New("lzma: Config.Size must be known and non-negative")
	}
	if c.Picker != PickerFast && c.Picker != PickerOptimal {
		return rangeError{"Picker", c.Picker}
	}
	return nil
}

// Preset returns a Config tuned for one of ten compression levels,
// mirroring the classic LZMA SDK presets 0 (fastest) through 9 (best
// ratio). Levels below 5 pick the fast greedy picker; 5 and above use the
// optimal picker with increasing dictionary size, nice length and depth.
func Preset(level int) Config {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}
	dictCaps := [...]int{
		1 << 18, 1 << 20, 1 << 21, 1 << 22, 1 << 22,
		1 << 23, 1 << 23, 1 << 24, 1 << 25, 1 << 26,
	}
	niceLens := [...]int{32, 32, 32, 32, 32, 64, 64, 128, 192, 273}
	c := Config{
		Properties: defaultProperties,
		DictCap:    dictCaps[level],
		NiceLen:    niceLens[level],
		Picker:     PickerFast,
	}
	if level >= 5 {
		c.Picker = PickerOptimal
	}
	c.fill()
	return c
}
