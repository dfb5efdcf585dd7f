// Copyright 2015 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lzma allows the decoding and encoding of classic LZMA streams.
//
// The types Encoder and Decoder provide the stream-level API: Encoder
// wraps an io.Writer and accepts uncompressed bytes through Write, writing
// the 13-byte classic header followed by the range-coded packet stream;
// Decoder wraps an io.Reader, parses that header, and reconstructs the
// original bytes into an io.Writer via Decode. Both require the
// uncompressed size to be known ahead of time (see Config.Size); this
// port does not support the end-of-stream-marker variant of the format.
//
// The package is written completely in Go and doesn't rely on any external
// library for the codec itself.
package lzma
