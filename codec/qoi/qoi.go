/*
NAME
  qoi.go

DESCRIPTION
  qoi.go defines the wire framing constants, tag bytes, and the shared
  predictor state used by both the encoder and decoder.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoi

const (
	magic = "qoif"

	headerLen = 14

	// endMarkerLen is the length in bytes of the sentinel that closes
	// every QOI stream.
	endMarkerLen = 8

	// cacheSize is the number of slots in the rolling pixel cache.
	cacheSize = 64

	// minRun and maxRun bound a single QOI_RUN chunk's pixel count. The
	// upper bound keeps the encoded byte in 0xc0..0xfd, away from the
	// QOI_RGB/QOI_RGBA exact-match bytes 0xfe/0xff.
	minRun = 1
	maxRun = 62
)

// endMarker is the literal 8-byte sentinel that closes every QOI stream.
var endMarker = [endMarkerLen]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Tag bytes and masks. QOI_RGB and QOI_RGBA are matched by exact byte
// value; the remaining four tags are discriminated by their top two bits.
// The exact-match tags MUST be checked before the top-bit switch, since
// 0xfe and 0xff both have top bits 11 and would otherwise be misread as
// QOI_RUN.
const (
	tagMask = 0xc0 // top two bits

	tagRGB  = 0xfe // full-byte match
	tagRGBA = 0xff // full-byte match

	tagIndex = 0x00 // 00xxxxxx
	tagDiff  = 0x40 // 01xxxxxx
	tagLuma  = 0x80 // 10xxxxxx
	tagRun   = 0xc0 // 11xxxxxx
)

// predictor holds the mutable state shared by one encode or decode
// invocation: the previously emitted/decoded pixel and the 64-entry
// rolling cache. It is created fresh for each call and never persists or
// is shared across invocations, so concurrent calls on disjoint images
// never share mutable state.
type predictor struct {
	prev  Pixel
	cache [cacheSize]Pixel
}

// newPredictor returns predictor state in its initial configuration: the
// previous pixel at (0,0,0,255) and the cache zero-filled, i.e. every
// slot at (0,0,0,0). The mismatch between these two initial alphas is
// intentional, matching the reference encoder/decoder; it is not a bug
// to "fix".
func newPredictor() *predictor {
	return &predictor{prev: Pixel{0, 0, 0, 255}}
}

// observe records cp as the most recently produced pixel, updating both
// the previous-pixel predictor and the cache slot it hashes to. Called
// exactly once per pixel produced by a non-run chunk; pixels covered by a
// run equal the already-current p.prev and leave both fields unchanged.
func (p *predictor) observe(cp Pixel) {
	p.prev = cp
	p.cache[cp.hash()] = cp
}

// diff8 computes a-b in 8-bit wraparound and reinterprets the bit pattern
// as two's complement, matching the reference encoder's delta arithmetic.
func diff8(a, b uint8) int8 {
	return int8(a - b) // unsigned wraparound reinterpreted as two's complement.
}
