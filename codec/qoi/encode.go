/*
NAME
  encode.go

DESCRIPTION
  encode.go implements the QOI encoder: header framing, the six-way tag
  classifier, and run detection.

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

import "encoding/binary"

// Encode converts img into a QOI byte stream. It fails with
// ErrInvalidChannels if img.Channels is not 3 or 4, or ErrInvalidColorspace
// if img.Colorspace is not 0 or 1. Encode is a pure function of img: two
// independent calls on the same image produce byte-identical output.
func Encode(img *Image) ([]byte, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerLen+len(img.Pixels)*2+endMarkerLen)
	out = appendHeader(out, img)

	p := newPredictor()
	width := int(img.Width)
	pixels := img.Pixels

	for i := 0; i < len(pixels); {
		cp := pixels[i]

		if i > 0 && cp == p.prev {
			// Run detection: extend the run along the current scanline,
			// never across a row boundary, up to maxRun pixels. The first
			// pixel is always classified by appendPixel, even when it
			// equals the initial predictor pixel.
			rowEnd := (i/width + 1) * width
			limit := rowEnd
			if i+maxRun < limit {
				limit = i + maxRun
			}
			j := i + 1
			for j < limit && pixels[j] == p.prev {
				j++
			}
			runLen := j - i
			out = append(out, tagRun|byte(runLen-1))
			// The run's pixels all equal p.prev already, so p.prev is
			// unchanged; the cache slot for p.prev was set when it was
			// first established.
			i = j
			continue
		}

		out = appendPixel(out, p, cp)
		p.observe(cp)
		i++
	}

	out = append(out, endMarker[:]...)
	return out, nil
}

// appendHeader appends the 14-byte QOI header for img to dst.
func appendHeader(dst []byte, img *Image) []byte {
	dst = append(dst, magic...)
	dst = binary.BigEndian.AppendUint32(dst, img.Width)
	dst = binary.BigEndian.AppendUint32(dst, img.Height)
	dst = append(dst, img.Channels, byte(img.Colorspace))
	return dst
}

// appendPixel classifies cp against the predictor state p (which has not
// yet observed cp) and appends the chosen chunk to dst. Priority, in
// order: index match, alpha change, small diff, luma diff, literal RGB.
// This order is fixed and MUST NOT be reordered: an encoder that tried
// DIFF before INDEX, for instance, would still produce a valid stream
// but would not match the reference encoder byte-for-byte.
func appendPixel(dst []byte, p *predictor, cp Pixel) []byte {
	if idx := cp.hash(); p.cache[idx] == cp {
		return append(dst, tagIndex|idx)
	}

	if cp.A != p.prev.A {
		return append(dst, tagRGBA, cp.R, cp.G, cp.B, cp.A)
	}

	dr := diff8(cp.R, p.prev.R)
	dg := diff8(cp.G, p.prev.G)
	db := diff8(cp.B, p.prev.B)

	if inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1) {
		return append(dst, tagDiff|byte(dr+2)<<4|byte(dg+2)<<2|byte(db+2))
	}

	drDg := dr - dg
	dbDg := db - dg
	if inRange(dg, -32, 31) && inRange(drDg, -8, 7) && inRange(dbDg, -8, 7) {
		dst = append(dst, tagLuma|byte(dg+32))
		return append(dst, byte(drDg+8)<<4|byte(dbDg+8))
	}

	return append(dst, tagRGB, cp.R, cp.G, cp.B)
}

func inRange(v int8, lo, hi int8) bool { return v >= lo && v <= hi }
