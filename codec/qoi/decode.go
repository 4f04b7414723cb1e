/*
NAME
  decode.go

DESCRIPTION
  decode.go implements the QOI decoder: header validation, chunk
  dispatch, and end-marker verification.

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

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a QOI byte stream into an Image. It validates the header
// magic, reads exactly width*height pixels worth of chunks, and verifies
// the trailing end marker. No partial Image is returned on any error.
func Decode(data []byte) (*Image, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func decode(data []byte) (*Image, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: header truncated", ErrUnexpectedEOF)
	}
	if string(data[0:4]) != magic {
		return nil, ErrBadMagic
	}

	img := &Image{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: Colorspace(data[13]),
	}
	if img.Channels != 3 && img.Channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, img.Channels)
	}
	if img.Colorspace != SRGB && img.Colorspace != Linear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorspace, img.Colorspace)
	}

	want := int(img.Width) * int(img.Height)
	pixels := make([]Pixel, 0, want)

	p := newPredictor()
	pos := headerLen

	for len(pixels) < want {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: chunk stream truncated at pixel %d/%d", ErrUnexpectedEOF, len(pixels), want)
		}
		tag := data[pos]
		pos++

		switch {
		case tag == tagRGBA:
			if pos+4 > len(data) {
				return nil, fmt.Errorf("%w: truncated QOI_RGBA chunk", ErrUnexpectedEOF)
			}
			cp := Pixel{data[pos], data[pos+1], data[pos+2], data[pos+3]}
			pos += 4
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag == tagRGB:
			if pos+3 > len(data) {
				return nil, fmt.Errorf("%w: truncated QOI_RGB chunk", ErrUnexpectedEOF)
			}
			cp := Pixel{data[pos], data[pos+1], data[pos+2], p.prev.A}
			pos += 3
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagIndex:
			cp := p.cache[tag&0x3f]
			// Re-applying the cache write and predictor update is
			// idempotent here since cp is already C[h(cp)] by
			// construction; kept for symmetry with the encoder's
			// per-pixel observe call.
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagDiff:
			dr := int8((tag>>4)&0x3) - 2
			dg := int8((tag>>2)&0x3) - 2
			db := int8(tag&0x3) - 2
			cp := Pixel{
				R: p.prev.R + uint8(dr),
				G: p.prev.G + uint8(dg),
				B: p.prev.B + uint8(db),
				A: p.prev.A,
			}
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagLuma:
			if pos+1 > len(data) {
				return nil, fmt.Errorf("%w: truncated QOI_LUMA chunk", ErrUnexpectedEOF)
			}
			u := data[pos]
			pos++
			dg := int8(tag&0x3f) - 32
			dr := int8((u>>4)&0xf) - 8 + dg
			db := int8(u&0xf) - 8 + dg
			cp := Pixel{
				R: p.prev.R + uint8(dr),
				G: p.prev.G + uint8(dg),
				B: p.prev.B + uint8(db),
				A: p.prev.A,
			}
			p.observe(cp)
			pixels = append(pixels, cp)

		default: // tag&tagMask == tagRun
			n := int(tag&0x3f) + 1
			if len(pixels)+n > want {
				n = want - len(pixels)
			}
			for k := 0; k < n; k++ {
				pixels = append(pixels, p.prev)
			}
			// A run never changes p.prev or the cache: every emitted
			// pixel equals p.prev already.
		}
	}

	if pos+endMarkerLen > len(data) {
		return nil, fmt.Errorf("%w: stream ends before end marker", ErrUnexpectedEOF)
	}
	for i := 0; i < endMarkerLen; i++ {
		if data[pos+i] != endMarker[i] {
			return nil, ErrMissingEndMarker
		}
	}

	img.Pixels = pixels
	return img, nil
}
