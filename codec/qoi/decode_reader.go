/*
NAME
  decode_reader.go

DESCRIPTION
  decode_reader.go provides DecodeReader, a chunked-I/O variant of
  Decode that consumes its input incrementally via byteScanner rather
  than requiring the whole stream in memory up front. Both whole-buffer
  and chunked I/O produce identical Images; this is the chunked form,
  useful when the source is a pipe or socket rather than a byte slice.

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
	"io"
)

// DecodeReader parses a QOI stream read incrementally from r. It shares
// all decode semantics with Decode; only the I/O strategy differs.
func DecodeReader(r io.Reader) (*Image, error) {
	s := newByteScanner(r, make([]byte, 4096))

	header := make([]byte, headerLen)
	if err := s.ReadFull(header); err != nil {
		return nil, wrapReadErr(err, "header truncated")
	}
	if string(header[0:4]) != magic {
		return nil, ErrBadMagic
	}

	img := &Image{
		Width:      binary.BigEndian.Uint32(header[4:8]),
		Height:     binary.BigEndian.Uint32(header[8:12]),
		Channels:   header[12],
		Colorspace: Colorspace(header[13]),
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

	for len(pixels) < want {
		tag, err := s.ReadByte()
		if err != nil {
			return nil, wrapReadErr(err, fmt.Sprintf("chunk stream truncated at pixel %d/%d", len(pixels), want))
		}

		switch {
		case tag == tagRGBA:
			var body [4]byte
			if err := s.ReadFull(body[:]); err != nil {
				return nil, wrapReadErr(err, "truncated QOI_RGBA chunk")
			}
			cp := Pixel{body[0], body[1], body[2], body[3]}
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag == tagRGB:
			var body [3]byte
			if err := s.ReadFull(body[:]); err != nil {
				return nil, wrapReadErr(err, "truncated QOI_RGB chunk")
			}
			cp := Pixel{body[0], body[1], body[2], p.prev.A}
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagIndex:
			cp := p.cache[tag&0x3f]
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagDiff:
			dr := int8((tag>>4)&0x3) - 2
			dg := int8((tag>>2)&0x3) - 2
			db := int8(tag&0x3) - 2
			cp := Pixel{p.prev.R + uint8(dr), p.prev.G + uint8(dg), p.prev.B + uint8(db), p.prev.A}
			p.observe(cp)
			pixels = append(pixels, cp)

		case tag&tagMask == tagLuma:
			u, err := s.ReadByte()
			if err != nil {
				return nil, wrapReadErr(err, "truncated QOI_LUMA chunk")
			}
			dg := int8(tag&0x3f) - 32
			dr := int8((u>>4)&0xf) - 8 + dg
			db := int8(u&0xf) - 8 + dg
			cp := Pixel{p.prev.R + uint8(dr), p.prev.G + uint8(dg), p.prev.B + uint8(db), p.prev.A}
			p.observe(cp)
			pixels = append(pixels, cp)

		default: // tagRun
			n := int(tag&0x3f) + 1
			if len(pixels)+n > want {
				n = want - len(pixels)
			}
			for k := 0; k < n; k++ {
				pixels = append(pixels, p.prev)
			}
		}
	}

	var tail [endMarkerLen]byte
	if err := s.ReadFull(tail[:]); err != nil {
		return nil, wrapReadErr(err, "stream ends before end marker")
	}
	if tail != endMarker {
		return nil, ErrMissingEndMarker
	}

	img.Pixels = pixels
	return img, nil
}

func wrapReadErr(err error, msg string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %s", ErrUnexpectedEOF, msg)
	}
	return fmt.Errorf("qoi: %s: %w", msg, err)
}
