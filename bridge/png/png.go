/*
NAME
  png.go

DESCRIPTION
  png.go bridges between qoi.Image and PNG-encoded bytes. It is a thin
  collaborator: the QOI core never touches PNG directly. This bridge
  uses the standard image/png package, since no third-party PNG codec
  is available to reach for here.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package png bridges PNG-encoded bytes and qoi.Image values.
package png

import (
	"bytes"
	"image"
	"image/color"
	stdpng "image/png"

	"github.com/pkg/errors"

	"github.com/ausocean/qoi/codec/qoi"
	"github.com/ausocean/utils/logging"
)

// ErrUnsupportedDepth is returned when the source PNG is not 8 bits per
// channel. The QOI core is never invoked in that case.
var ErrUnsupportedDepth = errors.New("png: unsupported bit depth, want 8 bits per channel")

// Decode reads a PNG image from data and returns it as a qoi.Image with
// channels set to 4 if the source carries alpha, or 3 otherwise.
func Decode(data []byte, l logging.Logger) (*qoi.Image, error) {
	l.Debug("decoding png source", "bytes", len(data))

	m, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "png: could not decode image")
	}
	if bitDepthOf(m) != 8 {
		return nil, ErrUnsupportedDepth
	}

	channels := uint8(3)
	if !isOpaque(m) {
		channels = 4
	}

	b := m.Bounds()
	pixels := make([]qoi.Pixel, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pixels = append(pixels, qoi.Pixel{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	l.Info("decoded png", "width", b.Dx(), "height", b.Dy(), "channels", channels)
	return &qoi.Image{
		Width:      uint32(b.Dx()),
		Height:     uint32(b.Dy()),
		Channels:   channels,
		Colorspace: qoi.SRGB,
		Pixels:     pixels,
	}, nil
}

// Encode renders img as PNG bytes.
func Encode(img *qoi.Image, l logging.Logger) ([]byte, error) {
	l.Debug("encoding png output", "width", img.Width, "height", img.Height, "channels", img.Channels)

	m := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	for y := 0; y < int(img.Height); y++ {
		for x := 0; x < int(img.Width); x++ {
			p := img.Pixels[y*int(img.Width)+x]
			m.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}

	var buf bytes.Buffer
	if err := stdpng.Encode(&buf, m); err != nil {
		return nil, errors.Wrap(err, "png: could not encode image")
	}
	return buf.Bytes(), nil
}

// bitDepthOf returns the per-channel bit depth implied by m's concrete
// type. image/png decodes into one of these concrete image types for
// every PNG color type; a type switch is used rather than comparing
// color.Model values directly, since color.Model implementations
// (e.g. color.RGBAModel) have a func-typed underlying value and
// comparing two such interface values panics at runtime. 16-bit and
// paletted/CMYK sources are outside this bridge's 8-bit planar
// RGB/RGBA contract.
func bitDepthOf(m image.Image) int {
	switch m.(type) {
	case *image.RGBA, *image.NRGBA, *image.Gray:
		return 8
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return 16
	default:
		return 0
	}
}

// isOpaque reports whether every pixel of m has full alpha. Concrete
// image types from image/png (image.RGBA, image.Gray, ...) implement
// Opaque() as a fast path; anything else is scanned directly.
func isOpaque(m image.Image) bool {
	if o, ok := m.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
