/*
NAME
  image.go

DESCRIPTION
  image.go defines the pixel and image value types shared by the QOI
  encoder and decoder.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package qoi implements the QOI ("Quite OK Image") lossless image codec:
// a single-pass, byte-aligned encoding built around a 64-entry rolling
// pixel cache and a previous-pixel predictor.
package qoi

import "fmt"

// Colorspace is the informational tag carried in a QOI header. It does not
// alter encoding or decoding behaviour.
type Colorspace uint8

// Colorspace values defined by the QOI format.
const (
	SRGB   Colorspace = 0 // sRGB with linear alpha.
	Linear Colorspace = 1 // All channels linear.
)

// Pixel is a 4-component RGBA colour with unsigned 8-bit channels.
type Pixel struct {
	R, G, B, A uint8
}

// hash returns the 6-bit cache index for p, per the QOI hash function.
// Arithmetic on each term wraps at 8 bits before the final reduction.
func (p Pixel) hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) & 0x3f
}

// Image is a decoded or to-be-encoded raster image: width/height in
// pixels, a channel count of 3 (RGB) or 4 (RGBA), a colorspace tag, and
// pixel data in row-major, top-to-bottom, left-to-right order.
type Image struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace Colorspace
	Pixels     []Pixel
}

// validate checks the channel count, colorspace tag, and pixel count of
// img, returning the appropriate sentinel error on violation.
func (img *Image) validate() error {
	if img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, img.Channels)
	}
	if img.Colorspace != SRGB && img.Colorspace != Linear {
		return fmt.Errorf("%w: %d", ErrInvalidColorspace, img.Colorspace)
	}
	want := int(img.Width) * int(img.Height)
	if len(img.Pixels) != want {
		return fmt.Errorf("qoi: image has %d pixels, want %d (%dx%d)", len(img.Pixels), want, img.Width, img.Height)
	}
	return nil
}
