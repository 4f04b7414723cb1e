/*
NAME
  raw.go

DESCRIPTION
  raw.go bridges between qoi.Image and a raw headerless pixel file:
  height scanlines of width*channels bytes, with no embedded dimensions
  or channel count. Modeled on device/file's AVFile: a thin type
  guarded by a mutex with a logging.Logger field; files are opened by
  path on each Read/Write call.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package raw bridges raw pixel-buffer files and qoi.Image values.
package raw

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/ausocean/qoi/codec/qoi"
	"github.com/ausocean/utils/logging"
)

// File is a thin, mutex-guarded wrapper over a raw pixel file on disk.
type File struct {
	mu  sync.Mutex
	log logging.Logger
}

// New returns a File that logs through l.
func New(l logging.Logger) *File { return &File{log: l} }

// Read loads a raw pixel file from path and returns it as a qoi.Image
// using the caller-supplied width, height, and channel count -- a raw
// file carries no dimensions of its own.
func (f *File) Read(path string, width, height uint32, channels uint8) (*qoi.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Debug("reading raw pixel file", "path", path, "width", width, "height", height, "channels", channels)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "raw: could not read %s", path)
	}

	want := int(width) * int(height) * int(channels)
	if len(data) != want {
		return nil, errors.Errorf("raw: %s has %d bytes, want %d (%dx%dx%d)", path, len(data), want, width, height, channels)
	}

	pixels := make([]qoi.Pixel, 0, int(width)*int(height))
	for i := 0; i < len(data); i += int(channels) {
		p := qoi.Pixel{R: data[i], G: data[i+1], B: data[i+2], A: 255}
		if channels == 4 {
			p.A = data[i+3]
		}
		pixels = append(pixels, p)
	}

	return &qoi.Image{Width: width, Height: height, Channels: channels, Colorspace: qoi.SRGB, Pixels: pixels}, nil
}

// Write serializes img as a raw headerless pixel file at path, writing
// img.Channels bytes per pixel (alpha omitted for 3-channel images).
func (f *File) Write(path string, img *qoi.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.log.Debug("writing raw pixel file", "path", path, "width", img.Width, "height", img.Height, "channels", img.Channels)

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "raw: could not create %s", path)
	}
	defer out.Close()

	buf := make([]byte, 0, len(img.Pixels)*int(img.Channels))
	for _, p := range img.Pixels {
		buf = append(buf, p.R, p.G, p.B)
		if img.Channels == 4 {
			buf = append(buf, p.A)
		}
	}

	n, err := out.Write(buf)
	if err != nil {
		return errors.Wrapf(err, "raw: could not write %s", path)
	}
	if n != len(buf) {
		return errors.Wrapf(io.ErrShortWrite, "raw: wrote %d of %d bytes to %s", n, len(buf), path)
	}
	return nil
}
