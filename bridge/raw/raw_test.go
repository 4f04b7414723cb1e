/*
NAME
  raw_test.go

DESCRIPTION
  raw_test.go covers the raw bridge's round trip through qoi.Image and
  its dimension-mismatch error path.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package raw

import (
	"path/filepath"
	"testing"

	"github.com/ausocean/qoi/codec/qoi"
	"github.com/ausocean/utils/logging"
)

func TestRoundTrip(t *testing.T) {
	log := (*logging.TestLogger)(t)
	f := New(log)

	img := &qoi.Image{
		Width:      3,
		Height:     2,
		Channels:   4,
		Colorspace: qoi.SRGB,
		Pixels: []qoi.Pixel{
			{1, 2, 3, 255}, {4, 5, 6, 128}, {7, 8, 9, 0},
			{10, 11, 12, 255}, {13, 14, 15, 255}, {16, 17, 18, 255},
		},
	}

	path := filepath.Join(t.TempDir(), "out.raw")
	if err := f.Write(path, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := f.Read(path, img.Width, img.Height, img.Channels)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i, p := range img.Pixels {
		if got.Pixels[i] != p {
			t.Fatalf("pixel %d mismatch: got %+v want %+v", i, got.Pixels[i], p)
		}
	}
}

func TestRoundTripThreeChannelDropsAlpha(t *testing.T) {
	log := (*logging.TestLogger)(t)
	f := New(log)

	img := &qoi.Image{
		Width: 2, Height: 1, Channels: 3, Colorspace: qoi.SRGB,
		Pixels: []qoi.Pixel{{1, 2, 3, 255}, {4, 5, 6, 255}},
	}
	path := filepath.Join(t.TempDir(), "out.raw")
	if err := f.Write(path, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := f.Read(path, img.Width, img.Height, img.Channels)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for _, p := range got.Pixels {
		if p.A != 255 {
			t.Fatalf("expected implicit alpha 255 for 3-channel raw read, got %d", p.A)
		}
	}
}

func TestReadSizeMismatch(t *testing.T) {
	log := (*logging.TestLogger)(t)
	f := New(log)

	path := filepath.Join(t.TempDir(), "bad.raw")
	img := &qoi.Image{Width: 1, Height: 1, Channels: 3, Colorspace: qoi.SRGB, Pixels: []qoi.Pixel{{1, 2, 3, 255}}}
	if err := f.Write(path, img); err != nil {
		t.Fatalf("Write: %v", err)
	}

	_, err := f.Read(path, 2, 2, 3) // wrong dimensions for the 3-byte file.
	if err == nil {
		t.Fatal("expected size-mismatch error")
	}
}
