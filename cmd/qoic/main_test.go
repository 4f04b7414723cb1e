/*
NAME
  main_test.go

DESCRIPTION
  main_test.go covers the qoic CLI's format-dispatch round trip: raw ->
  qoi -> png -> qoi, verifying each conversion produces a readable
  image of the expected dimensions.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/qoi/codec/qoi"
	"github.com/ausocean/qoi/internal/qoiconfig"
	"github.com/ausocean/utils/logging"
)

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.New(logging.Error, io.Discard, true)
}

func writeRawFixture(t *testing.T, path string, w, h int) {
	t.Helper()
	buf := make([]byte, w*h*3)
	for i := range buf {
		buf[i] = byte(i)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("writeRawFixture: %v", err)
	}
}

func TestConvertRawToQoiToPngToQoi(t *testing.T) {
	dir := t.TempDir()
	log := testLogger(t)

	rawPath := filepath.Join(dir, "in.raw")
	writeRawFixture(t, rawPath, 6, 4)

	qoiPath := filepath.Join(dir, "out.qoi")
	cfg := &qoiconfig.Config{
		InFormat: qoiconfig.Raw, InFile: rawPath,
		OutFormat: qoiconfig.QOI, OutFile: qoiPath,
		Width: 6, Height: 4, Channels: 3, Colorspace: qoiconfig.DefaultColorspace,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := convert(cfg, log); err != nil {
		t.Fatalf("convert raw->qoi: %v", err)
	}

	pngPath := filepath.Join(dir, "out.png")
	cfg2 := &qoiconfig.Config{
		InFormat: qoiconfig.QOI, InFile: qoiPath,
		OutFormat: qoiconfig.PNG, OutFile: pngPath,
		Channels: 3, Colorspace: qoiconfig.DefaultColorspace,
	}
	if err := convert(cfg2, log); err != nil {
		t.Fatalf("convert qoi->png: %v", err)
	}

	qoiPath2 := filepath.Join(dir, "out2.qoi")
	cfg3 := &qoiconfig.Config{
		InFormat: qoiconfig.PNG, InFile: pngPath,
		OutFormat: qoiconfig.QOI, OutFile: qoiPath2,
		Channels: 3, Colorspace: qoiconfig.DefaultColorspace,
	}
	if err := convert(cfg3, log); err != nil {
		t.Fatalf("convert png->qoi: %v", err)
	}

	data, err := os.ReadFile(qoiPath2)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	img, err := qoi.Decode(data)
	if err != nil {
		t.Fatalf("Decode final qoi: %v", err)
	}
	if img.Width != 6 || img.Height != 4 {
		t.Fatalf("dimensions lost in round trip: got %dx%d want 6x4", img.Width, img.Height)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	log := testLogger(t)
	cfg := &qoiconfig.Config{InFormat: "bogus", OutFormat: qoiconfig.QOI, Channels: 3}
	if err := convert(cfg, log); err == nil {
		t.Fatal("expected error for unknown input format")
	}
}
