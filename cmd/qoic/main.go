/*
NAME
  qoic is a command line tool for converting between raw, PNG, and QOI
  image representations.

DESCRIPTION
  Usage:
    qoic [options] <in-format> <infile> <out-format> <outfile>

  where <in-format> and <out-format> are one of "raw", "png", "qoi".

  Options:
    -w <width>       width, required when in-format is raw
    -h <height>      height, required when in-format is raw
    -c <3|4>         channels, default 3
    -s <0|1>         colorspace, default 0
    -watch <dir>     watch dir for new files to convert using the given
                      in-format/out-format pair, instead of converting
                      a single infile/outfile pair
    -?/--help        show this message

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the qoic command line image conversion tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/qoi/bridge/png"
	"github.com/ausocean/qoi/bridge/raw"
	"github.com/ausocean/qoi/codec/qoi"
	"github.com/ausocean/qoi/internal/qoiconfig"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logPath      = "/var/log/qoic/qoic.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = false
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: qoic [options] <in-format> <infile> <out-format> <outfile>")
	fmt.Fprintln(os.Stderr, "formats: raw, png, qoi")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	width := flag.Uint("w", 0, "width (required for raw input)")
	height := flag.Uint("h", 0, "height (required for raw input)")
	channels := flag.Uint("c", qoiconfig.DefaultChannels, "channels (3 or 4)")
	colorspace := flag.Uint("s", qoiconfig.DefaultColorspace, "colorspace (0 or 1)")
	watch := flag.String("watch", "", "watch this directory for new files to convert")
	help := flag.Bool("?", false, "show usage")
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 4 {
		usage()
		os.Exit(1)
	}

	cfg := &qoiconfig.Config{
		InFormat:   args[0],
		InFile:     args[1],
		OutFormat:  args[2],
		OutFile:    args[3],
		Width:      uint32(*width),
		Height:     uint32(*height),
		Channels:   uint8(*channels),
		Colorspace: uint8(*colorspace),
		Watch:      *watch,
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "qoic:", err)
		usage()
		os.Exit(1)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if cfg.Watch != "" {
		if err := runWatch(cfg, log); err != nil {
			log.Error("watch failed", "error", err.Error())
			fmt.Fprintln(os.Stderr, "qoic:", err)
			os.Exit(1)
		}
		return
	}

	if err := convert(cfg, log); err != nil {
		log.Error("conversion failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, "qoic:", err)
		os.Exit(1)
	}
}

// convert reads cfg.InFile in cfg.InFormat, decodes it to a qoi.Image, and
// writes it to cfg.OutFile in cfg.OutFormat.
func convert(cfg *qoiconfig.Config, log logging.Logger) error {
	img, err := readImage(cfg, log)
	if err != nil {
		return err
	}
	return writeImage(cfg, img, log)
}

func readImage(cfg *qoiconfig.Config, log logging.Logger) (*qoi.Image, error) {
	switch cfg.InFormat {
	case qoiconfig.Raw:
		return raw.New(log).Read(cfg.InFile, cfg.Width, cfg.Height, cfg.Channels)
	case qoiconfig.PNG:
		data, err := os.ReadFile(cfg.InFile)
		if err != nil {
			return nil, fmt.Errorf("qoic: could not read %s: %w", cfg.InFile, err)
		}
		return png.Decode(data, log)
	case qoiconfig.QOI:
		data, err := os.ReadFile(cfg.InFile)
		if err != nil {
			return nil, fmt.Errorf("qoic: could not read %s: %w", cfg.InFile, err)
		}
		return qoi.Decode(data)
	default:
		return nil, fmt.Errorf("qoic: unknown input format %q", cfg.InFormat)
	}
}

func writeImage(cfg *qoiconfig.Config, img *qoi.Image, log logging.Logger) error {
	switch cfg.OutFormat {
	case qoiconfig.Raw:
		return raw.New(log).Write(cfg.OutFile, img)
	case qoiconfig.PNG:
		data, err := png.Encode(img, log)
		if err != nil {
			return err
		}
		return os.WriteFile(cfg.OutFile, data, 0644)
	case qoiconfig.QOI:
		data, err := qoi.Encode(img)
		if err != nil {
			return err
		}
		return os.WriteFile(cfg.OutFile, data, 0644)
	default:
		return fmt.Errorf("qoic: unknown output format %q", cfg.OutFormat)
	}
}
