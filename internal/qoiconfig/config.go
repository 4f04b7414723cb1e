/*
NAME
  config.go

DESCRIPTION
  config.go defines the configuration surface for the qoic CLI: the
  format/dimension/channel/colorspace options, scaled down from
  revid/config's style to this codec's three-format, four-flag
  surface.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package qoiconfig

import "fmt"

// Format names accepted for both the input and output positional
// arguments of the qoic CLI.
const (
	Raw = "raw"
	PNG = "png"
	QOI = "qoi"
)

// IsValidFormat reports whether s is one of the three recognised format
// names.
func IsValidFormat(s string) bool {
	switch s {
	case Raw, PNG, QOI:
		return true
	default:
		return false
	}
}

// Defaults for the channel count and colorspace flags.
const (
	DefaultChannels   = 3
	DefaultColorspace = 0
)

// Config holds the parsed and validated option set for one qoic
// invocation.
type Config struct {
	InFormat  string
	InFile    string
	OutFormat string
	OutFile   string

	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8

	// Watch, if non-empty, names a directory to watch for new files to
	// convert using InFormat/OutFormat, rather than converting InFile
	// once. This is a CLI-only convenience outside the core codec's
	// single-shot contract.
	Watch string
}

// Validate checks c for the invariants the qoic CLI requires: known
// format names, required raw dimensions, and in-range
// channel/colorspace values.
func (c *Config) Validate() error {
	if !IsValidFormat(c.InFormat) {
		return fmt.Errorf("qoiconfig: unknown input format %q", c.InFormat)
	}
	if !IsValidFormat(c.OutFormat) {
		return fmt.Errorf("qoiconfig: unknown output format %q", c.OutFormat)
	}
	if c.InFormat == Raw && (c.Width == 0 || c.Height == 0) {
		return fmt.Errorf("qoiconfig: -w and -h are required when input format is raw")
	}
	if c.Channels != 3 && c.Channels != 4 {
		return fmt.Errorf("qoiconfig: invalid channel count %d, want 3 or 4", c.Channels)
	}
	if c.Colorspace != 0 && c.Colorspace != 1 {
		return fmt.Errorf("qoiconfig: invalid colorspace %d, want 0 or 1", c.Colorspace)
	}
	return nil
}
