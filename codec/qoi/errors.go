/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors returned by the QOI codec.

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

import "errors"

// Sentinel errors returned by Encode and Decode, either bare or wrapped
// with fmt.Errorf's %w. Callers may match these with errors.Is; cmd/qoic
// passes codec errors through without further wrapping.
var (
	ErrInvalidChannels   = errors.New("qoi: invalid channel count, want 3 or 4")
	ErrInvalidColorspace = errors.New("qoi: invalid colorspace, want 0 or 1")
	ErrBadMagic          = errors.New("qoi: bad magic, not a QOI stream")
	ErrUnexpectedEOF     = errors.New("qoi: unexpected end of stream")
	ErrMissingEndMarker  = errors.New("qoi: missing or corrupt end marker")
)
