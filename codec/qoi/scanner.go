/*
NAME
  scanner.go

DESCRIPTION
  scanner.go provides a small buffered byte scanner for the streaming
  decode path, adapted from codec/codecutil's ByteScanner: the same
  fixed-buffer refill-on-exhaustion strategy, trimmed to the single
  ReadByte/ReadFull operations the QOI chunk dispatcher needs.

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

import "io"

// byteScanner buffers reads from an underlying io.Reader, refilling its
// buffer on exhaustion rather than issuing one syscall per byte.
type byteScanner struct {
	buf []byte
	off int
	r   io.Reader
}

// newByteScanner returns a scanner reading from r, using buf as its
// (reused) read buffer.
func newByteScanner(r io.Reader, buf []byte) *byteScanner {
	return &byteScanner{r: r, buf: buf[:0]}
}

// ReadByte returns the next byte from the stream, refilling the buffer
// as needed.
func (c *byteScanner) ReadByte() (byte, error) {
	if c.off >= len(c.buf) {
		if err := c.reload(); err != nil {
			return 0, err
		}
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// ReadFull reads exactly len(dst) bytes into dst, refilling as needed.
func (c *byteScanner) ReadFull(dst []byte) error {
	for i := range dst {
		b, err := c.ReadByte()
		if err != nil {
			return err
		}
		dst[i] = b
	}
	return nil
}

// reload re-fills the scanner's buffer from its underlying reader.
func (c *byteScanner) reload() error {
	n, err := c.r.Read(c.buf[:cap(c.buf)])
	c.buf = c.buf[:n]
	if err != nil {
		if err != io.EOF {
			return err
		}
		if n == 0 {
			return io.EOF
		}
	}
	c.off = 0
	return nil
}
