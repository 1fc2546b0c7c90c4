// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"io"
	"time"
)

// Transport is the narrow byte-stream collaborator this package reads
// packets from. A caller's real connection need only adapt its socket to
// this interface; TLS, authentication, and reconnection logic all live on
// the caller's side of it.
type Transport interface {
	io.Reader
	Close() error
}

// Conn is the narrow connection collaborator this package needs in order
// to track the packet sequence id and enforce a read timeout, without
// depending on how the caller actually dials or authenticates.
type Conn interface {
	Transport() Transport
	SetReadTimeout(d time.Duration)
	ReadTimeout() time.Duration
	NextSeq() uint8
	SetNextSeq(seq uint8)
	// RaiseMySQLError is called when an ERR packet is seen on the wire; the
	// caller decides how to turn it into its own error type. A nil return
	// means the caller chose to swallow it (not recommended, but this
	// package never second-guesses the caller).
	RaiseMySQLError(buf []byte) error
}

const defaultBufSize = 4096

// byteReader is a read buffer similar to bufio.Reader but zero-copy-ish,
// and tuned for reading whole packets at once rather than arbitrary byte
// counts.
type byteReader struct {
	buf    []byte
	rd     io.Reader
	idx    int
	length int
}

func newByteReader(rd io.Reader) *byteReader {
	buf := getBytes(defaultBufSize)
	return &byteReader{buf: buf, rd: rd}
}

// fill reads into the buffer until at least need bytes are in it.
func (b *byteReader) fill(need int) (err error) {
	if b.length > 0 && b.idx > 0 {
		copy(b.buf[0:b.length], b.buf[b.idx:b.idx+b.length])
	}

	if need > len(b.buf) {
		newBuf := make([]byte, need)
		copy(newBuf, b.buf[:b.length])
		b.buf = newBuf
	}

	b.idx = 0

	var n int
	for {
		n, err = b.rd.Read(b.buf[b.length:])
		b.length += n

		if b.length < need && err == nil {
			continue
		}
		return
	}
}

// readExact returns the next need bytes from the buffer, retrying short
// reads transparently. The returned slice is only valid until the next
// call to readExact.
func (b *byteReader) readExact(need int) (p []byte, err error) {
	if b.length < need {
		err = b.fill(need)
	}

	p = b.buf[b.idx : b.idx+need]
	b.idx += need
	b.length -= need
	return
}

var bytesPool = make(chan []byte, 16)

// getBytes may return unzeroed bytes.
func getBytes(n int) []byte {
	select {
	case s := <-bytesPool:
		if cap(s) >= n {
			return s[:n]
		}
	default:
	}
	return make([]byte, n)
}

func putBytes(s []byte) {
	select {
	case bytesPool <- s:
	default:
	}
}
