// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2012 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import "io"

// readLengthEncodedInteger decodes a length-encoded integer at the start
// of b. n is the number of bytes consumed (including the prefix byte).
func readLengthEncodedInteger(b []byte) (num uint64, isNull bool, n int, err error) {
	if len(b) == 0 {
		return 0, false, 0, io.EOF
	}

	switch b[0] {
	case 0xfb: // NULL
		return 0, true, 1, nil

	case 0xfc: // value of following 2 bytes
		if len(b) < 3 {
			return 0, false, 1, io.EOF
		}
		return uint64(b[1]) | uint64(b[2])<<8, false, 3, nil

	case 0xfd: // value of following 3 bytes
		if len(b) < 4 {
			return 0, false, 1, io.EOF
		}
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16, false, 4, nil

	case 0xfe: // value of following 8 bytes
		if len(b) < 9 {
			return 0, false, 1, io.EOF
		}
		return uint64(b[1]) | uint64(b[2])<<8 | uint64(b[3])<<16 |
			uint64(b[4])<<24 | uint64(b[5])<<32 | uint64(b[6])<<40 |
			uint64(b[7])<<48 | uint64(b[8])<<56, false, 9, nil

	default: // 0-250: value of the first byte itself
		return uint64(b[0]), false, 1, nil
	}
}

// readLengthEncodedString decodes a length-encoded string at the start of
// data, returning the string bytes (a sub-slice of data, not a copy), the
// null flag, and the number of bytes consumed. Truncated trailing length
// (the wire value claims more bytes than remain) clamps to what's present,
// matching the original accelerator's read_length_coded_string behavior
// rather than treating it as an error at this layer.
func readLengthEncodedString(data []byte) (out []byte, isNull bool, n int, err error) {
	num, isNull, n, err := readLengthEncodedInteger(data)
	if err != nil || isNull {
		return nil, isNull, n, err
	}

	avail := len(data) - n
	if int(num) > avail {
		num = uint64(avail)
	}

	return data[n : n+int(num)], false, n + int(num), nil
}
