// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var errInvalidUTF8 = errors.New("invalid utf-8 in column value")

// decodeText strictly decodes raw column bytes using the named charset
// (an empty name means "binary," returned unchanged), matching the
// original accelerator's PyUnicode_Decode(out, out_l, encoding, "strict")
// call: an encoding error is a fatal decode failure, never silently
// replaced or dropped.
func decodeText(raw []byte, charsetName string) (string, error) {
	if charsetName == "" {
		return string(raw), nil
	}

	enc, err := htmlindex.Get(charsetName)
	if err != nil {
		return "", err
	}
	if enc == encoding.Nop {
		return string(raw), nil
	}
	if isUTF8(enc) {
		if !utf8.Valid(raw) {
			return "", errInvalidUTF8
		}
		return string(raw), nil
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func isUTF8(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}
