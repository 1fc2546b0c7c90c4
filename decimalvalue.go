// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import "github.com/shopspring/decimal"

// decodeDecimal builds an arbitrary-precision decimal.Decimal straight
// from the column's raw text, the same way the original accelerator
// always constructs decimal.Decimal(text) rather than round-tripping
// through a float, to avoid losing precision.
func decodeDecimal(raw []byte) (any, error) {
	return decimal.NewFromString(string(raw))
}
