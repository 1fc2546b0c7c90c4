// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import "github.com/goccy/go-json"

// decodeJSON eagerly parses a JSON-typed column's text into Go values
// (map[string]any / []any / string / float64 / bool / nil), used only
// when Options.ParseJSON is set. Otherwise JSON columns pass through the
// string decoder unchanged.
func decodeJSON(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}
