// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import "context"

// ResultHandle is the narrow collaborator a caller's own result-set object
// implements so this package can read its column metadata once and write
// its per-batch bookkeeping back in place, the same way the original
// accelerator reads and mutates attributes directly on a Python result
// object instead of returning a new one each call.
type ResultHandle interface {
	FieldCount() int
	Fields() []*ColumnDescriptor
	Converters() []ConverterSlot
	Options() *Options

	UnbufferedActive() bool
	SetUnbufferedActive(bool)

	State() *ReaderState
	SetState(*ReaderState)

	SetRows(any)
	SetAffectedRows(uint64)
	SetWarningCount(uint16)
	SetHasNext(bool)

	Conn() Conn
	SetConn(Conn)
}

// FetchInto fetches up to n rows (0 = unbounded) through rh, building its
// ReaderState on first use and writing the batch result back onto rh —
// the Go analogue of read_rowdata_packet's "state is NULL, call State_init"
// branch followed by its direct writes to the result object's attributes.
func FetchInto(ctx context.Context, rh ResultHandle, n uint64) error {
	st := rh.State()
	if st == nil {
		var err error
		st, err = NewReaderState(rh.Fields(), rh.Converters(), rh.Options())
		if err != nil {
			return err
		}
		rh.SetState(st)
	}
	// An ERR packet clears UnbufferedActive on rh regardless of which
	// ReaderState observes it, mirroring read_rowdata_packet's ERR branch.
	st.onErrPacket = func() { rh.SetUnbufferedActive(false) }

	result, err := Fetch(ctx, rh.Conn(), st, n)
	if err != nil {
		return err
	}

	switch {
	case result.Arrow != nil:
		rh.SetRows(result.Arrow)
	case result.Columnar != nil:
		rh.SetRows(result.Columnar)
	default:
		rh.SetRows(result.Rows)
	}
	rh.SetAffectedRows(result.AffectedRows)
	rh.SetWarningCount(result.WarningCount)
	rh.SetHasNext(result.HasNext)
	rh.SetUnbufferedActive(!result.EOF && rh.Options() != nil && rh.Options().Unbuffered)

	return nil
}
