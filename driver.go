// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/pymysqlsv/rowset/internal/atomic"
)

// initialColumnarCapacityBytes is the memory budget the original
// accelerator uses to size the initial dataframe buffer before it knows
// how many rows a batch will actually contain.
const initialColumnarCapacityBytes = 10_000_000

// ReaderState is the per-result-set state the batch driver persists
// across Fetch calls: everything State_init/State_clear_fields manage in
// the original accelerator, reduced to what a Go caller needs to keep
// alive between fetches of the same result set.
type ReaderState struct {
	cols       []*ColumnDescriptor
	converters []ConverterSlot
	opts       *Options
	assembler  *rowAssembler
	columnar   *ColumnBuffer
	isEOF      atomic.Bool
	nRows      uint64

	// onErrPacket, when set by a caller (FetchInto), is threaded into the
	// packet framer's ERR-packet path for the lifetime of this state.
	onErrPacket func()
}

// NewReaderState builds the per-result-set state once, the same work
// State_init performs the first time read_rowdata_packet sees a result
// object with no _state yet.
func NewReaderState(cols []*ColumnDescriptor, converters []ConverterSlot, opts *Options) (*ReaderState, error) {
	if opts == nil {
		opts = &Options{}
	}
	st := &ReaderState{cols: cols, converters: converters, opts: opts}

	switch opts.OutputMode {
	case OutputColumnar, OutputArrow:
		rowSize, err := computeRowSize(cols)
		if err != nil {
			return nil, err
		}
		initialCap := 1
		if !opts.Unbuffered && rowSize > 0 && rowSize <= initialColumnarCapacityBytes {
			initialCap = initialColumnarCapacityBytes / rowSize
			if initialCap < 1 {
				initialCap = 1
			}
		}
		cb, err := newColumnBuffer(cols, initialCap)
		if err != nil {
			return nil, err
		}
		st.columnar = cb

	default:
		st.assembler = newRowAssembler(cols, converters, opts)
	}

	return st, nil
}

func computeRowSize(cols []*ColumnDescriptor) (int, error) {
	total := 0
	for _, col := range cols {
		_, width, _, err := dtypeFor(col)
		if err != nil {
			return 0, err
		}
		total += width
	}
	return total, nil
}

// resetBatch clears the columnar buffer's per-batch row count at the start
// of a bounded (n > 0) Fetch call, the equivalent of State_reset_batch. It
// applies to buffered and unbuffered results alike; the running total in
// ReaderState.nRows is never reset.
func (st *ReaderState) resetBatch() {
	switch st.opts.OutputMode {
	case OutputColumnar, OutputArrow:
		st.columnar.nRows = 0
	default:
		// row storage for sequence/named-record/mapping modes is owned by
		// the caller via FetchResult.Rows, nothing to reset here.
	}
}

// FetchResult is what Fetch returns: the rows (in whatever shape
// Options.OutputMode selected) plus the bookkeeping the original
// accelerator writes back onto the caller's result object (affected_rows,
// warning_count, has_next).
type FetchResult struct {
	Rows         any
	Columnar     *ColumnBuffer
	Arrow        arrow.Record
	AffectedRows uint64
	WarningCount uint16
	HasNext      bool
	EOF          bool
}

// Fetch reads up to n rows from conn (0 means unbounded: read until EOF).
// It persists next-sequence-id state onto conn as it goes and returns once
// n rows have been read, the result set hits EOF, or an error occurs.
//
// This is the batch driver loop from spec §4.7, grounded directly on
// read_rowdata_packet: per-row packet read, EOF/ERR classification,
// columnar-buffer growth, and the unbuffered-vs-buffered exit semantics
// (an unbuffered result with zero rows read at EOF reports nil rows and
// the running affected-rows total; a buffered result always reports its
// accumulated rows). The state is not cleared at EOF: it stays marked EOF,
// and every later call on it returns at once without reading.
func Fetch(ctx context.Context, conn Conn, st *ReaderState, n uint64) (*FetchResult, error) {
	if st.isEOF.IsSet() {
		return &FetchResult{EOF: true, AffectedRows: st.nRows}, nil
	}

	if n > 0 {
		st.resetBatch()
	}
	unbounded := n == 0

	framer := newPacketFramer(conn)
	framer.onErrPacket = st.onErrPacket

	var seqRows []any
	if st.assembler != nil {
		seqRows = make([]any, 0, n)
	}

	var rowIdx uint64
	var result FetchResult

	for unbounded || rowIdx < n {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		buf, err := framer.readPacket()
		if err != nil {
			return nil, err
		}

		if info, ok := classifyEOF(buf); ok {
			st.isEOF.Set(true)
			result.WarningCount = info.WarningCount
			result.HasNext = info.HasNext
			result.EOF = true
			break
		}

		st.nRows++

		switch st.opts.OutputMode {
		case OutputColumnar, OutputArrow:
			if err := st.columnar.WriteRow(buf, st.cols, st.converters, st.opts); err != nil {
				return nil, err
			}
		default:
			row, err := st.assembler.Assemble(buf)
			if err != nil {
				return nil, err
			}
			seqRows = append(seqRows, row)
		}

		rowIdx++
	}

	if st.columnar != nil && st.isEOF.IsSet() && st.columnar.nRows != st.columnar.cap {
		st.columnar.shrinkToExact(st.columnar.nRows)
	}

	result.AffectedRows = st.nRows

	if st.opts.Unbuffered {
		if st.isEOF.IsSet() && rowIdx == 0 {
			result.Rows = nil
			return &result, nil
		}
		if st.columnar != nil {
			if err := attachColumnarResult(&result, st); err != nil {
				return nil, err
			}
		} else if n == 1 && len(seqRows) == 1 {
			result.Rows = seqRows[0]
		} else {
			result.Rows = seqRows
		}
		return &result, nil
	}

	if st.columnar != nil {
		if err := attachColumnarResult(&result, st); err != nil {
			return nil, err
		}
	} else {
		result.Rows = seqRows
	}
	return &result, nil
}

// attachColumnarResult sets result.Columnar to the batch's raw buffer and,
// for OutputArrow, additionally builds an Arrow record batch over it —
// the "pandas → numpy → ..." output dispatch from State_init, rendered as
// a second columnar library consuming the same buffer rather than a
// silent no-op the way OutputArrow was previously handled identically to
// OutputColumnar.
func attachColumnarResult(result *FetchResult, st *ReaderState) error {
	result.Columnar = st.columnar
	if st.opts.OutputMode != OutputArrow {
		return nil
	}
	rec, err := BuildArrowRecord(st.columnar, st.cols, nil)
	if err != nil {
		return err
	}
	result.Arrow = rec
	return nil
}
