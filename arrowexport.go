// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// arrowFieldType maps a column's wire type to the Arrow ecosystem's
// analogue of the numpy dtype used in Descriptor, so OutputArrow and
// OutputColumnar describe the same batch through two different Go
// columnar libraries grounded on the same type table.
func arrowFieldType(col *ColumnDescriptor) (arrow.DataType, error) {
	switch col.Type {
	case FieldTypeTiny:
		if col.unsigned() {
			return arrow.PrimitiveTypes.Uint8, nil
		}
		return arrow.PrimitiveTypes.Int8, nil
	case FieldTypeShort:
		if col.unsigned() {
			return arrow.PrimitiveTypes.Uint16, nil
		}
		return arrow.PrimitiveTypes.Int16, nil
	case FieldTypeInt24, FieldTypeLong:
		if col.unsigned() {
			return arrow.PrimitiveTypes.Uint32, nil
		}
		return arrow.PrimitiveTypes.Int32, nil
	case FieldTypeLongLong:
		if col.unsigned() {
			return arrow.PrimitiveTypes.Uint64, nil
		}
		return arrow.PrimitiveTypes.Int64, nil
	case FieldTypeFloat:
		return arrow.PrimitiveTypes.Float32, nil
	case FieldTypeDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case FieldTypeYear:
		return arrow.PrimitiveTypes.Uint16, nil
	case FieldTypeDateTime, FieldTypeTimestamp, FieldTypeNewDate, FieldTypeDate:
		return &arrow.TimestampType{Unit: arrow.Nanosecond}, nil
	case FieldTypeTime:
		return &arrow.DurationType{Unit: arrow.Nanosecond}, nil
	case FieldTypeDecimal, FieldTypeNewDecimal, FieldTypeBit, FieldTypeJSON,
		FieldTypeTinyBLOB, FieldTypeMediumBLOB, FieldTypeLongBLOB, FieldTypeBLOB,
		FieldTypeGeometry, FieldTypeEnum, FieldTypeSet, FieldTypeVarChar,
		FieldTypeVarString, FieldTypeString:
		return arrow.BinaryTypes.String, nil
	case FieldTypeNULL:
		return arrow.Null, nil
	default:
		return nil, fmt.Errorf("unknown column type code: %s", col.Type)
	}
}

// BuildArrowRecord converts a completed ColumnBuffer into an Arrow record
// batch, the same array-interface-described bytes reinterpreted through
// arrow-go's builders instead of numpy's.
func BuildArrowRecord(cb *ColumnBuffer, cols []*ColumnDescriptor, pool memory.Allocator) (arrow.Record, error) {
	if pool == nil {
		pool = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, len(cols))
	arrays := make([]arrow.Array, len(cols))

	for i, col := range cols {
		dt, err := arrowFieldType(col)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: col.Name, Type: dt, Nullable: !col.notNull()}

		arr, err := buildArrowColumn(cb, i, dt, pool)
		if err != nil {
			return nil, err
		}
		arrays[i] = arr
	}

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrays, int64(cb.nRows)), nil
}

func buildArrowColumn(cb *ColumnBuffer, col int, dt arrow.DataType, pool memory.Allocator) (arrow.Array, error) {
	layout := cb.layouts[col]

	if layout.object {
		bld := array.NewStringBuilder(pool)
		defer bld.Release()
		for row := 0; row < cb.nRows; row++ {
			v := cb.objects[col][row]
			if v == nil {
				bld.AppendNull()
				continue
			}
			bld.Append(fmt.Sprintf("%v", v))
		}
		return bld.NewArray(), nil
	}

	switch dt.ID() {
	case arrow.UINT8:
		return buildFixedColumn(cb, col, pool, array.NewUint8Builder, func(b *array.Uint8Builder, slot []byte) { b.Append(slot[0]) })
	case arrow.INT8:
		return buildFixedColumn(cb, col, pool, array.NewInt8Builder, func(b *array.Int8Builder, slot []byte) { b.Append(int8(slot[0])) })
	case arrow.UINT16:
		return buildFixedColumn(cb, col, pool, array.NewUint16Builder, func(b *array.Uint16Builder, slot []byte) { b.Append(binary.LittleEndian.Uint16(slot)) })
	case arrow.INT16:
		return buildFixedColumn(cb, col, pool, array.NewInt16Builder, func(b *array.Int16Builder, slot []byte) { b.Append(int16(binary.LittleEndian.Uint16(slot))) })
	case arrow.UINT32:
		return buildFixedColumn(cb, col, pool, array.NewUint32Builder, func(b *array.Uint32Builder, slot []byte) { b.Append(binary.LittleEndian.Uint32(slot)) })
	case arrow.INT32:
		return buildFixedColumn(cb, col, pool, array.NewInt32Builder, func(b *array.Int32Builder, slot []byte) { b.Append(int32(binary.LittleEndian.Uint32(slot))) })
	case arrow.UINT64:
		return buildFixedColumn(cb, col, pool, array.NewUint64Builder, func(b *array.Uint64Builder, slot []byte) { b.Append(binary.LittleEndian.Uint64(slot)) })
	case arrow.INT64:
		return buildFixedColumn(cb, col, pool, array.NewInt64Builder, func(b *array.Int64Builder, slot []byte) { b.Append(int64(binary.LittleEndian.Uint64(slot))) })
	case arrow.FLOAT32:
		return buildFixedColumn(cb, col, pool, array.NewFloat32Builder, func(b *array.Float32Builder, slot []byte) {
			b.Append(math.Float32frombits(binary.LittleEndian.Uint32(slot)))
		})
	case arrow.FLOAT64:
		return buildFixedColumn(cb, col, pool, array.NewFloat64Builder, func(b *array.Float64Builder, slot []byte) {
			b.Append(math.Float64frombits(binary.LittleEndian.Uint64(slot)))
		})
	case arrow.TIMESTAMP:
		bld := array.NewTimestampBuilder(pool, &arrow.TimestampType{Unit: arrow.Nanosecond})
		defer bld.Release()
		for row := 0; row < cb.nRows; row++ {
			slot := cb.rowSlot(col, row)
			ns := int64(binary.LittleEndian.Uint64(slot))
			if ns == natSentinel {
				bld.AppendNull()
				continue
			}
			bld.Append(arrow.Timestamp(ns))
		}
		return bld.NewArray(), nil
	case arrow.DURATION:
		bld := array.NewDurationBuilder(pool, &arrow.DurationType{Unit: arrow.Nanosecond})
		defer bld.Release()
		for row := 0; row < cb.nRows; row++ {
			slot := cb.rowSlot(col, row)
			ns := int64(binary.LittleEndian.Uint64(slot))
			if ns == natSentinel {
				bld.AppendNull()
				continue
			}
			bld.Append(arrow.Duration(ns))
		}
		return bld.NewArray(), nil
	default:
		return nil, fmt.Errorf("unsupported arrow dtype for column %d", col)
	}
}

func (cb *ColumnBuffer) rowSlot(col, row int) []byte {
	l := cb.layouts[col]
	off := row*cb.stride + l.offset
	return cb.buf[off : off+l.width]
}

func buildFixedColumn[B interface {
	Release()
	NewArray() arrow.Array
}](cb *ColumnBuffer, col int, pool memory.Allocator, newBuilder func(memory.Allocator) *B, appendFn func(*B, []byte)) (arrow.Array, error) {
	bld := newBuilder(pool)
	defer bld.Release()
	for row := 0; row < cb.nRows; row++ {
		appendFn(bld, cb.rowSlot(col, row))
	}
	return bld.NewArray(), nil
}
