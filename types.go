// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

// FieldType is the wire-protocol column type code sent in a column
// definition packet.
type FieldType byte

const (
	FieldTypeDecimal FieldType = iota
	FieldTypeTiny
	FieldTypeShort
	FieldTypeLong
	FieldTypeFloat
	FieldTypeDouble
	FieldTypeNULL
	FieldTypeTimestamp
	FieldTypeLongLong
	FieldTypeInt24
	FieldTypeDate
	FieldTypeTime
	FieldTypeDateTime
	FieldTypeYear
	FieldTypeNewDate
	FieldTypeVarChar
	FieldTypeBit
)

const (
	FieldTypeJSON FieldType = 0xf5 + iota
	FieldTypeNewDecimal
	FieldTypeEnum
	FieldTypeSet
	FieldTypeTinyBLOB
	FieldTypeMediumBLOB
	FieldTypeLongBLOB
	FieldTypeBLOB
	FieldTypeVarString
	FieldTypeString
	FieldTypeGeometry
)

var typeName = map[FieldType]string{
	FieldTypeDecimal:    "DECIMAL",
	FieldTypeTiny:       "TINYINT",
	FieldTypeShort:      "SMALLINT",
	FieldTypeLong:       "INT",
	FieldTypeFloat:      "FLOAT",
	FieldTypeDouble:     "DOUBLE",
	FieldTypeNULL:       "NULL",
	FieldTypeTimestamp:  "TIMESTAMP",
	FieldTypeLongLong:   "BIGINT",
	FieldTypeInt24:      "MEDIUMINT",
	FieldTypeDate:       "DATE",
	FieldTypeTime:       "TIME",
	FieldTypeDateTime:   "DATETIME",
	FieldTypeYear:       "YEAR",
	FieldTypeNewDate:    "DATE",
	FieldTypeVarChar:    "VARCHAR",
	FieldTypeBit:        "BIT",
	FieldTypeJSON:       "JSON",
	FieldTypeNewDecimal: "DECIMAL",
	FieldTypeEnum:       "ENUM",
	FieldTypeSet:        "SET",
	FieldTypeTinyBLOB:   "TINYBLOB",
	FieldTypeMediumBLOB: "MEDIUMBLOB",
	FieldTypeLongBLOB:   "LONGBLOB",
	FieldTypeBLOB:       "BLOB",
	FieldTypeVarString:  "VARSTRING",
	FieldTypeString:     "STRING",
	FieldTypeGeometry:   "GEOMETRY",
}

func (t FieldType) String() string {
	if name, ok := typeName[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// isObjectColumn reports whether a column of this type is decoded into a
// heap object (string, []byte, decimal, etc.) rather than a fixed-width
// primitive, and therefore cannot live directly inside the columnar
// buffer's raw byte stride (see columnar.go).
func (t FieldType) isObjectColumn() bool {
	switch t {
	case FieldTypeDecimal, FieldTypeNewDecimal, FieldTypeNULL,
		FieldTypeBit, FieldTypeJSON, FieldTypeTinyBLOB, FieldTypeMediumBLOB,
		FieldTypeLongBLOB, FieldTypeBLOB, FieldTypeGeometry, FieldTypeEnum,
		FieldTypeSet, FieldTypeVarChar, FieldTypeVarString, FieldTypeString:
		return true
	default:
		return false
	}
}

// FieldFlag is a bitmask of column attributes from a column definition
// packet.
type FieldFlag uint32

const (
	FlagNotNULL FieldFlag = 1 << iota
	FlagPriKey
	FlagUniqueKey
	FlagMultipleKey
	FlagBlob
	FlagUnsigned
	FlagZeroFill
	FlagBinary
	FlagEnum
	FlagAutoIncrement
	FlagTimestamp
	FlagSet
)

// OutputMode selects the shape of the value produced for each row or, for
// the columnar modes, for the whole batch.
type OutputMode int

const (
	// OutputSequence produces a plain []any per row.
	OutputSequence OutputMode = iota
	// OutputNamedRecord produces one reflect.StructOf-generated struct
	// value per row, field order matching column order.
	OutputNamedRecord
	// OutputMapping produces a map[string]any per row.
	OutputMapping
	// OutputColumnar produces one ColumnBuffer for the whole batch with a
	// numpy-array-interface-compatible descriptor.
	OutputColumnar
	// OutputArrow produces an Arrow record batch for the whole batch.
	OutputArrow
)
