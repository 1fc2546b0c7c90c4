// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"strconv"
)

// decodeColumnValue converts one column's raw length-coded text (raw) into
// its output Go value, applying (in order): a caller converter for this
// column, a caller default converter for this wire type, then the built-in
// default decoding for the type. is_null short-circuits all of the above
// to nil, matching the original's "don't convert NULLs" rule.
//
// A temporal value whose shape fails validation is never an error: it is
// replaced by the matching Options.Invalid*Value if set, or else decoded
// as a raw UTF-8 string. Errors come from an encoding failure, a numeric,
// decimal or empty-YEAR parse failure, an unknown type code, or a
// converter's own error return. A panicking converter is not recovered.
func decodeColumnValue(raw []byte, isNull bool, col *ColumnDescriptor, slot ConverterSlot, opts *Options) (any, error) {
	if isNull {
		return nil, nil
	}

	if slot.Converter != nil {
		materialized, err := materializeForConverter(raw, slot.Encoding)
		if err != nil {
			return nil, err
		}
		return slot.Converter(materialized)
	}

	if opts != nil && opts.DefaultConverters != nil {
		if conv, ok := opts.DefaultConverters[col.Type]; ok && conv != nil {
			materialized, err := materializeForConverter(raw, slot.Encoding)
			if err != nil {
				return nil, err
			}
			return conv(materialized)
		}
	}

	return defaultConvert(raw, col, slot.Encoding, opts)
}

// materializeForConverter turns a column's raw wire bytes into the value a
// caller-supplied converter receives: an independent copy of the raw bytes
// for a binary column (no encoding), or the charset-decoded text
// re-encoded as UTF-8 bytes for a named-encoding column — matching the
// original accelerator's pre-conversion step of building a Python bytes or
// str object before ever calling the converter.
func materializeForConverter(raw []byte, charsetName string) ([]byte, error) {
	if charsetName == "" {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}

	text, err := decodeText(raw, charsetName)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func defaultConvert(raw []byte, col *ColumnDescriptor, charsetName string, opts *Options) (any, error) {
	switch col.Type {
	case FieldTypeDecimal, FieldTypeNewDecimal:
		text, err := decodeText(raw, charsetName)
		if err != nil {
			return nil, err
		}
		return decodeDecimal([]byte(text))

	case FieldTypeTiny, FieldTypeShort, FieldTypeLong, FieldTypeLongLong, FieldTypeInt24:
		if col.unsigned() {
			return strconv.ParseUint(string(raw), 10, 64)
		}
		return strconv.ParseInt(string(raw), 10, 64)

	case FieldTypeFloat, FieldTypeDouble:
		return strconv.ParseFloat(string(raw), 64)

	case FieldTypeNULL:
		return nil, nil

	case FieldTypeDateTime, FieldTypeTimestamp:
		return decodeDateTimeValue(raw, opts), nil

	case FieldTypeNewDate, FieldTypeDate:
		return decodeDateValue(raw, opts), nil

	case FieldTypeTime:
		return decodeTimeValue(raw, opts), nil

	case FieldTypeYear:
		if len(raw) == 0 {
			return nil, errMalformedPacket
		}
		return strconv.ParseInt(string(raw), 10, 32)

	case FieldTypeBit, FieldTypeJSON, FieldTypeTinyBLOB, FieldTypeMediumBLOB,
		FieldTypeLongBLOB, FieldTypeBLOB, FieldTypeGeometry, FieldTypeEnum,
		FieldTypeSet, FieldTypeVarChar, FieldTypeVarString, FieldTypeString:
		return decodeStringFamily(raw, col, charsetName, opts)

	default:
		return nil, newInternalError("unknown column type code: " + col.Type.String())
	}
}

func decodeStringFamily(raw []byte, col *ColumnDescriptor, charsetName string, opts *Options) (any, error) {
	if charsetName == "" {
		// Binary column: return a copy, never alias the shared packet
		// buffer past this row's lifetime.
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}

	text, err := decodeText(raw, charsetName)
	if err != nil {
		return nil, err
	}

	if col.Type == FieldTypeJSON && opts != nil && opts.ParseJSON {
		return decodeJSON(text)
	}

	return text, nil
}

func decodeDateTimeValue(raw []byte, opts *Options) any {
	if !checkAnyDateTimeStr(raw) {
		if opts != nil && opts.InvalidDateTimeValue != nil {
			return opts.InvalidDateTimeValue
		}
		return string(raw)
	}
	return dateTimeValue(parseDateTime(raw))
}

func decodeDateValue(raw []byte, opts *Options) any {
	if !checkDateStr(raw) {
		if opts != nil && opts.InvalidDateValue != nil {
			return opts.InvalidDateValue
		}
		return string(raw)
	}
	p := parseDate(raw)
	return dateTimeValue(p)
}

func decodeTimeValue(raw []byte, opts *Options) any {
	sign := checkAnyTimedeltaStr(raw)
	if sign == 0 {
		if opts != nil && opts.InvalidTimeValue != nil {
			return opts.InvalidTimeValue
		}
		return string(raw)
	}
	return timedeltaToDuration(parseTimedelta(raw, sign))
}
