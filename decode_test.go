// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"testing"
)

func TestDecodeColumnValueTinyUnsigned(t *testing.T) {
	col := &ColumnDescriptor{Type: FieldTypeTiny, Flags: FlagUnsigned}
	v, err := decodeColumnValue([]byte("255"), false, col, ConverterSlot{}, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, ok := v.(uint64)
	if !ok || u != 255 {
		t.Fatalf("got %v (%T), want uint64(255)", v, v)
	}
}

func TestDecodeColumnValueNullShortCircuits(t *testing.T) {
	col := &ColumnDescriptor{Type: FieldTypeVarChar}
	v, err := decodeColumnValue(nil, true, col, ConverterSlot{Encoding: "utf-8"}, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("got %v, want nil", v)
	}
}

func TestDecodeColumnValueCustomConverterTakesPriority(t *testing.T) {
	col := &ColumnDescriptor{Type: FieldTypeLong}
	slot := ConverterSlot{Converter: func(raw []byte) (any, error) { return "converted:" + string(raw), nil }}
	v, err := decodeColumnValue([]byte("42"), false, col, slot, &Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "converted:42" {
		t.Fatalf("got %v, want converted:42", v)
	}
}

func TestDecodeColumnValueConverterReceivesMaterializedBinaryCopy(t *testing.T) {
	col := &ColumnDescriptor{Type: FieldTypeBLOB}
	raw := []byte("payload")
	var captured []byte
	slot := ConverterSlot{Converter: func(b []byte) (any, error) {
		captured = b
		return nil, nil
	}}
	if _, err := decodeColumnValue(raw, false, col, slot, &Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(captured) != "payload" {
		t.Fatalf("got %q, want %q", captured, "payload")
	}
	if &captured[0] == &raw[0] {
		t.Fatal("expected converter to receive an independent copy of raw bytes for a binary column, not an alias")
	}
}

func TestDecodeColumnValueConverterReceivesDecodedTextForNamedEncoding(t *testing.T) {
	col := &ColumnDescriptor{Type: FieldTypeVarChar}
	var captured string
	slot := ConverterSlot{Encoding: "utf-8", Converter: func(b []byte) (any, error) {
		captured = string(b)
		return nil, nil
	}}
	raw := []byte("h\xc3\xa9llo") // "héllo" encoded as utf-8
	if _, err := decodeColumnValue(raw, false, col, slot, &Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "héllo" {
		t.Fatalf("got %q, want %q", captured, "héllo")
	}
}

func TestDecodeDateTimeValueInvalidShapeFallsBackToRawString(t *testing.T) {
	v := decodeDateTimeValue([]byte("not-a-datetime"), &Options{})
	s, ok := v.(string)
	if !ok || s != "not-a-datetime" {
		t.Fatalf("got %v (%T), want raw string fallback", v, v)
	}
}

func TestDecodeDateTimeValueInvalidShapeUsesSubstitute(t *testing.T) {
	sentinel := "INVALID"
	v := decodeDateTimeValue([]byte("garbage"), &Options{InvalidDateTimeValue: sentinel})
	if v != sentinel {
		t.Fatalf("got %v, want substitute %v", v, sentinel)
	}
}

func TestDecodeTimeValueNegativeZeroAndInvalid(t *testing.T) {
	if v := decodeTimeValue([]byte("00:00:00"), &Options{}); v == nil {
		t.Fatal("expected zero TIME to decode, not nil")
	}
	if v := decodeTimeValue([]byte("-838:59:59"), &Options{}); v == nil {
		t.Fatal("expected negative TIME to decode")
	}
	v := decodeTimeValue([]byte("garbage"), &Options{})
	if s, ok := v.(string); !ok || s != "garbage" {
		t.Fatalf("got %v, want raw string fallback", v)
	}
}
