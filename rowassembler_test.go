// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package rowset

import (
	"reflect"
	"testing"
)

func varcharDatetimeCols() []*ColumnDescriptor {
	return []*ColumnDescriptor{
		{Name: "name", Type: FieldTypeVarChar},
		{Name: "created_at", Type: FieldTypeDateTime},
	}
}

func varcharDatetimeConverters() []ConverterSlot {
	return []ConverterSlot{{Encoding: "utf-8"}, {}}
}

func TestRowAssemblerSequenceMode(t *testing.T) {
	a := newRowAssembler(varcharDatetimeCols(), varcharDatetimeConverters(), &Options{OutputMode: OutputSequence})
	row := append(lenencString("Ada"), lenencString("1970-01-01 00:00:00")...)

	v, err := a.Assemble(row)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	values, ok := v.([]any)
	if !ok || len(values) != 2 {
		t.Fatalf("got %v (%T), want []any of length 2", v, v)
	}
	if values[0] != "Ada" {
		t.Fatalf("values[0] = %v, want Ada", values[0])
	}
}

func TestRowAssemblerMappingMode(t *testing.T) {
	a := newRowAssembler(varcharDatetimeCols(), varcharDatetimeConverters(), &Options{OutputMode: OutputMapping})
	row := append(lenencString("Grace"), lenencString("1970-01-01 00:00:00")...)

	v, err := a.Assemble(row)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map[string]any", v)
	}
	if m["name"] != "Grace" {
		t.Fatalf("m[name] = %v, want Grace", m["name"])
	}
}

func TestRowAssemblerNamedRecordMode(t *testing.T) {
	a := newRowAssembler(varcharDatetimeCols(), varcharDatetimeConverters(), &Options{OutputMode: OutputNamedRecord})
	row := append(lenencString("Margaret"), lenencString("1970-01-01 00:00:00")...)

	v, err := a.Assemble(row)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		t.Fatalf("got kind %v, want struct", rv.Kind())
	}
	nameField := rv.FieldByName("Name")
	if !nameField.IsValid() {
		t.Fatal("expected a Name field")
	}
	if got := nameField.Interface(); got != "Margaret" {
		t.Fatalf("Name = %v, want Margaret", got)
	}
}

func TestRowAssemblerNamedRecordDuplicateFieldNames(t *testing.T) {
	cols := []*ColumnDescriptor{
		{Name: "id", Type: FieldTypeLong, Flags: FlagUnsigned},
		{Name: "id", Type: FieldTypeLong, Flags: FlagUnsigned},
	}
	converters := []ConverterSlot{{}, {}}
	a := newRowAssembler(cols, converters, &Options{OutputMode: OutputNamedRecord})

	fields := a.structFields()
	if fields[0].Name == fields[1].Name {
		t.Fatalf("expected disambiguated field names, got %q twice", fields[0].Name)
	}
}

func TestRowAssemblerNullColumn(t *testing.T) {
	a := newRowAssembler(varcharDatetimeCols(), varcharDatetimeConverters(), &Options{OutputMode: OutputSequence})
	row := append(lenencNull(), lenencString("1970-01-01 00:00:00")...)

	v, err := a.Assemble(row)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	values := v.([]any)
	if values[0] != nil {
		t.Fatalf("values[0] = %v, want nil", values[0])
	}
}
