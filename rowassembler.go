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
	"strconv"
	"unicode"
)

// rowAssembler builds one output value per row in the shape the caller
// asked for (spec §4.6): a plain slice, a named-record struct value, or a
// map. The named-record struct type is built once per result set with
// reflect.StructOf, the Go analogue of the original accelerator's
// PyStructSequence_NewType call in State_init.
type rowAssembler struct {
	cols       []*ColumnDescriptor
	converters []ConverterSlot
	opts       *Options
	mode       OutputMode
	anyType    reflect.Type
	rowType    reflect.Type // only set for OutputNamedRecord
}

func newRowAssembler(cols []*ColumnDescriptor, converters []ConverterSlot, opts *Options) *rowAssembler {
	a := &rowAssembler{
		cols:       cols,
		converters: converters,
		opts:       opts,
		mode:       opts.OutputMode,
		anyType:    reflect.TypeOf((*any)(nil)).Elem(),
	}
	if a.mode == OutputNamedRecord {
		a.rowType = reflect.StructOf(a.structFields())
	}
	return a
}

// structFields derives one exported struct field per column, sanitizing
// column names into valid exported Go identifiers the way a namedtuple
// generator sanitizes into valid Python identifiers: an empty name or one
// not starting with a letter becomes "Column<index>", and a repeated name
// gets "_<n>" appended, n counting its earlier occurrences (1 for the
// second one).
func (a *rowAssembler) structFields() []reflect.StructField {
	seen := make(map[string]int)
	fields := make([]reflect.StructField, len(a.cols))
	for i, col := range a.cols {
		name := exportedFieldName(col.Name, i)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name += "_" + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		fields[i] = reflect.StructField{
			Name: name,
			Type: a.anyType,
			Tag:  reflect.StructTag(`json:"` + col.Name + `"`),
		}
	}
	return fields
}

func exportedFieldName(name string, idx int) string {
	if name == "" {
		return "Column" + strconv.Itoa(idx)
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	if !unicode.IsLetter(r[0]) {
		return "Column" + strconv.Itoa(idx)
	}
	out := make([]rune, 0, len(r))
	for _, c := range r {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

// Assemble decodes every column of one row (data, a length-coded-string
// sequence already stripped of its packet header) into the configured
// output shape.
func (a *rowAssembler) Assemble(data []byte) (any, error) {
	values := make([]any, len(a.cols))

	for i, col := range a.cols {
		raw, isNull, n, err := readLengthEncodedString(data)
		if err != nil {
			return nil, newInternalError("malformed row packet: " + err.Error())
		}
		data = data[n:]

		v, err := decodeColumnValue(raw, isNull, col, a.converters[i], a.opts)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	switch a.mode {
	case OutputNamedRecord:
		row := reflect.New(a.rowType).Elem()
		for i, v := range values {
			row.Field(i).Set(reflect.ValueOf(&v).Elem())
		}
		return row.Interface(), nil

	case OutputMapping:
		m := make(map[string]any, len(a.cols))
		for i, col := range a.cols {
			m[col.Name] = values[i]
		}
		return m, nil

	default: // OutputSequence
		return values, nil
	}
}
