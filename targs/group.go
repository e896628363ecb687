// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"reflect"
)

// NewGrouped builds a parser for a record type composed from embedded
// ancestor records. Each embedded struct contributes its flags under a help
// section labeled after its type name (with the "Namespace" and "Args"
// substrings removed); parsing semantics stay flat and a successful parse
// populates every ancestor's fields on one instance of T. Non-struct embeds
// are ignored.
//
// A standard help flag is added in a "Help" section unless disabled with
// WithoutHelp. A flag name shared by two ancestors is a DuplicateFlagError.
func NewGrouped[T any](opts ...Option) (*Parser[T], error) {
	o := buildOptions(opts)
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, RecordTypeError{Type: t}
	}
	namer := o.namer
	if namer == nil {
		namer = defaultGroupName
	}

	p := newParser[T](o)
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
			continue
		}
		fields, err := compileRecord(sf.Type, namer(sf.Type.Name()), sf.Index)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			if err := p.add(f); err != nil {
				return nil, err
			}
		}
	}
	if o.helpEnabled(true) && !p.flags.Has("help") {
		if err := p.add(helpField("Help", nil)); err != nil {
			return nil, err
		}
	}
	return p, nil
}
