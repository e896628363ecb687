// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

// Package targs derives command-line parsers from tagged struct definitions.
//
// A record is a plain struct; each exported field becomes one --flag whose
// name, type, arity, requiredness and help text are read from the field's
// declaration. Parsing returns a populated instance of the record type.
// Embedding several records into one composes their flags into a single
// parser with one labeled help section per embedded record.
package targs

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type fieldKind uint8

const (
	kindScalar fieldKind = iota
	kindToggle
	kindSlice
	kindHelp
)

// field is the translated form of one record field.
type field struct {
	name        string // flag name, without the -- prefix
	group       string
	help        string
	placeholder string
	kind        fieldKind
	oneOrMore   bool // kindSlice: at least one value per occurrence
	required    bool
	def         reflect.Value // resolved default; invalid when required
	typ         reflect.Type
	index       []int // field index path into the record
}

// invocation renders the flag as it appears in usage and help text.
func (f *field) invocation() string {
	switch f.kind {
	case kindHelp:
		return "-h, --help"
	case kindToggle:
		return "--" + f.name
	case kindSlice:
		if f.oneOrMore {
			return fmt.Sprintf("--%s %s [%s ...]", f.name, f.placeholder, f.placeholder)
		}
		return fmt.Sprintf("--%s [%s ...]", f.name, f.placeholder)
	default:
		return fmt.Sprintf("--%s %s", f.name, f.placeholder)
	}
}

func scalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// coerceScalar converts a raw token into a value of typ.
func coerceScalar(typ reflect.Type, s string) (reflect.Value, error) {
	v := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bool value %q", s)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid int value %q", s)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid uint value %q", s)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid float value %q", s)
		}
		v.SetFloat(n)
	default:
		return reflect.Value{}, fmt.Errorf("no coercion for %s", typ)
	}
	return v, nil
}

// coerceDefault converts a default tag literal into a value of typ. Slice
// literals are comma-separated.
func coerceDefault(typ reflect.Type, literal string) (reflect.Value, error) {
	if typ.Kind() != reflect.Slice {
		return coerceScalar(typ, literal)
	}

	parts := strings.Split(literal, ",")
	v := reflect.MakeSlice(typ, 0, len(parts))
	for _, part := range parts {
		elem, err := coerceScalar(typ.Elem(), strings.TrimSpace(part))
		if err != nil {
			return reflect.Value{}, err
		}
		v = reflect.Append(v, elem)
	}
	return v, nil
}

// flagName converts a Go field name into its kebab-case flag name.
func flagName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 2)
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}
