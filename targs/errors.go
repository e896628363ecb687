// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"fmt"
	"reflect"
)

// RecordTypeError reports a type parameter that is not a struct type.
type RecordTypeError struct {
	Type reflect.Type
}

func (err RecordTypeError) Error() string {
	return fmt.Sprintf("targs: record type must be a struct, got %s", err.Type)
}

// UnsupportedTypeError reports a field whose type has no flag translation.
type UnsupportedTypeError struct {
	Field string
	Type  reflect.Type
}

func (err UnsupportedTypeError) Error() string {
	return fmt.Sprintf("targs: unsupported type %s for field %s", err.Type, err.Field)
}

// DefaultMethodError reports a Default<Field> method whose signature does not
// produce a value assignable to the field's declared type.
type DefaultMethodError struct {
	Field  string
	Method string
	Type   reflect.Type
}

func (err DefaultMethodError) Error() string {
	return fmt.Sprintf(
		"targs: method %s is not a valid default for field %s of type %s",
		err.Method, err.Field, err.Type,
	)
}

// DefaultLiteralError reports a default tag literal that failed coercion.
type DefaultLiteralError struct {
	Field   string
	Literal string
	Err     error
}

func (err DefaultLiteralError) Error() string {
	return fmt.Sprintf(
		"targs: cannot coerce default %q for field %s: %v",
		err.Literal, err.Field, err.Err,
	)
}

func (err DefaultLiteralError) Unwrap() error {
	return err.Err
}

// DuplicateFlagError reports a flag name registered more than once, either
// within one record or across composed records.
type DuplicateFlagError struct {
	Name string
}

func (err DuplicateFlagError) Error() string {
	return fmt.Sprintf("targs: duplicate flag --%s", err.Name)
}
