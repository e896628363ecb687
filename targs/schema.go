// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/structtag"
)

const (
	optRequired = "required"
	optNonEmpty = "nonempty"
)

// compileRecord walks the declared fields of a record type in order and
// translates each into a flag definition. group labels every produced flag;
// base is the field index path of the record within the outer target type.
func compileRecord(t reflect.Type, group string, base []int) ([]*field, error) {
	var fields []*field
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			// Embedded records contribute their promoted fields; the
			// exported leaves stay settable even when the embedded type
			// itself is unexported.
			if sf.Type.Kind() != reflect.Struct {
				continue
			}
			sub := make([]int, 0, len(base)+1)
			sub = append(sub, base...)
			inner, err := compileRecord(sf.Type, group, append(sub, i))
			if err != nil {
				return nil, err
			}
			fields = append(fields, inner...)
			continue
		}
		if sf.PkgPath != "" {
			// Unexported fields carry no per-instance flag state.
			continue
		}

		f, err := compileField(t, sf, group, base)
		if err != nil {
			return nil, err
		}
		if f != nil {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func compileField(t reflect.Type, sf reflect.StructField, group string, base []int) (*field, error) {
	name := flagName(sf.Name)
	var required, nonEmpty bool
	if tags, err := structtag.Parse(string(sf.Tag)); err == nil {
		if tag, err := tags.Get("arg"); err == nil {
			if tag.Name != "" {
				name = tag.Name
			}
			required = tag.HasOption(optRequired)
			nonEmpty = tag.HasOption(optNonEmpty)
		}
	}
	if name == "-" {
		return nil, nil
	}
	index := make([]int, 0, len(base)+1)
	index = append(index, base...)
	index = append(index, sf.Index...)

	if name == "h" || name == "help" {
		return helpField(group, index), nil
	}

	f := &field{
		name:        name,
		group:       group,
		help:        sf.Tag.Get("help"),
		placeholder: sf.Tag.Get("placeholder"),
		required:    required,
		typ:         sf.Type,
		index:       index,
	}
	if f.placeholder == "" {
		f.placeholder = strings.ToUpper(name)
	}

	switch {
	case sf.Type.Kind() == reflect.Slice && scalarKind(sf.Type.Elem().Kind()):
		f.kind = kindSlice
		f.oneOrMore = nonEmpty
	case scalarKind(sf.Type.Kind()):
		f.kind = kindScalar
	default:
		return nil, UnsupportedTypeError{Field: sf.Name, Type: sf.Type}
	}

	if !required {
		def, err := resolveDefault(t, sf)
		if err != nil {
			return nil, err
		}
		f.def = def
		if f.kind == kindScalar && sf.Type.Kind() == reflect.Bool {
			f.kind = kindToggle
		} else {
			f.help = appendDefault(f.help, def)
		}
	}
	return f, nil
}

// resolveDefault resolves a field's default value: a Default<Field> method on
// the record type wins, then the default tag literal, then the zero value.
func resolveDefault(t reflect.Type, sf reflect.StructField) (reflect.Value, error) {
	methodName := "Default" + sf.Name
	if m, ok := reflect.PointerTo(t).MethodByName(methodName); ok {
		mt := m.Type
		if mt.NumIn() != 1 || mt.NumOut() != 1 || !mt.Out(0).AssignableTo(sf.Type) {
			return reflect.Value{}, DefaultMethodError{
				Field:  sf.Name,
				Method: methodName,
				Type:   sf.Type,
			}
		}
		out := m.Func.Call([]reflect.Value{reflect.New(t)})
		return out[0], nil
	}

	if literal, ok := sf.Tag.Lookup("default"); ok {
		def, err := coerceDefault(sf.Type, literal)
		if err != nil {
			return reflect.Value{}, DefaultLiteralError{
				Field:   sf.Name,
				Literal: literal,
				Err:     err,
			}
		}
		return def, nil
	}

	return reflect.Zero(sf.Type), nil
}

func appendDefault(help string, def reflect.Value) string {
	suffix := fmt.Sprintf("default: %v", def.Interface())
	if help == "" {
		return suffix
	}
	return help + " " + suffix
}

func helpField(group string, index []int) *field {
	return &field{
		name:  "help",
		group: group,
		help:  "show this help message and exit",
		kind:  kindHelp,
		index: index,
	}
}

// defaultGroupName derives a group label from an ancestor record's type name.
func defaultGroupName(typeName string) string {
	typeName = strings.ReplaceAll(typeName, "Namespace", "")
	return strings.ReplaceAll(typeName, "Args", "")
}
