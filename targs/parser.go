// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"io"
	"os"
	"path/filepath"
	"reflect"

	"github.com/elliotchance/orderedmap/v3"
)

// Parser holds the flag configuration derived from the record type T.
// Construction is pure and stateless; each Parse call owns its result.
type Parser[T any] struct {
	prog   string
	out    io.Writer // overrides stdout/stderr when set
	flags  *orderedmap.OrderedMap[string, *field]
	groups []string // section order for help rendering
}

// New builds a parser bound to T by translating each of T's declared fields
// into one flag. Fields of embedded structs are translated in place, without
// grouping; use NewGrouped for one help section per embedded record.
//
// Translation failures (unsupported field type, malformed default) are
// programming errors in the record definition and are returned immediately.
func New[T any](opts ...Option) (*Parser[T], error) {
	o := buildOptions(opts)
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, RecordTypeError{Type: t}
	}

	p := newParser[T](o)
	fields, err := compileRecord(t, o.group, nil)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if err := p.add(f); err != nil {
			return nil, err
		}
	}
	if o.helpEnabled(false) && !p.flags.Has("help") {
		if err := p.add(helpField(o.group, nil)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func newParser[T any](o options) *Parser[T] {
	prog := o.prog
	if prog == "" {
		prog = filepath.Base(os.Args[0])
	}
	return &Parser[T]{
		prog:  prog,
		out:   o.out,
		flags: orderedmap.NewOrderedMap[string, *field](),
	}
}

func (p *Parser[T]) add(f *field) error {
	if p.flags.Has(f.name) {
		return DuplicateFlagError{Name: f.name}
	}
	p.flags.Set(f.name, f)

	for _, g := range p.groups {
		if g == f.group {
			return nil
		}
	}
	p.groups = append(p.groups, f.group)
	return nil
}

// Parse consumes all tokens and returns a populated T. Unrecognized tokens,
// a missing mandatory flag, or a value failing coercion print a usage error
// and terminate the process; -h/--help prints help and exits.
//
// An optional pre-built instance is populated in place instead of a fresh
// default instance.
func (p *Parser[T]) Parse(args []string, into ...*T) *T {
	dst := p.instance(into)
	p.consume(reflect.ValueOf(dst).Elem(), args, false)
	return dst
}

// ParseKnown consumes recognized tokens and returns the populated T together
// with the unconsumed tokens, for further processing by another parser.
func (p *Parser[T]) ParseKnown(args []string, into ...*T) (*T, []string) {
	dst := p.instance(into)
	rest := p.consume(reflect.ValueOf(dst).Elem(), args, true)
	return dst, rest
}

// instance materializes the parse target: the caller's pre-built instance
// when given, otherwise a fresh T with every field set to its default.
func (p *Parser[T]) instance(into []*T) *T {
	if len(into) > 0 && into[0] != nil {
		return into[0]
	}
	dst := new(T)
	v := reflect.ValueOf(dst).Elem()
	for _, f := range p.flags.AllFromFront() {
		if f.kind == kindHelp || f.required || !f.def.IsValid() {
			continue
		}
		v.FieldByIndex(f.index).Set(f.def)
	}
	return dst
}

type options struct {
	prog    string
	group   string
	out     io.Writer
	namer   func(string) string
	help    bool
	helpSet bool
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) helpEnabled(dflt bool) bool {
	if o.helpSet {
		return o.help
	}
	return dflt
}

type Option func(*options)

// WithProg sets the program name used in usage and error output.
func WithProg(prog string) Option {
	return func(o *options) { o.prog = prog }
}

// WithGroup scopes a flat parser's flags under one labeled help section.
func WithGroup(title string) Option {
	return func(o *options) { o.group = title }
}

// WithHelp registers the standard -h/--help flag on a flat parser.
func WithHelp() Option {
	return func(o *options) { o.help = true; o.helpSet = true }
}

// WithoutHelp suppresses the automatic help flag of a grouped parser.
func WithoutHelp() Option {
	return func(o *options) { o.help = false; o.helpSet = true }
}

// WithOutput redirects help and usage-error output, primarily for tests.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithGroupNamer overrides how an ancestor type name maps to its group label.
func WithGroupNamer(namer func(typeName string) string) Option {
	return func(o *options) { o.namer = namer }
}
