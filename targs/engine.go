// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

var osExit = os.Exit // Mockable for testing

// consume walks the token sequence and mutates target per recognized flag.
// In known mode unrecognized tokens are collected and returned; otherwise
// they are reported as a usage error together with missing mandatory flags.
func (p *Parser[T]) consume(target reflect.Value, args []string, known bool) []string {
	seen := set.New[string](0)
	var rest []string

	i := 0
	for i < len(args) {
		tok := args[i]
		i++

		name, eqValue, hasEq := splitToken(tok)
		if name == "" {
			rest = append(rest, tok)
			continue
		}

		f, ok := p.flags.Get(name)
		if !ok {
			rest = append(rest, tok)
			continue
		}
		seen.Insert(f.name)

		switch f.kind {
		case kindHelp:
			fmt.Fprint(p.helpOut(), p.Help())
			osExit(0)
			return nil

		case kindToggle:
			if hasEq {
				p.usageError("flag --%s takes no argument", f.name)
				return nil
			}
			target.FieldByIndex(f.index).SetBool(!f.def.Bool())

		case kindScalar:
			value := eqValue
			if !hasEq {
				if i >= len(args) || isOption(args[i]) {
					p.usageError("flag --%s: expected one argument", f.name)
					return nil
				}
				value = args[i]
				i++
			}
			v, err := coerceScalar(f.typ, value)
			if err != nil {
				p.usageError("flag --%s: %v", f.name, err)
				return nil
			}
			target.FieldByIndex(f.index).Set(v)

		case kindSlice:
			var values []string
			if hasEq {
				values = []string{eqValue}
			} else {
				for i < len(args) && !isOption(args[i]) {
					values = append(values, args[i])
					i++
				}
			}
			if f.oneOrMore && len(values) == 0 {
				p.usageError("flag --%s: expected at least one argument", f.name)
				return nil
			}
			v := reflect.MakeSlice(f.typ, 0, len(values))
			for _, value := range values {
				elem, err := coerceScalar(f.typ.Elem(), value)
				if err != nil {
					p.usageError("flag --%s: %v", f.name, err)
					return nil
				}
				v = reflect.Append(v, elem)
			}
			target.FieldByIndex(f.index).Set(v)
		}
	}

	var missing []string
	for _, f := range p.flags.AllFromFront() {
		if f.required && !seen.Contains(f.name) {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		p.usageError(
			"the following arguments are required: %s",
			strings.Join(missing, ", "),
		)
		return nil
	}

	if !known && len(rest) > 0 {
		p.usageError("unrecognized arguments: %s", strings.Join(rest, " "))
		return nil
	}
	return rest
}

// splitToken resolves a token into a flag name and an optional =value part.
// Non-flag tokens resolve to an empty name.
func splitToken(tok string) (name, value string, hasEq bool) {
	if tok == "-h" {
		return "help", "", false
	}
	body, ok := strings.CutPrefix(tok, "--")
	if !ok || body == "" {
		return "", "", false
	}
	name, value, hasEq = strings.Cut(body, "=")
	return name, value, hasEq
}

// isOption reports whether a token looks like a flag rather than a value.
// Negative numbers are values.
func isOption(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	return tok[1] < '0' || tok[1] > '9'
}

func (p *Parser[T]) usageError(format string, a ...any) {
	out := p.errOut()
	fmt.Fprintln(out, p.Usage())
	fmt.Fprintf(out, "%s: error: %s\n", p.prog, fmt.Sprintf(format, a...))
	osExit(2)
}

func (p *Parser[T]) errOut() io.Writer {
	if p.out != nil {
		return p.out
	}
	return os.Stderr
}

func (p *Parser[T]) helpOut() io.Writer {
	if p.out != nil {
		return p.out
	}
	return os.Stdout
}
