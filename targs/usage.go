// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"strings"
)

// Usage renders the single-line usage summary. Optional flags are bracketed;
// mandatory ones are not.
func (p *Parser[T]) Usage() string {
	var sb strings.Builder
	sb.WriteString("usage: ")
	sb.WriteString(p.prog)
	for _, f := range p.flags.AllFromFront() {
		sb.WriteByte(' ')
		inv := f.invocation()
		if f.kind == kindHelp {
			inv = "-h"
		}
		if f.required {
			sb.WriteString(inv)
		} else {
			sb.WriteString("[" + inv + "]")
		}
	}
	return sb.String()
}

// Help renders the full help text: the usage line followed by one section
// per group, with flag invocations and help texts in aligned columns.
func (p *Parser[T]) Help() string {
	width := 0
	for _, f := range p.flags.AllFromFront() {
		if n := len(f.invocation()); n > width {
			width = n
		}
	}

	var sb strings.Builder
	sb.WriteString(p.Usage())
	sb.WriteByte('\n')

	for _, group := range p.groups {
		title := group
		if title == "" {
			title = "Options"
		}
		sb.WriteByte('\n')
		sb.WriteString(title)
		sb.WriteString(":\n")

		for _, f := range p.flags.AllFromFront() {
			if f.group != group {
				continue
			}
			sb.WriteString("  ")
			inv := f.invocation()
			sb.WriteString(inv)
			if f.help != "" {
				sb.WriteString(strings.Repeat(" ", width-len(inv)+2))
				sb.WriteString(f.help)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
