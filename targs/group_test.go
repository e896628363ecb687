// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package targs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type ServerArgs struct {
	A int   `default:"1"`
	C []int `arg:"c,nonempty" default:"1" help:"help for c."`
}

type LogArgs struct {
	B bool
	D string `arg:"d,required" placeholder:"REQ_D"`
}

type ComposedArgs struct {
	ServerArgs
	LogArgs
}

func TestGroupedParseCoversAllAncestors(t *testing.T) {
	p, err := NewGrouped[ComposedArgs]()
	if err != nil {
		t.Fatal(err)
	}

	got := p.Parse([]string{"--c", "2", "3", "--d", "hello"})
	want := &ComposedArgs{
		ServerArgs: ServerArgs{A: 1, C: []int{2, 3}},
		LogArgs:    LogArgs{B: false, D: "hello"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parse mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupedMissingRequired(t *testing.T) {
	var out strings.Builder
	p, err := NewGrouped[ComposedArgs](WithOutput(&out), WithProg("app"))
	if err != nil {
		t.Fatal(err)
	}

	mustExit(t, 2, func() { p.Parse(nil) })
	if !strings.Contains(out.String(), "the following arguments are required: --d") {
		t.Errorf("missing required diagnostic:\n%s", out.String())
	}
}

func TestGroupedHelpSections(t *testing.T) {
	p, err := NewGrouped[ComposedArgs]()
	if err != nil {
		t.Fatal(err)
	}

	help := p.Help()
	for _, section := range []string{"Server:", "Log:", "Help:"} {
		if !strings.Contains(help, section) {
			t.Errorf("help output missing section %q:\n%s", section, help)
		}
	}
	if !strings.Contains(help, "-h, --help") {
		t.Errorf("help output missing help flag:\n%s", help)
	}
}

func TestGroupedHelpExits(t *testing.T) {
	var out strings.Builder
	p, err := NewGrouped[ComposedArgs](WithOutput(&out))
	if err != nil {
		t.Fatal(err)
	}

	mustExit(t, 0, func() { p.Parse([]string{"-h"}) })
	if !strings.Contains(out.String(), "Server:") {
		t.Errorf("help output missing sections:\n%s", out.String())
	}
}

func TestGroupedWithoutHelp(t *testing.T) {
	p, err := NewGrouped[ComposedArgs](WithoutHelp())
	if err != nil {
		t.Fatal(err)
	}
	if p.flags.Has("help") {
		t.Error("help flag registered despite WithoutHelp")
	}
}

func TestGroupNamerOverride(t *testing.T) {
	p, err := NewGrouped[ComposedArgs](
		WithGroupNamer(strings.ToUpper),
		WithoutHelp(),
	)
	if err != nil {
		t.Fatal(err)
	}

	help := p.Help()
	for _, section := range []string{"SERVERARGS:", "LOGARGS:"} {
		if !strings.Contains(help, section) {
			t.Errorf("help output missing section %q:\n%s", section, help)
		}
	}
}

func TestGroupedDuplicateAcrossAncestors(t *testing.T) {
	type leftArgs struct {
		Name string
	}
	type rightArgs struct {
		Name string
	}
	type both struct {
		leftArgs
		rightArgs
	}
	_, err := NewGrouped[both]()
	var dfe DuplicateFlagError
	if !errors.As(err, &dfe) {
		t.Fatalf("err = %v, want DuplicateFlagError", err)
	}
	if dfe.Name != "name" {
		t.Errorf("dfe.Name = %q, want name", dfe.Name)
	}
}

type quietArgs struct {
	Quiet bool
}

type wrapperArgs struct {
	quietArgs
}

func TestGroupedUnexportedAncestor(t *testing.T) {
	p, err := NewGrouped[wrapperArgs](WithoutHelp())
	if err != nil {
		t.Fatal(err)
	}

	got := p.Parse([]string{"--quiet"})
	if !got.Quiet {
		t.Error("Quiet = false after --quiet, want true")
	}
}

func TestGroupedIgnoresNonRecordAncestors(t *testing.T) {
	type mixed struct {
		ServerArgs
		error // non-record embed, ignored
	}
	p, err := NewGrouped[mixed](WithoutHelp())
	if err != nil {
		t.Fatal(err)
	}

	got := p.Parse([]string{"--a", "2"})
	if got.A != 2 {
		t.Errorf("A = %d, want 2", got.A)
	}
	if p.flags.Len() != 2 {
		t.Errorf("flag count = %d, want 2", p.flags.Len())
	}
}
