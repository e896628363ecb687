// SPDX-FileCopyrightText: 2025 Antoni Szymański
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/antoniszymanski/targs-go/targs"
)

type ServerArgs struct {
	Port  int      `default:"8080" help:"port to listen on"`
	Hosts []string `arg:"host,nonempty" default:"localhost" help:"hosts to bind"`
}

type LogArgs struct {
	Verbose bool   `help:"enable verbose output"`
	File    string `arg:"log-file,required" placeholder:"PATH"`
}

type Args struct {
	ServerArgs
	LogArgs
}

func main() {
	p, err := targs.NewGrouped[Args](targs.WithProg("targs-example"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	args := p.Parse(os.Args[1:])
	fmt.Println("server:", args.Port, args.Hosts)
	fmt.Println("log:", args.Verbose, args.File)
}
