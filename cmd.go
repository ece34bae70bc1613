// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

type commandHandler interface {
	RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int
}

var handlers = map[string]commandHandler{
	"dump": &dumpCommand{},
}

// Main is the entry point for the ldparse command.
func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.StandardLogger().Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	handler, ok := handlers[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
	os.Exit(handler.RunCommand(os.Args[0]+" "+os.Args[1], os.Args[2:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	var names []string
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "usage: ldparse <subcommand> [options]\nsubcommands:\n")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
