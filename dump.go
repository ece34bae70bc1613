// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// dumpCommand prints a summary of any supported file kind, for
// checking inputs before handing them to the regression front end.
type dumpCommand struct{}

func (cmd *dumpCommand) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	kind := flags.String("kind", "sumstats", "file `kind` (sumstats, ldscore, annot, frq, cts, m)")
	alleles := flags.Bool("alleles", false, "keep A1/A2 columns (sumstats)")
	order := flags.Int("n", 2, "LD score order for .M files")
	common := flags.Bool("common", false, "read .M_5_50 instead of .M")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s [options] path\n", prog)
		return 2
	}
	path := flags.Arg(0)

	if *kind == "m" {
		var v []float64
		v, err = MChr(path, *order, *common)
		if err != nil {
			return 1
		}
		fmt.Fprintf(stdout, "%d categories: %v\n", len(v), v)
		return 0
	}

	var t *Table
	switch *kind {
	case "sumstats":
		t, err = Sumstats(path, *alleles, true)
	case "ldscore":
		if strings.Contains(path, "{") {
			t, err = LDScoreChr(path)
		} else {
			t, err = LDScore(path)
		}
	case "annot":
		t, err = Annot(path, "")
	case "frq":
		t, err = Frq(path)
	case "cts":
		t, err = CtsChr(path)
	default:
		err = fmt.Errorf("unknown kind %q", *kind)
		return 2
	}
	if err != nil {
		return 1
	}
	fmt.Fprintf(stdout, "%d rows, %d columns: %s\n", t.NumRows(), len(t.Cols), strings.Join(t.ColNames(), " "))
	return 0
}
