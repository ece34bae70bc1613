// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"fmt"
	"strconv"
)

type parseFunc func(path string) (*Table, error)

// readFromList parses each path and concatenates the results sideways.
// Every file after the first must have a SNP column identical, value
// for value and in the same order, to the first file's; the first
// file's SNP column is the one that survives. Non-SNP columns are
// renamed with a _<i> suffix (zero-based file index) to keep them
// distinct. noun names the dataset kind in error messages.
func readFromList(paths []string, parse parseFunc, noun string) (*Table, error) {
	tables := make([]*Table, len(paths))
	for i, path := range paths {
		y, err := parse(path)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			if !seriesEq(y.Col("SNP"), tables[0].Col("SNP")) {
				return nil, fmt.Errorf("%s files must have identical SNP columns", noun)
			}
			y = y.Drop("SNP")
		}
		tables[i] = y.suffixCols("_"+strconv.Itoa(i), "SNP")
	}
	merged, err := hconcat(tables)
	if err != nil {
		return nil, err
	}
	// SNP leads the merged table regardless of where file 0 kept it
	names := []string{"SNP"}
	for _, name := range merged.ColNames() {
		if name != "SNP" {
			names = append(names, name)
		}
	}
	return merged.Select(names...)
}
