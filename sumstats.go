// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"fmt"
)

// Sumstats parses a .sumstats file (optionally gzip or bz2 compressed,
// decided from the path suffix). The required columns are SNP, Z, and
// N; with alleles set, A1 and A2 are kept as well. With dropNA set,
// any row with a missing value in a kept column is removed.
func Sumstats(path string, alleles, dropNA bool) (*Table, error) {
	usecols := []string{"SNP", "Z", "N"}
	if alleles {
		usecols = append(usecols, "A1", "A2")
	}
	t, err := readTableFile(path, GetCompression(path), readOpts{
		usecols: usecols,
		types: map[string]colType{
			"SNP": stringType,
			"Z":   floatType,
			"N":   floatType,
			"A1":  stringType,
			"A2":  stringType,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("improperly formatted sumstats file: %w", err)
	}
	if dropNA {
		t = t.dropNA()
	}
	return t, nil
}

// SumstatsFromList parses several .sumstats files and concatenates
// them sideways, keyed on the SNP column.
func SumstatsFromList(paths []string, alleles bool) (*Table, error) {
	return readFromList(paths, func(path string) (*Table, error) {
		return Sumstats(path, alleles, true)
	}, "sumstats")
}
