// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// mSingle parses a single .l{N}.M or .l{N}.M_5_50 file: one line of
// whitespace-separated floats, one per annotation category.
func mSingle(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%s: empty file", path)
	}
	fields := strings.Fields(scanner.Text())
	out := make([]float64, len(fields))
	for i, tok := range fields {
		out[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return out, nil
}

// MChr reads the variant-count vectors for one filename pattern,
// expanding {lo:hi} range notation, and sums them element-wise across
// chromosome shards. n selects the .l{n}.M suffix; common selects the
// frequency-filtered .M_5_50 variant.
func MChr(pattern string, n int, common bool) ([]float64, error) {
	suffix := ".l" + strconv.Itoa(n) + ".M"
	if common {
		suffix += "_5_50"
	}
	paths, err := Expand(pattern + suffix)
	if err != nil {
		return nil, err
	}
	var total []float64
	for _, path := range paths {
		v, err := mSingle(path)
		if err != nil {
			return nil, err
		}
		if total == nil {
			total = v
		} else {
			if len(v) != len(total) {
				return nil, fmt.Errorf("%s: expected %d categories, got %d", path, len(total), len(v))
			}
			floats.Add(total, v)
		}
	}
	return total, nil
}

// MFromList reads one variant-count vector per pattern and
// concatenates them into a single vector, in input order.
func MFromList(patterns []string, n int, common bool) ([]float64, error) {
	var out []float64
	for _, pattern := range patterns {
		v, err := MChr(pattern, n, common)
		if err != nil {
			return nil, err
		}
		out = append(out, v...)
	}
	return out, nil
}
