// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var chromRangeRe = regexp.MustCompile(`\{(\d+):(\d+)\}`)

// Expand processes range notation like {1:22} in filenames, returning
// one concrete path per integer in the half-open interval [lo, hi).
// The upper bound is exclusive: {1:23} covers chromosomes 1 through 22.
// A pattern without a range marker expands to itself.
func Expand(pattern string) ([]string, error) {
	markers := chromRangeRe.FindAllStringSubmatch(pattern, -1)
	if len(markers) > 1 {
		return nil, fmt.Errorf("can only have one range {lo:hi} per filename: %q", pattern)
	}
	if len(markers) == 0 {
		return []string{pattern}, nil
	}
	lo, err := strconv.Atoi(markers[0][1])
	if err != nil {
		return nil, fmt.Errorf("bad range %q in %q: %w", markers[0][0], pattern, err)
	}
	hi, err := strconv.Atoi(markers[0][2])
	if err != nil {
		return nil, fmt.Errorf("bad range %q in %q: %w", markers[0][0], pattern, err)
	}
	out := []string{}
	for i := lo; i < hi; i++ {
		out = append(out, strings.Replace(pattern, markers[0][0], strconv.Itoa(i), 1))
	}
	return out, nil
}

// subChr substitutes a chromosome number for the @ placeholder used by
// per-chromosome annotation and frequency file sets.
func subChr(path string, chrom int) string {
	return strings.ReplaceAll(path, "@", strconv.Itoa(chrom))
}
