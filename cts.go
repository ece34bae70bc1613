// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

func ctsSingle(path string, comp Compression) (*Table, error) {
	return readTableFile(path, comp, readOpts{types: map[string]colType{"SNP": stringType}})
}

// CtsChr parses a set of .cts continuous-annotation files split across
// chromosomes via {lo:hi} range notation in pattern, stacking the
// shards in chromosome order. The compressed suffix is probed on disk
// per shard.
func CtsChr(pattern string) (*Table, error) {
	paths, err := Expand(pattern)
	if err != nil {
		return nil, err
	}
	log.Debugf("reading %d cts shard(s) for %s", len(paths), pattern)
	shards := make([]*Table, len(paths))
	for i, p := range paths {
		s, comp, err := WhichCompression(p)
		if err != nil {
			return nil, err
		}
		shards[i], err = ctsSingle(p+s, comp)
		if err != nil {
			return nil, err
		}
	}
	return concatTables(shards)
}

// CtsFromList parses one .cts dataset per pattern and concatenates
// them sideways, keyed on the SNP column.
func CtsFromList(patterns []string) (*Table, error) {
	return readFromList(patterns, CtsChr, "--cts-bin")
}

// cutCts bins one continuous annotation into named intervals. The
// user-supplied breaks are extended with sentinel bounds so that the
// observed min and max are always covered, and the interval labels use
// "min"/"max" for the endpoints so that names agree across shards with
// different extrema. Intervals are left-closed: a value equal to a
// break falls into the interval starting at that break.
//
// The returned labels slice holds one interval label per input value
// (empty if the value falls outside every interval, which the caller
// treats as an internal error); levels lists all interval labels in
// ascending order.
func cutCts(vec, breaks []float64, prefix string) (labels, levels []string, err error) {
	if len(vec) == 0 {
		return nil, nil, errors.New("cts variable has no values")
	}
	maxCts := floats.Max(vec)
	minCts := floats.Min(vec)
	cutBreaks := append([]float64(nil), breaks...)
	nameBreaks := append([]float64(nil), breaks...)
	if allGeq(cutBreaks, maxCts) || allLeq(cutBreaks, minCts) {
		return nil, nil, errors.New("all breaks lie outside the range of the cts variable")
	}
	if allLeq(cutBreaks, maxCts) {
		nameBreaks = append(nameBreaks, maxCts)
		cutBreaks = append(cutBreaks, maxCts+1)
	}
	if allGeq(cutBreaks, minCts) {
		nameBreaks = append(nameBreaks, minCts)
		cutBreaks = append(cutBreaks, minCts-1)
	}
	sort.Float64s(cutBreaks)
	sort.Float64s(nameBreaks)
	names := make([]string, len(nameBreaks))
	for i, b := range nameBreaks {
		names[i] = strconv.FormatFloat(b, 'g', -1, 64)
	}
	names[0] = "min"
	names[len(names)-1] = "max"
	levels = make([]string, len(cutBreaks)-1)
	for i := range levels {
		levels[i] = prefix + names[i] + "_" + names[i+1]
	}
	labels = make([]string, len(vec))
	for i, v := range vec {
		j := sort.SearchFloat64s(cutBreaks, v)
		if j == len(cutBreaks) || cutBreaks[j] != v {
			j--
		}
		if j >= 0 && j < len(levels) {
			labels[i] = levels[j]
		}
	}
	return labels, levels, nil
}

func allGeq(xs []float64, bound float64) bool {
	for _, x := range xs {
		if x < bound {
			return false
		}
	}
	return true
}

func allLeq(xs []float64, bound float64) bool {
	for _, x := range xs {
		if x > bound {
			return false
		}
	}
	return true
}

// CtsDummies cuts each continuous annotation of cts into bins and
// replaces it with one 0/1 indicator column per bin. The first column
// of cts must be SNP; breaks supplies one breakpoint sequence per
// remaining column. names, if non-nil, overrides the per-column label
// prefixes (default: the column names).
func CtsDummies(cts *Table, breaks [][]float64, names []string) (*Table, error) {
	if len(breaks) != len(cts.Cols)-1 {
		return nil, errors.New("wrong number of breaks")
	}
	snp := cts.Col("SNP")
	if snp == nil || len(cts.Cols) == 0 || cts.Cols[0].Name != "SNP" {
		return nil, errors.New("first column of a cts table must be SNP")
	}
	if names == nil {
		for _, col := range cts.Cols[1:] {
			names = append(names, col.Name)
		}
	}
	nrows := cts.NumRows()
	hits := make([]int, nrows)
	out := &Table{Cols: []Column{*snp}}
	for i, col := range cts.Cols[1:] {
		if col.Num == nil {
			return nil, fmt.Errorf("cts column %q is not numeric", col.Name)
		}
		labels, levels, err := cutCts(col.Num, breaks[i], names[i])
		if err != nil {
			return nil, err
		}
		for _, level := range levels {
			dummy := Column{Name: level, Num: make([]float64, nrows)}
			for row, label := range labels {
				if label == level {
					dummy.Num[row] = 1
					hits[row]++
				}
			}
			out.Cols = append(out.Cols, dummy)
		}
	}
	for _, n := range hits {
		if n != len(cts.Cols)-1 {
			return nil, errors.New("some SNPs have no annotation; this is a bug")
		}
	}
	return out, nil
}
