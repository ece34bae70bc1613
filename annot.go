// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Frq parses a .frq allele-frequency file, renaming the legacy MAF
// column to FRQ if present. The result has exactly the columns SNP and
// FRQ. The codec is decided from the path suffix.
func Frq(path string) (*Table, error) {
	return frqParser(path, GetCompression(path))
}

func frqParser(path string, comp Compression) (*Table, error) {
	t, err := readTableFile(path, comp, readOpts{types: map[string]colType{"SNP": stringType}})
	if err != nil {
		return nil, err
	}
	if t.HasCol("MAF") {
		t = t.Rename("MAF", "FRQ")
	}
	return t.Select("SNP", "FRQ")
}

// Annot parses a .annot file: the CHR, BP and CM columns are dropped
// and every remaining non-SNP column is coerced to float. If frqPath
// is non-empty, variants whose frequency lies outside (0.05, 0.95) are
// removed; the frequency file must list exactly the same SNPs in the
// same order as the annotation file.
func Annot(path, frqPath string) (*Table, error) {
	frqComp := NoCompression
	if frqPath != "" {
		frqComp = GetCompression(frqPath)
	}
	return annotParser(path, GetCompression(path), frqPath, frqComp)
}

func annotParser(path string, comp Compression, frqPath string, frqComp Compression) (*Table, error) {
	t, err := readTableFile(path, comp, readOpts{types: map[string]colType{"SNP": stringType}})
	if err != nil {
		return nil, err
	}
	if !t.HasCol("SNP") {
		return nil, fmt.Errorf("%s: missing column %q", path, "SNP")
	}
	t, err = t.Drop("CHR", "BP", "CM").AsFloat("SNP")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if frqPath != "" {
		frq, err := frqParser(frqPath, frqComp)
		if err != nil {
			return nil, err
		}
		if !seriesEq(frq.Col("SNP"), t.Col("SNP")) {
			return nil, errors.New(".frq and .annot files must have the same SNPs in the same order")
		}
		freq := frq.Col("FRQ").Num
		keep := make([]bool, len(freq))
		for i, v := range freq {
			keep[i] = v > 0.05 && v < 0.95
		}
		t = t.Filter(keep)
	}
	return t, nil
}

// AnnotFromList parses several .annot files and concatenates them
// sideways, keyed on the SNP column. The same frequency filter, if
// any, is applied to each file.
func AnnotFromList(paths []string, frqPath string) (*Table, error) {
	return readFromList(paths, func(path string) (*Table, error) {
		return Annot(path, frqPath)
	}, "annot")
}

// AnnotOverlap parses one or more annotation file sets and returns the
// pairwise overlap matrix of their categories: entry (i, j) is the dot
// product over variants of annotation columns i and j, with the
// columns of all file sets stacked side by side. The second return is
// the total number of variants counted.
//
// With numChr == 0, each entry of paths is a single file prefix and
// the .annot[.gz|.bz2] suffix is probed per file. With numChr > 0,
// each entry is an @-placeholder pattern covering chromosomes 1
// through numChr; the compressed suffix is probed on chromosome 1's
// file and assumed identical for the rest, and the per-chromosome
// matrices and variant counts are summed. frqPattern, if non-empty, is
// a frequency-file prefix (or @-pattern) handled the same way.
func AnnotOverlap(paths []string, numChr int, frqPattern string) (*mat.Dense, int, error) {
	if numChr == 0 {
		frqPath := ""
		frqComp := NoCompression
		if frqPattern != "" {
			s, comp, err := WhichCompression(frqPattern + ".frq")
			if err != nil {
				return nil, 0, err
			}
			frqPath = frqPattern + ".frq" + s
			frqComp = comp
		}
		tables := make([]*Table, len(paths))
		for i, path := range paths {
			s, comp, err := WhichCompression(path + ".annot")
			if err != nil {
				return nil, 0, err
			}
			tables[i], err = annotParser(path+".annot"+s, comp, frqPath, frqComp)
			if err != nil {
				return nil, 0, err
			}
		}
		return overlapMatrix(tables)
	}

	// One file per chromosome: resolve the compressed suffix once,
	// from chromosome 1's files.
	suffixes := make([]string, len(paths))
	comps := make([]Compression, len(paths))
	for i, path := range paths {
		s, comp, err := WhichCompression(subChr(path, 1) + ".annot")
		if err != nil {
			return nil, 0, err
		}
		suffixes[i] = ".annot" + s
		comps[i] = comp
	}
	frqSuffix := ""
	frqComp := NoCompression
	if frqPattern != "" {
		s, comp, err := WhichCompression(subChr(frqPattern, 1) + ".frq")
		if err != nil {
			return nil, 0, err
		}
		frqSuffix = ".frq" + s
		frqComp = comp
	}
	var sum *mat.Dense
	mTot := 0
	for chrom := 1; chrom <= numChr; chrom++ {
		log.Debugf("computing annotation overlap for chromosome %d", chrom)
		tables := make([]*Table, len(paths))
		for i, path := range paths {
			frqPath := ""
			if frqPattern != "" {
				frqPath = subChr(frqPattern, chrom) + frqSuffix
			}
			var err error
			tables[i], err = annotParser(subChr(path, chrom)+suffixes[i], comps[i], frqPath, frqComp)
			if err != nil {
				return nil, 0, err
			}
		}
		x, m, err := overlapMatrix(tables)
		if err != nil {
			return nil, 0, err
		}
		if sum == nil {
			sum = x
		} else {
			sum.Add(sum, x)
		}
		mTot += m
	}
	return sum, mTot, nil
}

// overlapMatrix stacks the numeric columns of the parsed annotation
// tables side by side and returns AᵀA along with the variant count.
func overlapMatrix(tables []*Table) (*mat.Dense, int, error) {
	rows := tables[0].NumRows()
	cols := 0
	for _, t := range tables {
		if t.NumRows() != rows {
			return nil, 0, errors.New("annot files must have the same number of variants")
		}
		cols += len(t.Cols) - 1
	}
	if rows == 0 || cols == 0 {
		return nil, 0, errors.New("annot files contain no variants or no annotation columns")
	}
	a := mat.NewDense(rows, cols, nil)
	j := 0
	for _, t := range tables {
		for _, col := range t.Cols {
			if col.Name == "SNP" {
				continue
			}
			for row, v := range col.Num {
				a.Set(row, j, v)
			}
			j++
		}
	}
	var x mat.Dense
	x.Mul(a.T(), a)
	return &x, rows, nil
}
