// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

const ldscoreSuffix = ".l2.ldscore"

func ldscoreSingle(path string, comp Compression) (*Table, error) {
	t, err := readTableFile(path, comp, readOpts{types: map[string]colType{"SNP": stringType}})
	if err != nil {
		return nil, err
	}
	if t.HasCol("MAF") && t.HasCol("CM") {
		// files written before v1.0.0 carry MAF and CM columns
		t = t.Drop("MAF", "CM")
	}
	return t, nil
}

// LDScore parses a single .l2.ldscore file. path is the prefix without
// the .l2.ldscore suffix; the compressed suffix is probed on disk.
func LDScore(path string) (*Table, error) {
	full := path + ldscoreSuffix
	s, comp, err := WhichCompression(full)
	if err != nil {
		return nil, err
	}
	return ldscoreSingle(full+s, comp)
}

// LDScoreChr parses a set of .l2.ldscore files split across
// chromosomes via {lo:hi} range notation in pattern. The shards are
// stacked in chromosome order and re-sorted by (CHR, BP) before the
// CHR and BP columns are dropped; standard errors downstream are wrong
// unless base-pair order is stable. Duplicate SNPs keep their first
// occurrence.
func LDScoreChr(pattern string) (*Table, error) {
	paths, err := Expand(pattern)
	if err != nil {
		return nil, err
	}
	log.Debugf("reading %d ldscore shard(s) for %s", len(paths), pattern)
	shards := make([]*Table, len(paths))
	for i, p := range paths {
		full := p + ldscoreSuffix
		s, comp, err := WhichCompression(full)
		if err != nil {
			return nil, err
		}
		shards[i], err = ldscoreSingle(full+s, comp)
		if err != nil {
			return nil, err
		}
	}
	x, err := concatTables(shards)
	if err != nil {
		return nil, err
	}
	x, err = x.sortBy("CHR", "BP")
	if err != nil {
		return nil, err
	}
	return x.Drop("CHR", "BP").dropDuplicates("SNP")
}

// LDScoreFromList parses one LD score dataset per entry of paths and
// concatenates them sideways. Entries containing {lo:hi} range
// notation are treated as chromosome sets.
func LDScoreFromList(paths []string) (*Table, error) {
	return readFromList(paths, func(path string) (*Table, error) {
		if strings.Contains(path, "{") {
			return LDScoreChr(path)
		}
		return LDScore(path)
	}, "LD Score")
}
