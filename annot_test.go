// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/check.v1"
)

type annotSuite struct{}

var _ = check.Suite(&annotSuite{})

func (s *annotSuite) TestAnnotParse(c *check.C) {
	path := filepath.Join(c.MkDir(), "t.annot")
	writeFile(c, path, `CHR BP SNP CM base conserved
1 100 rs1 0 1 0
1 200 rs2 0 1 1
`)
	t, err := Annot(path, "")
	c.Assert(err, check.IsNil)
	c.Check(t.ColNames(), check.DeepEquals, []string{"SNP", "base", "conserved"})
	c.Check(t.Col("base").Num, check.DeepEquals, []float64{1, 1})
	c.Check(t.Col("conserved").Num, check.DeepEquals, []float64{0, 1})
}

func (s *annotSuite) TestAnnotFrqFilter(c *check.C) {
	dir := c.MkDir()
	annotPath := filepath.Join(dir, "t.annot")
	frqPath := filepath.Join(dir, "t.frq")
	writeFile(c, annotPath, `CHR BP SNP CM base
1 100 rs1 0 1
1 200 rs2 0 1
1 300 rs3 0 1
`)
	writeFile(c, frqPath, `SNP MAF
rs1 0.5
rs2 0.01
rs3 0.94
`)
	t, err := Annot(annotPath, frqPath)
	c.Assert(err, check.IsNil)
	c.Check(t.Col("SNP").Str, check.DeepEquals, []string{"rs1", "rs3"})
}

func (s *annotSuite) TestAnnotFrqMismatch(c *check.C) {
	dir := c.MkDir()
	annotPath := filepath.Join(dir, "t.annot")
	frqPath := filepath.Join(dir, "t.frq")
	writeFile(c, annotPath, "CHR BP SNP CM base\n1 100 rs1 0 1\n1 200 rs2 0 1\n")
	writeFile(c, frqPath, "SNP FRQ\nrs2 0.5\nrs1 0.5\n")
	_, err := Annot(annotPath, frqPath)
	c.Check(err, check.ErrorMatches, `\.frq and \.annot files must have the same SNPs in the same order`)
}

func (s *annotSuite) TestFrqLegacyMAF(c *check.C) {
	path := filepath.Join(c.MkDir(), "t.frq")
	writeFile(c, path, "SNP A1 MAF\nrs1 A 0.25\n")
	t, err := Frq(path)
	c.Assert(err, check.IsNil)
	c.Check(t.ColNames(), check.DeepEquals, []string{"SNP", "FRQ"})
	c.Check(t.Col("FRQ").Num, check.DeepEquals, []float64{0.25})
}

func (s *annotSuite) TestAnnotFromList(c *check.C) {
	dir := c.MkDir()
	a := filepath.Join(dir, "a.annot")
	b := filepath.Join(dir, "b.annot")
	writeFile(c, a, "CHR BP SNP CM base\n1 100 rs1 0 1\n1 200 rs2 0 1\n")
	writeFile(c, b, "CHR BP SNP CM enhancer\n1 100 rs1 0 0\n1 200 rs2 0 1\n")
	t, err := AnnotFromList([]string{a, b}, "")
	c.Assert(err, check.IsNil)
	c.Check(t.ColNames(), check.DeepEquals, []string{"SNP", "base_0", "enhancer_1"})
}

const overlapAnnot = `SNP CHR BP CM A B C
rs1 1 100 0 1 1 1
rs2 1 200 0 1 1 0
rs3 1 300 0 1 0 1
rs4 1 400 0 1 0 0
rs5 1 500 0 1 0 1
rs6 1 600 0 0 1 0
rs7 1 700 0 0 1 1
rs8 1 800 0 0 0 0
rs9 1 900 0 0 0 1
rs10 1 1000 0 0 0 0
`

func (s *annotSuite) TestAnnotOverlapSingle(c *check.C) {
	dir := c.MkDir()
	writeGzipFile(c, filepath.Join(dir, "base.annot.gz"), overlapAnnot)
	x, mTot, err := AnnotOverlap([]string{filepath.Join(dir, "base")}, 0, "")
	c.Assert(err, check.IsNil)
	c.Check(mTot, check.Equals, 10)
	rows, cols := x.Dims()
	c.Assert(rows, check.Equals, 3)
	c.Assert(cols, check.Equals, 3)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c.Check(x.At(i, j), check.Equals, x.At(j, i))
		}
	}
	expect := mat.NewDense(3, 3, []float64{
		5, 2, 3,
		2, 4, 2,
		3, 2, 5,
	})
	c.Check(mat.Equal(x, expect), check.Equals, true)
}

func (s *annotSuite) TestAnnotOverlapChr(c *check.C) {
	dir := c.MkDir()
	writeFile(c, filepath.Join(dir, "ann.1.annot"), "SNP CHR BP CM A\nrs1 1 100 0 1\nrs2 1 200 0 0\n")
	writeFile(c, filepath.Join(dir, "ann.2.annot"), "SNP CHR BP CM A\nrs3 2 100 0 1\nrs4 2 200 0 1\n")
	x, mTot, err := AnnotOverlap([]string{filepath.Join(dir, "ann.@")}, 2, "")
	c.Assert(err, check.IsNil)
	c.Check(mTot, check.Equals, 4)
	c.Check(x.At(0, 0), check.Equals, 3.0)
}

func (s *annotSuite) TestAnnotOverlapChrFrq(c *check.C) {
	dir := c.MkDir()
	writeFile(c, filepath.Join(dir, "ann.1.annot"), "SNP CHR BP CM A\nrs1 1 100 0 1\nrs2 1 200 0 1\n")
	writeFile(c, filepath.Join(dir, "ann.2.annot"), "SNP CHR BP CM A\nrs3 2 100 0 1\nrs4 2 200 0 1\n")
	writeFile(c, filepath.Join(dir, "frq.1.frq"), "SNP FRQ\nrs1 0.5\nrs2 0.02\n")
	writeFile(c, filepath.Join(dir, "frq.2.frq"), "SNP FRQ\nrs3 0.5\nrs4 0.5\n")
	x, mTot, err := AnnotOverlap([]string{filepath.Join(dir, "ann.@")}, 2, filepath.Join(dir, "frq.@"))
	c.Assert(err, check.IsNil)
	c.Check(mTot, check.Equals, 3)
	c.Check(x.At(0, 0), check.Equals, 3.0)
}
