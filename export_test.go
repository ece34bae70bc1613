// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/check.v1"
)

type exportSuite struct{}

var _ = check.Suite(&exportSuite{})

func (s *exportSuite) TestWriteNpy(c *check.C) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	var buf bytes.Buffer
	c.Assert(WriteNpy(&buf, m), check.IsNil)

	npr, err := gonpy.NewReader(bytes.NewReader(buf.Bytes()))
	c.Assert(err, check.IsNil)
	c.Check(npr.Shape, check.DeepEquals, []int{2, 3})
	data, err := npr.GetFloat64()
	c.Assert(err, check.IsNil)
	c.Check(data, check.DeepEquals, []float64{1, 2, 3, 4, 5, 6})
}

func (s *exportSuite) TestWriteNpyFile(c *check.C) {
	path := filepath.Join(c.MkDir(), "overlap.npy")
	m := mat.NewDense(2, 2, []float64{5, 2, 2, 4})
	c.Assert(WriteNpyFile(path, m), check.IsNil)

	f, err := os.Open(path)
	c.Assert(err, check.IsNil)
	defer f.Close()
	npr, err := gonpy.NewReader(f)
	c.Assert(err, check.IsNil)
	c.Check(npr.Shape, check.DeepEquals, []int{2, 2})
	data, err := npr.GetFloat64()
	c.Assert(err, check.IsNil)
	c.Check(data, check.DeepEquals, []float64{5, 2, 2, 4})
}
