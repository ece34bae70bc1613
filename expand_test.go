// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"gopkg.in/check.v1"
)

type expandSuite struct{}

var _ = check.Suite(&expandSuite{})

func (s *expandSuite) TestExpandRange(c *check.C) {
	paths, err := Expand("chr{1:23}")
	c.Assert(err, check.IsNil)
	c.Assert(paths, check.HasLen, 22)
	c.Check(paths[0], check.Equals, "chr1")
	c.Check(paths[21], check.Equals, "chr22")
}

func (s *expandSuite) TestExpandEmptyRange(c *check.C) {
	paths, err := Expand("chr{5:5}")
	c.Assert(err, check.IsNil)
	c.Check(paths, check.HasLen, 0)
}

func (s *expandSuite) TestExpandNoMarker(c *check.C) {
	paths, err := Expand("baseline.annot")
	c.Assert(err, check.IsNil)
	c.Check(paths, check.DeepEquals, []string{"baseline.annot"})
}

func (s *expandSuite) TestExpandInfix(c *check.C) {
	paths, err := Expand("1000G.{21:23}.l2")
	c.Assert(err, check.IsNil)
	c.Check(paths, check.DeepEquals, []string{"1000G.21.l2", "1000G.22.l2"})
}

func (s *expandSuite) TestExpandTwoMarkers(c *check.C) {
	_, err := Expand("a{1:3}b{4:5}")
	c.Check(err, check.ErrorMatches, "can only have one range .*")
}

func (s *expandSuite) TestSubChr(c *check.C) {
	c.Check(subChr("1000G.@.annot", 9), check.Equals, "1000G.9.annot")
	c.Check(subChr("noplaceholder", 9), check.Equals, "noplaceholder")
}
