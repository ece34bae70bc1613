// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/statbio/ldparse"
)

func main() {
	ldparse.Main()
}
