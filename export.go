// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kshedden/gonpy"
	"gonum.org/v1/gonum/mat"
)

// WriteNpy writes m to w in numpy .npy format (float64, C order), for
// handoff to the numpy-based regression code downstream.
func WriteNpy(w io.Writer, m *mat.Dense) error {
	rows, cols := m.Dims()
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return fmt.Errorf("gonpy.NewWriter: %w", err)
	}
	npw.Shape = []int{rows, cols}
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return npw.WriteFloat64(data)
}

// WriteNpyFile writes m to the named file in .npy format.
func WriteNpyFile(path string, m *mat.Dense) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer f.Close()
	bufw := bufio.NewWriter(f)
	if err := WriteNpy(bufw, m); err != nil {
		return err
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
