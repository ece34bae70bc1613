// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Compression identifies the codec used to read a data file.
type Compression int

const (
	NoCompression Compression = iota
	Gzip
	Bzip2
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bz2"
	default:
		return "none"
	}
}

// WhichCompression probes the filesystem for prefix+".bz2", then
// prefix+".gz", then the bare prefix, and returns the suffix of the
// first readable candidate along with its codec.
func WhichCompression(prefix string) (suffix string, comp Compression, err error) {
	for _, cand := range []struct {
		suffix string
		comp   Compression
	}{
		{".bz2", Bzip2},
		{".gz", Gzip},
		{"", NoCompression},
	} {
		if readable(prefix + cand.suffix) {
			return cand.suffix, cand.comp, nil
		}
	}
	return "", NoCompression, fmt.Errorf("could not open %s[./gz/bz2]", prefix)
}

// GetCompression decides the codec from the trailing characters of an
// already-resolved path, without touching the filesystem.
func GetCompression(path string) Compression {
	switch {
	case strings.HasSuffix(path, "gz"):
		return Gzip
	case strings.HasSuffix(path, "bz2"):
		return Bzip2
	}
	return NoCompression
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func openReader(path string, comp Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch comp {
	case Gzip:
		rdr, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return decompressCloser{rdr, f}, nil
	case Bzip2:
		return decompressCloser{bzip2.NewReader(bufio.NewReader(f)), f}, nil
	}
	return f, nil
}

// decompressCloser closes the underlying file, not the decompressor.
type decompressCloser struct {
	io.Reader
	f *os.File
}

func (dc decompressCloser) Close() error {
	return dc.f.Close()
}
