// Copyright (C) The Ldparse Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package ldparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column is one labeled column of a Table. Exactly one of Str and Num
// is non-nil. In Num columns NaN marks a missing value; in Str columns
// the empty string does.
type Column struct {
	Name string
	Str  []string
	Num  []float64
}

func (col *Column) rows() int {
	if col.Str != nil {
		return len(col.Str)
	}
	return len(col.Num)
}

func (col *Column) missing(row int) bool {
	if col.Str != nil {
		return col.Str[row] == ""
	}
	return math.IsNaN(col.Num[row])
}

// Table is an ordered set of equal-length columns parsed from one
// whitespace-delimited file, or assembled from several. Tables are
// treated as immutable: every operation returns a new Table, sharing
// unmodified column data with its input.
type Table struct {
	Cols []Column
}

func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return t.Cols[0].rows()
}

func (t *Table) ColNames() []string {
	names := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		names[i] = col.Name
	}
	return names
}

func (t *Table) Col(name string) *Column {
	for i := range t.Cols {
		if t.Cols[i].Name == name {
			return &t.Cols[i]
		}
	}
	return nil
}

func (t *Table) HasCol(name string) bool {
	return t.Col(name) != nil
}

// Drop returns a Table without the named columns. Names that are not
// present are ignored.
func (t *Table) Drop(names ...string) *Table {
	out := &Table{}
	for _, col := range t.Cols {
		dropped := false
		for _, name := range names {
			if col.Name == name {
				dropped = true
				break
			}
		}
		if !dropped {
			out.Cols = append(out.Cols, col)
		}
	}
	return out
}

func (t *Table) Rename(old, new string) *Table {
	out := &Table{Cols: append([]Column(nil), t.Cols...)}
	for i := range out.Cols {
		if out.Cols[i].Name == old {
			out.Cols[i].Name = new
		}
	}
	return out
}

// Select projects the Table onto the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{}
	for _, name := range names {
		col := t.Col(name)
		if col == nil {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out.Cols = append(out.Cols, *col)
	}
	return out, nil
}

// suffixCols appends suffix to the name of every column except the
// ones listed in except.
func (t *Table) suffixCols(suffix string, except ...string) *Table {
	out := &Table{Cols: append([]Column(nil), t.Cols...)}
outer:
	for i := range out.Cols {
		for _, name := range except {
			if out.Cols[i].Name == name {
				continue outer
			}
		}
		out.Cols[i].Name += suffix
	}
	return out
}

// Filter returns the rows for which keep is true. len(keep) must equal
// NumRows.
func (t *Table) Filter(keep []bool) *Table {
	out := &Table{Cols: make([]Column, len(t.Cols))}
	for i, col := range t.Cols {
		out.Cols[i] = Column{Name: col.Name}
		if col.Str != nil {
			for row, k := range keep {
				if k {
					out.Cols[i].Str = append(out.Cols[i].Str, col.Str[row])
				}
			}
			if out.Cols[i].Str == nil {
				out.Cols[i].Str = []string{}
			}
		} else {
			for row, k := range keep {
				if k {
					out.Cols[i].Num = append(out.Cols[i].Num, col.Num[row])
				}
			}
			if out.Cols[i].Num == nil {
				out.Cols[i].Num = []float64{}
			}
		}
	}
	return out
}

// dropNA removes every row with a missing value in any column.
func (t *Table) dropNA() *Table {
	keep := make([]bool, t.NumRows())
	for row := range keep {
		keep[row] = true
		for i := range t.Cols {
			if t.Cols[i].missing(row) {
				keep[row] = false
				break
			}
		}
	}
	return t.Filter(keep)
}

// AsFloat coerces every column except the listed ones to numeric.
func (t *Table) AsFloat(except ...string) (*Table, error) {
	out := &Table{Cols: append([]Column(nil), t.Cols...)}
outer:
	for i := range out.Cols {
		for _, name := range except {
			if out.Cols[i].Name == name {
				continue outer
			}
		}
		if out.Cols[i].Num != nil {
			continue
		}
		num := make([]float64, len(out.Cols[i].Str))
		for row, tok := range out.Cols[i].Str {
			v, err := parseFloat(tok)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", out.Cols[i].Name, err)
			}
			num[row] = v
		}
		out.Cols[i] = Column{Name: out.Cols[i].Name, Num: num}
	}
	return out, nil
}

// sortBy stably reorders rows by the named key columns, ascending.
func (t *Table) sortBy(names ...string) (*Table, error) {
	keys := make([]*Column, len(names))
	for i, name := range names {
		keys[i] = t.Col(name)
		if keys[i] == nil {
			return nil, fmt.Errorf("missing sort column %q", name)
		}
	}
	perm := make([]int, t.NumRows())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for _, key := range keys {
			if key.Num != nil {
				if key.Num[perm[a]] != key.Num[perm[b]] {
					return key.Num[perm[a]] < key.Num[perm[b]]
				}
			} else {
				if key.Str[perm[a]] != key.Str[perm[b]] {
					return key.Str[perm[a]] < key.Str[perm[b]]
				}
			}
		}
		return false
	})
	return t.applyPerm(perm), nil
}

func (t *Table) applyPerm(perm []int) *Table {
	out := &Table{Cols: make([]Column, len(t.Cols))}
	for i, col := range t.Cols {
		out.Cols[i] = Column{Name: col.Name}
		if col.Str != nil {
			out.Cols[i].Str = make([]string, len(perm))
			for row, p := range perm {
				out.Cols[i].Str[row] = col.Str[p]
			}
		} else {
			out.Cols[i].Num = make([]float64, len(perm))
			for row, p := range perm {
				out.Cols[i].Num[row] = col.Num[p]
			}
		}
	}
	return out
}

// dropDuplicates removes rows whose value in the named string column
// has already been seen, keeping the first occurrence.
func (t *Table) dropDuplicates(name string) (*Table, error) {
	key := t.Col(name)
	if key == nil || key.Str == nil {
		return nil, fmt.Errorf("missing key column %q", name)
	}
	seen := make(map[string]bool, len(key.Str))
	keep := make([]bool, len(key.Str))
	for row, id := range key.Str {
		if !seen[id] {
			seen[id] = true
			keep[row] = true
		}
	}
	return t.Filter(keep), nil
}

// seriesEq reports whether two string columns have identical values in
// identical order. It is false if the lengths differ.
func seriesEq(x, y *Column) bool {
	if x == nil || y == nil || x.Str == nil || y.Str == nil || len(x.Str) != len(y.Str) {
		return false
	}
	for i := range x.Str {
		if x.Str[i] != y.Str[i] {
			return false
		}
	}
	return true
}

// concatTables stacks tables vertically. All tables must have the same
// column names, in the same order, with the same column kinds.
func concatTables(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.New("nothing to concatenate")
	}
	first := tables[0]
	out := &Table{Cols: make([]Column, len(first.Cols))}
	for i, col := range first.Cols {
		out.Cols[i] = Column{Name: col.Name}
		if col.Str != nil {
			out.Cols[i].Str = append(make([]string, 0, col.rows()), col.Str...)
		} else {
			out.Cols[i].Num = append(make([]float64, 0, col.rows()), col.Num...)
		}
	}
	for _, t := range tables[1:] {
		if len(t.Cols) != len(out.Cols) {
			return nil, fmt.Errorf("cannot stack tables with %d and %d columns", len(out.Cols), len(t.Cols))
		}
		for i := range t.Cols {
			if t.Cols[i].Name != out.Cols[i].Name {
				return nil, fmt.Errorf("cannot stack tables: column %d is %q in one file, %q in another", i, out.Cols[i].Name, t.Cols[i].Name)
			}
			if (t.Cols[i].Str != nil) != (out.Cols[i].Str != nil) {
				return nil, fmt.Errorf("cannot stack tables: column %q has mixed types across files", t.Cols[i].Name)
			}
			if t.Cols[i].Str != nil {
				out.Cols[i].Str = append(out.Cols[i].Str, t.Cols[i].Str...)
			} else {
				out.Cols[i].Num = append(out.Cols[i].Num, t.Cols[i].Num...)
			}
		}
	}
	return out, nil
}

// hconcat stacks tables horizontally. All tables must have the same
// number of rows and no colliding column names.
func hconcat(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.New("nothing to concatenate")
	}
	out := &Table{}
	seen := map[string]bool{}
	for _, t := range tables {
		if t.NumRows() != tables[0].NumRows() {
			return nil, fmt.Errorf("cannot concatenate tables with %d and %d rows", tables[0].NumRows(), t.NumRows())
		}
		for _, col := range t.Cols {
			if seen[col.Name] {
				return nil, fmt.Errorf("duplicate column %q", col.Name)
			}
			seen[col.Name] = true
			out.Cols = append(out.Cols, col)
		}
	}
	return out, nil
}

type colType int

const (
	inferType colType = iota
	stringType
	floatType
)

type readOpts struct {
	// usecols selects and orders the columns to keep; nil keeps all
	// columns in file order. Every listed column must be present.
	usecols []string
	// types maps column names to declared types; unlisted columns
	// are inferred (numeric if every value parses as a float).
	types map[string]colType
}

// readTable parses a whitespace-delimited table. Lines starting with
// "#" are comments, the first remaining line is the header, and the
// token "." is a missing value.
func readTable(r io.Reader, opts readOpts) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	var header []string
	var idx []int
	var raw [][]string
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if header == nil {
			header = fields
			if opts.usecols != nil {
				for _, name := range opts.usecols {
					i := indexOf(header, name)
					if i < 0 {
						return nil, fmt.Errorf("missing column %q", name)
					}
					idx = append(idx, i)
				}
			} else {
				for i := range header {
					idx = append(idx, i)
				}
			}
			raw = make([][]string, len(idx))
			continue
		}
		if len(fields) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineno, len(header), len(fields))
		}
		for j, i := range idx {
			raw[j] = append(raw[j], fields[i])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, errors.New("empty file: no header line")
	}
	names := opts.usecols
	if names == nil {
		names = header
	}
	t := &Table{Cols: make([]Column, len(names))}
	for j, name := range names {
		col, err := buildColumn(name, raw[j], opts.types[name])
		if err != nil {
			return nil, err
		}
		t.Cols[j] = col
	}
	return t, nil
}

func buildColumn(name string, raw []string, typ colType) (Column, error) {
	switch typ {
	case stringType:
		str := make([]string, len(raw))
		for i, tok := range raw {
			if tok != "." {
				str[i] = tok
			}
		}
		return Column{Name: name, Str: str}, nil
	case floatType:
		num := make([]float64, len(raw))
		for i, tok := range raw {
			v, err := parseFloat(tok)
			if err != nil {
				return Column{}, fmt.Errorf("column %q: %w", name, err)
			}
			num[i] = v
		}
		return Column{Name: name, Num: num}, nil
	default:
		num := make([]float64, len(raw))
		for i, tok := range raw {
			v, err := parseFloat(tok)
			if err != nil {
				return buildColumn(name, raw, stringType)
			}
			num[i] = v
		}
		return Column{Name: name, Num: num}, nil
	}
}

func parseFloat(tok string) (float64, error) {
	if tok == "." {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(tok, 64)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// readTableFile opens path with the given codec and parses it.
func readTableFile(path string, comp Compression, opts readOpts) (*Table, error) {
	rdr, err := openReader(path, comp)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	t, err := readTable(rdr, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
