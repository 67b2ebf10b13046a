package domain

import (
	"math"
	"strconv"
	"strings"
)

type ColumnKind string

const (
	ColumnNumeric     ColumnKind = "numeric"
	ColumnCategorical ColumnKind = "categorical"
	ColumnTemporal    ColumnKind = "temporal"
)

// Column is a capability-tagged descriptor assigned once at ingestion.
type Column struct {
	Name string
	Kind ColumnKind
}

type FileInfo struct {
	Name    string
	Rows    int
	Columns int
}

// Table is an uploaded dataset. Rows hold trimmed cell text; an empty string
// is a missing value.
type Table struct {
	ID      string
	Columns []Column
	Rows    [][]string
	Files   []FileInfo
}

func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Column(name string) (Column, bool) {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i], true
	}
	return Column{}, false
}

func (t *Table) ColumnsOf(kind ColumnKind) []Column {
	var out []Column
	for _, c := range t.Columns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Floats returns the parseable values of a column and the rows they came from.
func (t *Table) Floats(name string) ([]float64, []int) {
	col := t.Index(name)
	if col < 0 {
		return nil, nil
	}
	var (
		values []float64
		rows   []int
	)
	for i := range t.Rows {
		v, ok := ParseNumber(t.Cell(i, col))
		if !ok {
			continue
		}
		values = append(values, v)
		rows = append(rows, i)
	}
	return values, rows
}

// ParseNumber reads a numeric cell. NaN and infinite values are not numbers
// a report can carry, so they read as missing like a blank cell.
func ParseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsMissing reports whether a cell is blank or holds a NaN or infinity token.
func IsMissing(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	v, err := strconv.ParseFloat(cell, 64)
	return err == nil && (math.IsNaN(v) || math.IsInf(v, 0))
}
