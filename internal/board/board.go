// Package board provides the 8x8 occupancy model of the puzzle board and
// the cleared-line detection shared by the extractor and the solver.
package board

import (
	"math/bits"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Cell is the occupancy state of one board cell.
type Cell uint8

const (
	Empty  Cell = 0
	Filled Cell = 1
)

func (c Cell) String() string {
	switch c {
	case Filled:
		return "Filled"
	default:
		return "Empty"
	}
}

// Matrix is the 8x8 occupancy grid, indexed [row][col].
// It is a value type: assigning or passing a Matrix copies every cell.
type Matrix [Size][Size]Cell

// FromRows builds a Matrix from 0/1 rows. Missing rows or columns stay Empty
// and any non-zero value counts as Filled.
func FromRows(rows [][]int) Matrix {
	var m Matrix
	for r := 0; r < Size && r < len(rows); r++ {
		for c := 0; c < Size && c < len(rows[r]); c++ {
			if rows[r][c] != 0 {
				m[r][c] = Filled
			}
		}
	}
	return m
}

// Full returns a Matrix with every cell Filled.
func Full() Matrix {
	var m Matrix
	for r := range m {
		for c := range m[r] {
			m[r][c] = Filled
		}
	}
	return m
}

// Rows converts the matrix to 0/1 rows.
func (m Matrix) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range m {
		rows[r] = make([]int, Size)
		for c := range m[r] {
			rows[r][c] = int(m[r][c])
		}
	}
	return rows
}

// FilledCount returns the number of Filled cells.
func (m Matrix) FilledCount() int {
	n := 0
	for r := range m {
		for c := range m[r] {
			if m[r][c] == Filled {
				n++
			}
		}
	}
	return n
}

// String renders the matrix as eight lines of '#' (filled) and '.' (empty).
func (m Matrix) String() string {
	var b strings.Builder
	for r := range m {
		for c := range m[r] {
			if m[r][c] == Filled {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if r < Size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Offset is a (row, col) displacement relative to a placement anchor.
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LineSet is a set of line ids: 0-7 are rows, 8-15 are columns (8 + column index).
type LineSet uint16

// RowLine returns the line id of row r.
func RowLine(r int) int { return r }

// ColLine returns the line id of column c.
func ColLine(c int) int { return Size + c }

// Add returns the set with id included.
func (s LineSet) Add(id int) LineSet {
	return s | 1<<uint(id)
}

// Has reports whether id is in the set.
func (s LineSet) Has(id int) bool {
	if id < 0 || id >= 2*Size {
		return false
	}
	return s&(1<<uint(id)) != 0
}

// Len returns the number of lines in the set.
func (s LineSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// IDs returns the line ids in ascending order. The result is never nil.
func (s LineSet) IDs() []int {
	ids := make([]int, 0, s.Len())
	for id := 0; id < 2*Size; id++ {
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Rows returns the row indices in the set.
func (s LineSet) Rows() []int {
	var rows []int
	for r := 0; r < Size; r++ {
		if s.Has(RowLine(r)) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Cols returns the column indices in the set.
func (s LineSet) Cols() []int {
	var cols []int
	for c := 0; c < Size; c++ {
		if s.Has(ColLine(c)) {
			cols = append(cols, c)
		}
	}
	return cols
}

// DetectClearedLines returns every row and column whose eight cells are Filled.
// The set is recomputed from scratch on each call.
func DetectClearedLines(m Matrix) LineSet {
	var s LineSet

	for r := 0; r < Size; r++ {
		full := true
		for c := 0; c < Size; c++ {
			if m[r][c] != Filled {
				full = false
				break
			}
		}
		if full {
			s = s.Add(RowLine(r))
		}
	}

	for c := 0; c < Size; c++ {
		full := true
		for r := 0; r < Size; r++ {
			if m[r][c] != Filled {
				full = false
				break
			}
		}
		if full {
			s = s.Add(ColLine(c))
		}
	}

	return s
}
