// Package matrix provides a dense, row-major 2D grid generic over its cell type.
//
// A Matrix stores width*height cells in a single slice. Cell (x, y) lives at
// index y*width + x, so a row is a contiguous sub-slice and a column is a
// strided walk. Accessors are bounds-checked and report out-of-range reads
// and writes instead of panicking.
//
// Matrix is a plain value container with no internal locking. Parallel code
// must give each goroutine a disjoint set of rows or columns to write.
package matrix

import "fmt"

// Matrix is a row-major 2D grid.
type Matrix[T any] struct {
	width  int
	height int
	data   []T
}

// New wraps data as a width x height matrix.
// It panics if len(data) != width*height.
func New[T any](width, height int, data []T) *Matrix[T] {
	if width < 0 || height < 0 || len(data) != width*height {
		panic(fmt.Sprintf("matrix: %dx%d does not match %d cells", width, height, len(data)))
	}
	return &Matrix[T]{width: width, height: height, data: data}
}

// Fill creates a matrix with every cell set to v.
func Fill[T any](width, height int, v T) *Matrix[T] {
	data := make([]T, width*height)
	for i := range data {
		data[i] = v
	}
	return &Matrix[T]{width: width, height: height, data: data}
}

// Generate creates a matrix by calling f for every cell in storage order.
func Generate[T any](width, height int, f func(x, y int) T) *Matrix[T] {
	data := make([]T, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data = append(data, f(x, y))
		}
	}
	return &Matrix[T]{width: width, height: height, data: data}
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix[T]) Height() int { return m.height }

// Len returns the number of cells.
func (m *Matrix[T]) Len() int { return len(m.data) }

// Data returns the backing slice in row-major order.
func (m *Matrix[T]) Data() []T { return m.data }

// Valid reports whether (x, y) addresses a cell.
func (m *Matrix[T]) Valid(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

func (m *Matrix[T]) index(x, y int) int {
	return y*m.width + x
}

// Get returns the cell at (x, y). The second result is false when (x, y) is
// out of range.
func (m *Matrix[T]) Get(x, y int) (T, bool) {
	if !m.Valid(x, y) {
		var zero T
		return zero, false
	}
	return m.data[m.index(x, y)], true
}

// At returns the cell at (x, y) without a bounds report. Out-of-range
// coordinates yield the zero value.
func (m *Matrix[T]) At(x, y int) T {
	v, _ := m.Get(x, y)
	return v
}

// Ref returns a pointer to the cell at (x, y), or nil when out of range.
func (m *Matrix[T]) Ref(x, y int) *T {
	if !m.Valid(x, y) {
		return nil
	}
	return &m.data[m.index(x, y)]
}

// Put stores v at (x, y). It returns false and leaves the matrix unchanged
// when (x, y) is out of range.
func (m *Matrix[T]) Put(x, y int, v T) bool {
	if !m.Valid(x, y) {
		return false
	}
	m.data[m.index(x, y)] = v
	return true
}

// Row returns a copy of row y, or nil when y is out of range.
func (m *Matrix[T]) Row(y int) []T {
	if y < 0 || y >= m.height {
		return nil
	}
	out := make([]T, m.width)
	copy(out, m.RowView(y))
	return out
}

// RowView returns row y as a sub-slice of the backing storage.
// Writes through the slice modify the matrix.
func (m *Matrix[T]) RowView(y int) []T {
	start := y * m.width
	return m.data[start : start+m.width : start+m.width]
}

// Column returns a copy of column x, or nil when x is out of range.
func (m *Matrix[T]) Column(x int) []T {
	if x < 0 || x >= m.width {
		return nil
	}
	out := make([]T, m.height)
	for y := range out {
		out[y] = m.data[m.index(x, y)]
	}
	return out
}

// SetColumn writes col into column x. It returns false when x is out of
// range or len(col) != Height().
func (m *Matrix[T]) SetColumn(x int, col []T) bool {
	if x < 0 || x >= m.width || len(col) != m.height {
		return false
	}
	for y, v := range col {
		m.data[m.index(x, y)] = v
	}
	return true
}

// Clone returns a deep copy of the cell storage.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{width: m.width, height: m.height, data: data}
}

// Equal reports whether a and b have the same shape and cells.
func Equal[T comparable](a, b *Matrix[T]) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
