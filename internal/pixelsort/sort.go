package pixelsort

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/collage/internal/enumtext"
	"github.com/gogpu/collage/internal/matrix"
	"github.com/gogpu/collage/internal/parallel"
	"github.com/gogpu/collage/internal/sortkey"
)

// Axis selects which passes Build runs.
type Axis uint8

const (
	Row Axis = iota
	Column
	RowThenColumn
	ColumnThenRow

	axisCount
)

var axisNames = [axisCount]string{
	Row:           "Row",
	Column:        "Column",
	RowThenColumn: "RowCol",
	ColumnThenRow: "ColRow",
}

// Axes returns every axis in declaration order.
func Axes() []Axis {
	out := make([]Axis, axisCount)
	for i := range out {
		out[i] = Axis(i)
	}
	return out
}

// Valid reports whether a is a known axis.
func (a Axis) Valid() bool { return a < axisCount }

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
	return axisNames[a]
}

// Order is a sort direction.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

// Orders returns both orders.
func Orders() []Order { return []Order{Ascending, Descending} }

// Valid reports whether o is a known order.
func (o Order) Valid() bool { return o <= Descending }

func (o Order) String() string {
	switch o {
	case Ascending:
		return "Ascending"
	case Descending:
		return "Descending"
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// Sign returns +1 for Ascending and -1 for Descending.
func (o Order) Sign() int32 {
	if o == Descending {
		return -1
	}
	return 1
}

// Options configures Build.
type Options struct {
	Key         sortkey.Key
	Axis        Axis
	RowOrder    Order
	ColumnOrder Order
}

// Build ranks the pixels of src according to opts and returns the
// resulting grid. Combined axes feed the grid of the first pass into the
// second, so the column pass of RowThenColumn ranks pixels where the row
// pass left them.
func Build(src *image.NRGBA, opts Options, pool *parallel.Pool) *Grid {
	key := opts.Key.Func()
	g := Identity(src.Rect.Dx(), src.Rect.Dy())

	switch opts.Axis {
	case Row:
		return SortRows(src, g, key, opts.RowOrder, pool)
	case Column:
		return SortColumns(src, g, key, opts.ColumnOrder, pool)
	case RowThenColumn:
		g = SortRows(src, g, key, opts.RowOrder, pool)
		return SortColumns(src, g, key, opts.ColumnOrder, pool)
	case ColumnThenRow:
		g = SortColumns(src, g, key, opts.ColumnOrder, pool)
		return SortRows(src, g, key, opts.RowOrder, pool)
	}
	panic(fmt.Sprintf("pixelsort: invalid axis %d", uint8(opts.Axis)))
}

// SortRows stable-sorts every row of in by sign·key(src[entry]) and returns
// a new grid; in is not modified. Rows are sorted concurrently.
func SortRows(src *image.NRGBA, in *Grid, key sortkey.Func, order Order, pool *parallel.Pool) *Grid {
	checkSize(in, src)
	out := matrix.Fill(in.Width(), in.Height(), Pos{})
	pool.Rows(in.Height(), func(y0, y1 int) {
		var buf []ranked
		for y := y0; y < y1; y++ {
			buf = rank(buf, src, in.RowView(y), key, order)
			dst := out.RowView(y)
			for i, r := range buf {
				dst[i] = r.pos
			}
		}
	})
	return out
}

// SortColumns is SortRows along columns.
func SortColumns(src *image.NRGBA, in *Grid, key sortkey.Func, order Order, pool *parallel.Pool) *Grid {
	checkSize(in, src)
	out := matrix.Fill(in.Width(), in.Height(), Pos{})
	pool.Rows(in.Width(), func(x0, x1 int) {
		var buf []ranked
		col := make([]Pos, in.Height())
		for x := x0; x < x1; x++ {
			buf = rank(buf, src, in.Column(x), key, order)
			for i, r := range buf {
				col[i] = r.pos
			}
			out.SetColumn(x, col)
		}
	})
	return out
}

type ranked struct {
	key int32
	pos Pos
}

// rank returns line's entries in key order, reusing buf.
func rank(buf []ranked, src *image.NRGBA, line []Pos, key sortkey.Func, order Order) []ranked {
	sign := order.Sign()
	buf = buf[:0]
	for _, p := range line {
		i := p.Y*src.Stride + p.X*4
		c := nrgba(src.Pix[i : i+4])
		buf = append(buf, ranked{key: sign * int32(key(c)), pos: p})
	}
	slices.SortStableFunc(buf, func(a, b ranked) int {
		return int(a.key - b.key)
	})
	return buf
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return enumtext.Marshal("sort axis", a, Axes())
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("sort axis", string(b), Axes())
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	return enumtext.Marshal("sort order", o, Orders())
}

// UnmarshalText implements encoding.TextUnmarshaler. Names match
// case-insensitively.
func (o *Order) UnmarshalText(b []byte) error {
	v, err := enumtext.Parse("sort order", string(b), Orders())
	if err != nil {
		return err
	}
	*o = v
	return nil
}
