package pixelsort

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/collage/internal/matrix"
	"github.com/gogpu/collage/internal/parallel"
	"github.com/gogpu/collage/internal/sortkey"
)

func newTestPool(t *testing.T) *parallel.Pool {
	t.Helper()
	p := parallel.NewPool(3)
	t.Cleanup(p.Close)
	return p
}

func grey(v uint8) color.NRGBA { return color.NRGBA{R: v, G: v, B: v, A: 255} }

// fromRows builds an image whose pixel (x, y) is grey(rows[y][x]).
func fromRows(rows [][]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, v := range row {
			img.SetNRGBA(x, y, grey(v))
		}
	}
	return img
}

// noisy fills a w×h image with a fixed pseudo-random pattern.
func noisy(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	s := uint32(12345)
	for i := range img.Pix {
		s = s*1664525 + 1013904223
		img.Pix[i] = uint8(s >> 24)
	}
	return img
}

func xs(g *Grid, y int) []int {
	var out []int
	for _, p := range g.RowView(y) {
		out = append(out, p.X)
	}
	return out
}

// =============================================================================
// Row and column passes
// =============================================================================

func TestSortRowsLuma(t *testing.T) {
	pool := newTestPool(t)
	img := fromRows([][]uint8{{200, 50, 100}})

	g := SortRows(img, Identity(3, 1), sortkey.Luma, Ascending, pool)
	if diff := cmp.Diff([]int{1, 2, 0}, xs(g, 0)); diff != "" {
		t.Errorf("ascending grid mismatch (-want +got):\n%s", diff)
	}

	g = SortRows(img, Identity(3, 1), sortkey.Luma, Descending, pool)
	if diff := cmp.Diff([]int{0, 2, 1}, xs(g, 0)); diff != "" {
		t.Errorf("descending grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSortRowsStable(t *testing.T) {
	pool := newTestPool(t)
	img := fromRows([][]uint8{{9, 3, 9, 3, 9}})
	g := SortRows(img, Identity(5, 1), sortkey.Luma, Ascending, pool)
	if diff := cmp.Diff([]int{1, 3, 0, 2, 4}, xs(g, 0)); diff != "" {
		t.Errorf("equal keys reordered (-want +got):\n%s", diff)
	}
}

func TestSortRowsIndependent(t *testing.T) {
	pool := newTestPool(t)
	img := fromRows([][]uint8{
		{3, 2, 1},
		{1, 2, 3},
	})
	g := SortRows(img, Identity(3, 2), sortkey.Luma, Ascending, pool)
	want := []Pos{{2, 0}, {1, 0}, {0, 0}, {0, 1}, {1, 1}, {2, 1}}
	if diff := cmp.Diff(want, g.Data()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSortColumns(t *testing.T) {
	pool := newTestPool(t)
	img := fromRows([][]uint8{
		{30, 1},
		{10, 2},
		{20, 3},
	})
	g := SortColumns(img, Identity(2, 3), sortkey.Luma, Descending, pool)
	want := []Pos{
		{0, 0}, {1, 2},
		{0, 2}, {1, 1},
		{0, 1}, {1, 0},
	}
	if diff := cmp.Diff(want, g.Data()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	pool := newTestPool(t)
	img := noisy(7, 5)
	in := Identity(7, 5)
	before := in.Clone()
	SortRows(img, in, sortkey.Luma, Ascending, pool)
	SortColumns(img, in, sortkey.Luma, Ascending, pool)
	if !matrix.Equal(in, before) {
		t.Error("sort pass mutated its input grid")
	}
}

// =============================================================================
// Build
// =============================================================================

func TestBuildAxes(t *testing.T) {
	pool := newTestPool(t)
	img := noisy(13, 9)

	for _, axis := range Axes() {
		for _, key := range sortkey.Keys() {
			opts := Options{Key: key, Axis: axis, RowOrder: Ascending, ColumnOrder: Descending}
			g := Build(img, opts, pool)
			if !IsPermutation(g) {
				t.Errorf("Build(%v, %v) is not a permutation", axis, key)
			}
		}
	}
}

func TestBuildRowsSorted(t *testing.T) {
	pool := newTestPool(t)
	img := noisy(16, 6)
	g := Build(img, Options{Key: sortkey.Hue, Axis: Row}, pool)
	out := Apply(g, img)

	for y := range 6 {
		prev := int16(-1)
		for x := range 16 {
			k := sortkey.HueKey(out.NRGBAAt(x, y))
			if k < prev {
				t.Fatalf("row %d not ascending at x=%d: %d < %d", y, x, k, prev)
			}
			prev = k
		}
	}
}

func TestBuildRowThenColumn(t *testing.T) {
	pool := newTestPool(t)
	img := noisy(10, 8)
	opts := Options{Key: sortkey.Lightness, Axis: RowThenColumn}
	g := Build(img, opts, pool)

	rows := SortRows(img, Identity(10, 8), sortkey.Luma, Ascending, pool)
	want := SortColumns(img, rows, sortkey.Luma, Ascending, pool)
	if !matrix.Equal(g, want) {
		t.Error("RowThenColumn differs from explicit row then column passes")
	}

	// The column pass must leave every column of the output ascending.
	out := Apply(g, img)
	for x := range 10 {
		prev := int16(-1)
		for y := range 8 {
			k := sortkey.Luma(out.NRGBAAt(x, y))
			if k < prev {
				t.Fatalf("column %d not ascending at y=%d", x, y)
			}
			prev = k
		}
	}
}

func TestBuildIndependentOfWorkers(t *testing.T) {
	img := noisy(31, 17)
	opts := Options{Key: sortkey.Chroma, Axis: ColumnThenRow, RowOrder: Descending}

	var grids []*Grid
	for _, n := range []int{1, 4} {
		pool := parallel.NewPool(n)
		grids = append(grids, Build(img, opts, pool))
		pool.Close()
	}
	if !matrix.Equal(grids[0], grids[1]) {
		t.Error("grid depends on worker count")
	}
}

func TestBuildInvalidAxisPanics(t *testing.T) {
	pool := newTestPool(t)
	defer func() {
		if recover() == nil {
			t.Error("Build with invalid axis did not panic")
		}
	}()
	Build(noisy(2, 2), Options{Axis: Axis(9)}, pool)
}

// =============================================================================
// Apply, Restore, Invert
// =============================================================================

func TestApplyUsesGridOfOtherImage(t *testing.T) {
	pool := newTestPool(t)
	ref := fromRows([][]uint8{{200, 50, 100}})
	other := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	other.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	other.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	other.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})

	g := Build(ref, Options{Key: sortkey.Lightness, Axis: Row}, pool)
	out := Apply(g, other)

	want := []color.NRGBA{
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, A: 255},
	}
	for x, w := range want {
		if got := out.NRGBAAt(x, 0); got != w {
			t.Errorf("out[%d] = %v, want %v", x, got, w)
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	pool := newTestPool(t)
	a := noisy(12, 7)
	b := noisy(12, 7)
	for i := range b.Pix {
		b.Pix[i] ^= 0x5a
	}

	for _, axis := range Axes() {
		g := Build(b, Options{Key: sortkey.Saturation, Axis: axis}, pool)
		back := Restore(g, Apply(g, a))
		if diff := cmp.Diff(a.Pix, back.Pix); diff != "" {
			t.Errorf("%v: Restore(Apply(a)) != a (-want +got):\n%s", axis, diff)
		}
	}
}

func TestInvert(t *testing.T) {
	pool := newTestPool(t)
	img := noisy(9, 6)
	g := Build(img, Options{Key: sortkey.MaxRGB, Axis: ColumnThenRow}, pool)
	inv := Invert(g)

	if diff := cmp.Diff(Restore(g, img).Pix, Apply(inv, img).Pix); diff != "" {
		t.Errorf("Apply(Invert(g)) != Restore(g) (-want +got):\n%s", diff)
	}
	if !matrix.Equal(Invert(inv), g) {
		t.Error("Invert(Invert(g)) != g")
	}
}

func TestIsPermutation(t *testing.T) {
	g := Identity(3, 2)
	if !IsPermutation(g) {
		t.Error("identity is not a permutation")
	}
	g.Put(0, 0, Pos{X: 1, Y: 0})
	if IsPermutation(g) {
		t.Error("duplicate position accepted")
	}
	g.Put(0, 0, Pos{X: 5, Y: 0})
	if IsPermutation(g) {
		t.Error("out-of-range position accepted")
	}
}

func TestApplySizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Apply with mismatched sizes did not panic")
		}
	}()
	Apply(Identity(2, 2), noisy(3, 2))
}

func TestOrderAndAxisNames(t *testing.T) {
	if Descending.Sign() != -1 || Ascending.Sign() != 1 {
		t.Error("Order.Sign mismatch")
	}
	if got := RowThenColumn.String(); got != "RowCol" {
		t.Errorf("RowThenColumn.String() = %q", got)
	}
	if got := Order(7).String(); got != "Order(7)" {
		t.Errorf("Order(7).String() = %q", got)
	}
}
