// Package pixelsort ranks pixels along rows and columns by a sort key and
// records the result as a permutation of positions.
//
// A Grid never holds pixels. Cell (x, y) names the source position whose
// pixel belongs at (x, y), so the same Grid can rearrange the image it was
// built from (a plain pixel sort) or any other image of the same size
// (an unsort).
package pixelsort

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/collage/internal/matrix"
)

// Pos is a pixel coordinate.
type Pos struct {
	X, Y int
}

// Grid maps each destination cell to a source position.
type Grid = matrix.Matrix[Pos]

// Identity returns the grid that leaves every pixel in place.
func Identity(w, h int) *Grid {
	return matrix.Generate(w, h, func(x, y int) Pos { return Pos{X: x, Y: y} })
}

// Apply gathers img through g: out[x, y] = img[g[x, y]].
// img must have the grid's dimensions.
func Apply(g *Grid, img *image.NRGBA) *image.NRGBA {
	checkSize(g, img)
	out := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := range g.Height() {
		row := g.RowView(y)
		for x, p := range row {
			copy(pixel(out, x, y), pixel(img, p.X, p.Y))
		}
	}
	return out
}

// Restore scatters img back through g: out[g[x, y]] = img[x, y]. It undoes
// Apply, so Restore(g, Apply(g, a)) == a for every permutation g.
func Restore(g *Grid, img *image.NRGBA) *image.NRGBA {
	checkSize(g, img)
	out := image.NewNRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := range g.Height() {
		row := g.RowView(y)
		for x, p := range row {
			copy(pixel(out, p.X, p.Y), pixel(img, x, y))
		}
	}
	return out
}

// Invert returns the grid h with Apply(h, img) == Restore(g, img).
func Invert(g *Grid) *Grid {
	inv := matrix.Fill(g.Width(), g.Height(), Pos{})
	for y := range g.Height() {
		for x, p := range g.RowView(y) {
			inv.Put(p.X, p.Y, Pos{X: x, Y: y})
		}
	}
	return inv
}

// IsPermutation reports whether every position of the grid's area appears
// exactly once.
func IsPermutation(g *Grid) bool {
	seen := make([]bool, g.Len())
	for _, p := range g.Data() {
		if !g.Valid(p.X, p.Y) {
			return false
		}
		i := p.Y*g.Width() + p.X
		if seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func pixel(img *image.NRGBA, x, y int) []uint8 {
	i := y*img.Stride + x*4
	return img.Pix[i : i+4 : i+4]
}

func nrgba(p []uint8) color.NRGBA {
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func checkSize(g *Grid, img *image.NRGBA) {
	if img.Rect.Dx() != g.Width() || img.Rect.Dy() != g.Height() {
		panic(fmt.Sprintf("pixelsort: image %dx%d does not match grid %dx%d",
			img.Rect.Dx(), img.Rect.Dy(), g.Width(), g.Height()))
	}
}
