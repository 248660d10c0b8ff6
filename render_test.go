package collage

import (
	"errors"
	"image/color"
	"testing"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// =============================================================================
// Reference scenarios
// =============================================================================

func TestRenderScreenRedBlue(t *testing.T) {
	s := DefaultSettings()
	s.Width, s.Height = 4, 4
	s.Screen = false
	s.GrainFactor = 0
	s.ImgBlur1, s.ImgBlur2 = 0, 0
	s.Combine = Blend
	s.Mode = Screen

	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("Config() = %v", err)
	}
	out, err := Render(solidImage(4, 4, red), solidImage(4, 4, blue), cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	assertSameImage(t, out, solidImage(4, 4, color.NRGBA{R: 255, B: 255, A: 255}))
}

func TestRenderDivideFullCutoff(t *testing.T) {
	img1 := gradientImage(16, 12)
	img2 := solidImage(16, 12, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	cfg := plainConfig(16, 12, DivideComposite{Noise: NoiseOptions{
		Octaves: 4, Contamination: 0.25, Cutoff: 1,
	}})

	out, err := Render(img1, img2, cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	assertSameImage(t, out, img2)
}

func TestRenderSortRow(t *testing.T) {
	img := NewImage(3, 1)
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	cfg := plainConfig(3, 1, SortComposite{Sort: SortOptions{
		Key: SortLightness, Axis: SortRow, RowOrder: Ascending, ColumnOrder: Ascending,
	}})
	out, err := Render(img, nil, cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	for x, want := range []uint8{50, 100, 200} {
		if got := out.NRGBAAt(x, 0).R; got != want {
			t.Errorf("pixel %d = %d, want %d", x, got, want)
		}
	}
}

func TestRenderUnsort(t *testing.T) {
	ref := NewImage(3, 1)
	ref.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	ref.SetNRGBA(1, 0, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	ref.SetNRGBA(2, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})

	src := NewImage(3, 1)
	a := color.NRGBA{R: 1, A: 255}
	b := color.NRGBA{G: 2, A: 255}
	c := color.NRGBA{B: 3, A: 255}
	src.SetNRGBA(0, 0, a)
	src.SetNRGBA(1, 0, b)
	src.SetNRGBA(2, 0, c)

	cfg := plainConfig(3, 1, UnsortComposite{Sort: SortOptions{
		Key: SortLightness, Axis: SortRow, RowOrder: Ascending, ColumnOrder: Ascending,
	}})
	out, err := Render(ref, src, cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	// The sort order of ref is [1, 2, 0].
	for x, want := range []color.NRGBA{b, c, a} {
		if got := out.NRGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}

// =============================================================================
// Determinism
// =============================================================================

func TestRenderDeterministic(t *testing.T) {
	img1 := gradientImage(40, 30)
	img2 := gradientImage(25, 35)

	for _, combine := range Combines() {
		t.Run(combine.String(), func(t *testing.T) {
			s := DefaultSettings()
			s.Width, s.Height = 32, 24
			s.ImgBlur1, s.ImgBlur2 = 3, 12
			s.Spacing = 6
			s.Combine = combine
			s.Mode = Overlay
			s.SortBy = SortRowThenColumn

			cfg, err := s.Config()
			if err != nil {
				t.Fatalf("Config() = %v", err)
			}
			one, err := Render(img1, img2, cfg, WithWorkers(1))
			if err != nil {
				t.Fatalf("Render(workers=1) = %v", err)
			}
			many, err := Render(img1, img2, cfg, WithWorkers(4))
			if err != nil {
				t.Fatalf("Render(workers=4) = %v", err)
			}
			again, err := Render(img1, img2, cfg, WithWorkers(4))
			if err != nil {
				t.Fatalf("Render(workers=4) = %v", err)
			}
			assertSameImage(t, many, one)
			assertSameImage(t, again, many)
		})
	}
}

func TestRenderSeedChangesOutput(t *testing.T) {
	img1 := gradientImage(32, 32)
	img2 := solidImage(32, 32, blue)
	cfg := plainConfig(32, 32, DivideComposite{Noise: NoiseOptions{Octaves: 2, Contamination: 0.25}})

	a, err := Render(img1, img2, cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	cfg.Seed = 14
	b, err := Render(img1, img2, cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}

	differ := false
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			differ = true
			break
		}
	}
	if !differ {
		t.Error("seeds 13 and 14 gave identical output")
	}
}

// =============================================================================
// Inputs and sizing
// =============================================================================

func TestRenderDoesNotModifyInputs(t *testing.T) {
	img1 := gradientImage(8, 8)
	img2 := solidImage(8, 8, red)
	keep1, keep2 := img1.Clone(), img2.Clone()

	cfg := plainConfig(8, 8, BlendComposite{Mode: Overlay})
	cfg.Image1 = ImageOptions{Blur: 2, HueRotation: 90, Opacity: 128}
	cfg.Image2 = ImageOptions{Blur: 1, Opacity: 200}
	if _, err := Render(img1, img2, cfg); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	assertSameImage(t, img1, keep1)
	assertSameImage(t, img2, keep2)
}

func TestRenderResizesToConfig(t *testing.T) {
	out, err := Render(gradientImage(10, 7), gradientImage(3, 20), plainConfig(17, 9, BlendComposite{Mode: Normal}))
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if out.Width() != 17 || out.Height() != 9 {
		t.Errorf("output size = %dx%d, want 17x9", out.Width(), out.Height())
	}
}

func TestRenderInputErrors(t *testing.T) {
	img := solidImage(4, 4, red)
	blendCfg := plainConfig(4, 4, BlendComposite{Mode: Normal})
	sortCfg := plainConfig(4, 4, SortComposite{})

	tests := []struct {
		name       string
		img1, img2 *Image
		cfg        Config
		want       error
	}{
		{"nil first", nil, img, blendCfg, ErrNilImage},
		{"nil second", img, nil, blendCfg, ErrNilImage},
		{"empty first", NewImage(0, 4), img, blendCfg, ErrEmptyImage},
		{"empty second", img, NewImage(4, 0), blendCfg, ErrEmptyImage},
		{"sort nil first", nil, nil, sortCfg, ErrNilImage},
		{"bad size", img, img, plainConfig(0, 4, BlendComposite{}), ErrInvalidSize},
		{"mix commutative", img, img, plainConfig(4, 4, MixComposite{Mode: Screen}), ErrModeNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.img1, tt.img2, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Error("Render() returned an image alongside an error")
			}
		})
	}
}

func TestRenderSortIgnoresSecondImage(t *testing.T) {
	img := gradientImage(6, 5)
	cfg := plainConfig(6, 5, SortComposite{Sort: SortOptions{Key: SortHue, Axis: SortColumn}})

	a, err := Render(img, nil, cfg)
	if err != nil {
		t.Fatalf("Render(img, nil) = %v", err)
	}
	b, err := Render(img, solidImage(2, 2, red), cfg)
	if err != nil {
		t.Fatalf("Render(img, other) = %v", err)
	}
	assertSameImage(t, a, b)
}

// =============================================================================
// Adjustments and overlay
// =============================================================================

func TestRenderOpacityAppliesToAlpha(t *testing.T) {
	cfg := plainConfig(2, 2, BlendComposite{Mode: Normal})
	cfg.Image1.Opacity = 0
	cfg.Image2.Opacity = 0

	out, err := Render(solidImage(2, 2, red), solidImage(2, 2, blue), cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if got := out.NRGBAAt(1, 1); got.A != 0 {
		t.Errorf("alpha = %d, want 0", got.A)
	}
}

func TestRenderOverlayDarkensLines(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cfg := plainConfig(20, 20, BlendComposite{Mode: Normal})
	cfg.Overlay = &OverlayOptions{
		Spacing: 5, Thickness: 1, Subdivisions: 4,
		MinOpacity: 0.5, MaxOpacity: 0.5, Color: Black,
	}

	out, err := Render(solidImage(20, 20, white), solidImage(20, 20, white), cfg)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	dark := 0
	for y := range 20 {
		for x := range 20 {
			if out.NRGBAAt(x, y).R < 255 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("overlay drew no lines")
	}
	if dark == 400 {
		t.Error("overlay darkened every pixel")
	}
}
