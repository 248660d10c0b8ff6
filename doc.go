// Package collage composites two photographs into one image.
//
// # Overview
//
// A render takes two source images and a Config. Both images are resized to
// the output size, colour adjusted, blurred, and then merged by one of six
// composites:
//
//   - Blend: per-pixel blend mode (Screen, Multiply, ...) in linear light
//   - Divide: each pixel comes from one image or the other, split by a
//     dithered fractal noise threshold
//   - Mix: like Divide, but choosing between the two stacking orders of a
//     blend mode
//   - Warp: the second image is displaced along polar offsets read from
//     noise fields that the first image perturbs
//   - Unsort: the second image is rearranged by the permutation that sorts
//     the first image's pixels
//   - Sort: the first image is pixel-sorted
//
// An optional lattice of fading lines and film grain is drawn over the
// result.
//
// # Quick Start
//
//	img1, img2, err := collage.LoadPair(ctx, "a.jpg", "b.jpg")
//	if err != nil {
//	    return err
//	}
//
//	s := collage.DefaultSettings()
//	s.Width, s.Height = 1600, 1200
//	s.Combine = collage.Divide
//
//	cfg, err := s.Config()
//	if err != nil {
//	    return err
//	}
//	out, err := collage.Render(img1, img2, cfg)
//	if err != nil {
//	    return err
//	}
//	return collage.Save("out.png", out)
//
// # Settings
//
// Settings is the flat, JSON-persisted form of every parameter. Files
// written by older versions load with missing fields set to their defaults,
// and unknown fields are ignored. Settings.Config validates the values and
// produces the immutable Config used by Render.
//
// # Determinism
//
// Every random choice is drawn from PCG streams derived from Config.Seed
// and a pixel coordinate. Rendering the same inputs with the same Config
// produces bit-identical output, independent of the worker count.
//
// # Logging
//
// collage is silent by default. Call SetLogger with a *slog.Logger to see
// render progress and stage timings.
package collage
