package main

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/gogpu/collage"
)

type renderFlags struct {
	settings string
	image1   string
	image2   string
	out      string
	width    int
	height   int
	seed     uint64
	workers  int
	verbose  bool
	combine  collage.Combine
	mode     collage.BlendMode
}

func newRenderCmd() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Composite two images",
		Long: `Render loads the settings file (or the defaults), applies any flag
overrides, composites the two input images and writes the result. The output
format follows the file extension (.png, .tif, .tiff, .jpg, .jpeg).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd.Flags(), &f, cmd.ErrOrStderr())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.settings, "settings", "", "settings JSON file (defaults when empty)")
	fl.StringVar(&f.image1, "image1", "", "first input image")
	fl.StringVar(&f.image2, "image2", "", "second input image")
	fl.StringVarP(&f.out, "out", "o", "collage.png", "output file")
	fl.IntVar(&f.width, "width", 0, "output width")
	fl.IntVar(&f.height, "height", 0, "output height")
	fl.Uint64Var(&f.seed, "seed", 0, "noise seed")
	fl.IntVar(&f.workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log every pipeline stage")
	fl.Var(newEnumFlag(&f.combine), "combine", "combine mode (Blend, Divide, Mix, Warp, Unsort, Sort)")
	fl.Var(newEnumFlag(&f.mode), "mode", "blend mode for Blend and Mix")

	return cmd
}

func runRender(ctx context.Context, fl *pflag.FlagSet, f *renderFlags, stderr io.Writer) error {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	collage.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	s := collage.DefaultSettings()
	if f.settings != "" {
		var err error
		if s, err = collage.LoadSettings(f.settings); err != nil {
			return err
		}
	}
	applyOverrides(&s, fl, f)

	cfg, err := s.Config()
	if err != nil {
		return err
	}

	img1, img2, err := loadInputs(ctx, s)
	if err != nil {
		return err
	}

	opts := []collage.RenderOption{collage.WithWorkers(f.workers)}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		opts = append(opts, collage.WithProgress(progressPrinter(stderr)))
	}

	out, err := collage.Render(img1, img2, cfg, opts...)
	if err != nil {
		return err
	}
	if err := collage.Save(f.out, out); err != nil {
		return err
	}
	collage.Logger().Info("saved", "path", f.out)
	return nil
}

// applyOverrides copies every flag the user set explicitly into s.
func applyOverrides(s *collage.Settings, fl *pflag.FlagSet, f *renderFlags) {
	if fl.Changed("image1") {
		s.ImgPath1 = f.image1
	}
	if fl.Changed("image2") {
		s.ImgPath2 = f.image2
	}
	if fl.Changed("width") {
		s.Width = f.width
	}
	if fl.Changed("height") {
		s.Height = f.height
	}
	if fl.Changed("seed") {
		s.Seed = f.seed
	}
	if fl.Changed("combine") {
		s.Combine = f.combine
	}
	if fl.Changed("mode") {
		s.Mode = f.mode
	}
}

// loadInputs reads the images named in s. Sort only needs the first one.
func loadInputs(ctx context.Context, s collage.Settings) (*collage.Image, *collage.Image, error) {
	if s.ImgPath1 == "" {
		return nil, nil, errors.New("no first image: set img_path_1 or --image1")
	}
	if s.Combine == collage.Sort && s.ImgPath2 == "" {
		img, err := collage.Load(s.ImgPath1)
		return img, nil, err
	}
	if s.ImgPath2 == "" {
		return nil, nil, fmt.Errorf("combine %v needs a second image: set img_path_2 or --image2", s.Combine)
	}
	return collage.LoadPair(ctx, s.ImgPath1, s.ImgPath2)
}

func progressPrinter(w io.Writer) func(collage.Stage) {
	total := int(collage.StageDone)
	return func(st collage.Stage) {
		if st == collage.StageDone {
			fmt.Fprintf(w, "\r\033[Kdone\n")
			return
		}
		fmt.Fprintf(w, "\r\033[K[%d/%d] %v", int(st)+1, total, st)
	}
}

type textVar interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// enumFlag adapts a named enum to pflag.Value.
type enumFlag struct {
	v textVar
}

var _ pflag.Value = enumFlag{}

func newEnumFlag(v textVar) enumFlag { return enumFlag{v: v} }

func (f enumFlag) String() string {
	if f.v == nil {
		return ""
	}
	b, err := f.v.MarshalText()
	if err != nil {
		return ""
	}
	return string(b)
}

func (f enumFlag) Set(s string) error { return f.v.UnmarshalText([]byte(s)) }

func (enumFlag) Type() string { return "name" }
