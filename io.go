package collage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat is returned when saving to an unknown file type.
var ErrUnsupportedFormat = errors.New("collage: unsupported format")

// Format is an output encoding.
type Format uint8

const (
	PNG Format = iota
	TIFF
	JPEG
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	case JPEG:
		return "jpeg"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load decodes the image file at path. PNG, JPEG, GIF, BMP, TIFF and WebP
// are recognised by content.
func Load(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("collage: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// Decode decodes an image from r, detecting the format from its content.
func Decode(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("collage: decode: %w", err)
	}
	img := FromImage(src)
	Logger().Debug("image decoded", "format", format, "width", img.width, "height", img.height)
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// LoadPair loads two images concurrently. The first error cancels the
// other load and is returned.
func LoadPair(ctx context.Context, path1, path2 string) (*Image, *Image, error) {
	var img1, img2 *Image
	g, ctx := errgroup.WithContext(ctx)

	load := func(path string, dst **Image) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Load(path)
			if err != nil {
				return err
			}
			*dst = img
			return nil
		}
	}
	g.Go(load(path1, &img1))
	g.Go(load(path2, &img2))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return img1, img2, nil
}

// Encode writes img to w in the given format. JPEG output drops alpha.
func Encode(w io.Writer, img *Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img.NRGBA())
	case TIFF:
		err = tiff.Encode(w, img.NRGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case JPEG:
		err = jpeg.Encode(w, img.NRGBA(), &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("collage: encode %v: %w", f, err)
	}
	return nil
}

// Save writes img to path, choosing the format from the extension.
func Save(path string, img *Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return saveAs(path, img, f)
}

// EncodePNG writes m to w as PNG.
func (m *Image) EncodePNG(w io.Writer) error { return Encode(w, m, PNG) }

// EncodeTIFF writes m to w as Deflate-compressed TIFF.
func (m *Image) EncodeTIFF(w io.Writer) error { return Encode(w, m, TIFF) }

// SavePNG writes m to path as PNG regardless of the extension.
func (m *Image) SavePNG(path string) error { return saveAs(path, m, PNG) }

// SaveTIFF writes m to path as TIFF regardless of the extension.
func (m *Image) SaveTIFF(path string) error { return saveAs(path, m, TIFF) }

func saveAs(path string, img *Image, f Format) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("collage: create file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
