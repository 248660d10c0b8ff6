package collage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Settings is the persisted, flat form of every render parameter.
//
// Decoding starts from DefaultSettings, so fields missing from older files
// keep their defaults and unknown fields are ignored. Enum fields are
// stored by name and match case-insensitively.
type Settings struct {
	ImgPath1 string `json:"img_path_1,omitempty"`
	ImgPath2 string `json:"img_path_2,omitempty"`

	ImgBlur1     float64 `json:"img_blur_1"`
	ImgBlur2     float64 `json:"img_blur_2"`
	HueRotation1 float64 `json:"hue_rotation_1"`
	HueRotation2 float64 `json:"hue_rotation_2"`
	Opacity1     int     `json:"opacity_1"`
	Opacity2     int     `json:"opacity_2"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Screen       bool      `json:"screen"`
	Spacing      float64   `json:"spacing"`
	LineColor    LineColor `json:"line_color"`
	Thickness    float64   `json:"thickness"`
	Subdivisions int       `json:"subdivisions"`
	MinOpacity   float64   `json:"min_opacity"`
	MaxOpacity   float64   `json:"max_opacity"`

	Contamination float64   `json:"contamination"`
	Octaves       int       `json:"octaves"`
	Cutoff        float64   `json:"cutoff"`
	Mode          BlendMode `json:"mode"`
	Combine       Combine   `json:"combine"`

	AngleScale   float64     `json:"angle_scale"`
	AngleFactor  float64     `json:"angle_factor"`
	RadiusScale  float64     `json:"radius_scale"`
	RadiusFactor float64     `json:"radius_factor"`
	WarpChannel  WarpChannel `json:"warp_channel"`

	SortKey      SortKey   `json:"sort_key"`
	SortBy       SortAxis  `json:"sort_by"`
	RowSortOrder SortOrder `json:"row_sort_order"`
	ColSortOrder SortOrder `json:"col_sort_order"`

	GrainScale  float64 `json:"grain_scale"`
	GrainFactor float64 `json:"grain_factor"`

	Seed uint64 `json:"seed"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		ImgBlur1:     100,
		ImgBlur2:     75,
		HueRotation1: 0,
		HueRotation2: 0,
		Opacity1:     255,
		Opacity2:     255,

		Width:  4032,
		Height: 3024,

		Screen:       true,
		Spacing:      25,
		LineColor:    Black,
		Thickness:    0.5,
		Subdivisions: 75,
		MinOpacity:   0.1,
		MaxOpacity:   0.9,

		Contamination: 0.25,
		Octaves:       2,
		Cutoff:        0,
		Mode:          Screen,
		Combine:       Blend,

		AngleScale:   1,
		AngleFactor:  5,
		RadiusScale:  1,
		RadiusFactor: 1000,
		WarpChannel:  WarpLightness,

		SortKey:      SortLightness,
		SortBy:       SortRow,
		RowSortOrder: Ascending,
		ColSortOrder: Ascending,

		GrainScale:  0.35,
		GrainFactor: 10,

		Seed: 13,
	}
}

// DecodeSettings reads JSON settings from r on top of DefaultSettings.
func DecodeSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("collage: decode settings: %w", err)
	}
	return s, nil
}

// LoadSettings reads a JSON settings file.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("collage: open settings: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeSettings(f)
}

// Encode writes s to w as indented JSON.
func (s Settings) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("collage: encode settings: %w", err)
	}
	return nil
}

// Save writes s to path as indented JSON.
func (s Settings) Save(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("collage: create settings: %w", err)
	}
	if err := s.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
