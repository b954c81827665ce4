// Package config loads movie profiles for the command-line tools.
//
// A profile is a YAML file holding the header properties every movie built
// by a tool should share:
//
//	version: 10
//	format: zlib
//	byte_order: big
//	frame:
//	  width: 550
//	  height: 400
//	  rate: 24
//	background: "#ffffff"
//
// The profile is loaded from the path given by --config, or from the
// SWFKIT_PROFILE environment variable. Missing fields keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/swfkit"
	"github.com/simonhull/swfkit/tag"
)

// EnvProfile names the environment variable consulted when no path is given.
const EnvProfile = "SWFKIT_PROFILE"

// Profile holds the movie properties shared by the tools.
type Profile struct {
	// Version is the format version written in the header.
	Version uint8 `yaml:"version"`

	// Format is the body encoding: "uncompressed" or "zlib".
	Format string `yaml:"format"`

	// ByteOrder is "big" or "little".
	ByteOrder string `yaml:"byte_order"`

	// Frame configures the stage.
	Frame FrameConfig `yaml:"frame"`

	// Background is an optional #rrggbb color. When set, movies start with
	// a SetBackgroundColor record.
	Background string `yaml:"background,omitempty"`
}

// FrameConfig configures the stage size in pixels and the frame rate.
type FrameConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Rate   float32 `yaml:"rate"`
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	return &Profile{
		Version:   swfkit.DefaultVersion,
		Format:    "uncompressed",
		ByteOrder: "big",
		Frame: FrameConfig{
			Width:  550,
			Height: 400,
			Rate:   24,
		},
	}
}

// Load reads the profile at path. An empty path falls back to
// SWFKIT_PROFILE, and to Default when that is unset too.
func Load(path string) (*Profile, error) {
	if path == "" {
		path = os.Getenv(EnvProfile)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the profile at path on top of Default.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate reports every invalid field at once.
func (p *Profile) Validate() error {
	var errs []error

	if _, err := p.format(); err != nil {
		errs = append(errs, err)
	}
	if _, err := p.byteOrder(); err != nil {
		errs = append(errs, err)
	}
	if p.Frame.Width < 0 || p.Frame.Height < 0 {
		errs = append(errs, fmt.Errorf("frame size %dx%d must not be negative", p.Frame.Width, p.Frame.Height))
	}
	if p.Frame.Width > swfkit.MaxPixels || p.Frame.Height > swfkit.MaxPixels {
		errs = append(errs, fmt.Errorf("frame size %dx%d exceeds %d pixels", p.Frame.Width, p.Frame.Height, swfkit.MaxPixels))
	}
	if p.Frame.Rate < 0 || p.Frame.Rate > swfkit.MaxFrameRate {
		errs = append(errs, fmt.Errorf("frame.rate must be between 0 and %v", swfkit.MaxFrameRate))
	}
	if p.Background != "" {
		if _, err := tag.ParseColor(p.Background); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (p *Profile) format() (swfkit.Format, error) {
	f, ok := swfkit.ParseFormat(p.Format)
	if !ok || f == swfkit.FormatLZMA {
		return swfkit.FormatUnknown, fmt.Errorf("format must be one of: uncompressed, zlib (got %q)", p.Format)
	}
	return f, nil
}

func (p *Profile) byteOrder() (swfkit.ByteOrder, error) {
	switch p.ByteOrder {
	case "big", "":
		return swfkit.BigEndian, nil
	case "little":
		return swfkit.LittleEndian, nil
	default:
		return swfkit.BigEndian, fmt.Errorf("byte_order must be big or little (got %q)", p.ByteOrder)
	}
}

// NewMovie returns an empty movie with the profile's header properties,
// starting with a SetBackgroundColor record when Background is set.
func (p *Profile) NewMovie(opts ...swfkit.Option) (*swfkit.Movie, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	format, _ := p.format()
	order, _ := p.byteOrder()

	m := swfkit.NewMovie(append(opts[:len(opts):len(opts)], swfkit.WithByteOrder(order))...)
	m.SetFormat(format)
	m.SetVersion(p.Version)
	m.SetFrameSize(swfkit.Pixels(p.Frame.Width, p.Frame.Height))
	m.SetFrameRate(p.Frame.Rate)

	if p.Background != "" {
		c, _ := tag.ParseColor(p.Background)
		if err := m.Add(tag.NewSetBackgroundColor(c)); err != nil {
			return nil, err
		}
	}
	return m, nil
}
