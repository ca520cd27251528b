// Package config reads the optional carve configuration file.
//
// The file is TOML:
//
//	[highlight]
//	blue = "#0000ff"    # color of the bluest seam
//	energy = "#ff0000"  # color of the lowest energy seam
//
//	[output]
//	dir = "snapshots"   # where intermediate images are written
//	snapshots = false   # write an image after every edit
//	format = "png"      # format of the intermediate images
//
//	[batch]
//	workers = 4         # images edited concurrently in directory mode
//
// Keys left out keep their default value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pixelseam/carve/utils"
)

// FileName is the name of the configuration file inside the user config directory.
const FileName = "config.toml"

// Formats lists the accepted snapshot formats.
var Formats = []string{"png", "jpg", "jpeg", "bmp", "gif", "tif", "tiff"}

// Config holds every setting that can be read from the configuration file.
type Config struct {
	Highlight Highlight `toml:"highlight"`
	Output    Output    `toml:"output"`
	Batch     Batch     `toml:"batch"`
}

// Highlight holds the seam highlight colors, in hex notation.
type Highlight struct {
	Blue   string `toml:"blue"`
	Energy string `toml:"energy"`
}

// Output controls the intermediate images written during a session.
type Output struct {
	Dir       string `toml:"dir"`
	Snapshots bool   `toml:"snapshots"`
	Format    string `toml:"format"`
}

// Batch controls directory mode.
type Batch struct {
	Workers int `toml:"workers"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Highlight: Highlight{
			Blue:   "#0000ff",
			Energy: "#ff0000",
		},
		Output: Output{
			Dir:    "snapshots",
			Format: "png",
		},
		Batch: Batch{
			Workers: runtime.NumCPU(),
		},
	}
}

// DefaultPath returns the location of the configuration file in the user
// config directory, e.g. $XDG_CONFIG_HOME/carve/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "carve", FileName), nil
}

// Load reads the file at path over the defaults. When optional is set a
// missing file is not an error and the defaults are returned.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("could not read the configuration file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the colors, the format and the worker count.
func (c Config) Validate() error {
	if _, err := utils.HexToRGBA(c.Highlight.Blue); err != nil {
		return fmt.Errorf("highlight.blue: %w", err)
	}
	if _, err := utils.HexToRGBA(c.Highlight.Energy); err != nil {
		return fmt.Errorf("highlight.energy: %w", err)
	}
	if !utils.Contains(Formats, strings.ToLower(c.Output.Format)) {
		return fmt.Errorf("output.format: unsupported format %q", c.Output.Format)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers: must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}
