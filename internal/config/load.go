package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrFileNotFound indicates the configuration file doesn't exist.
var ErrFileNotFound = errors.New("config file not found")

// Load reads a TOML options file, layering it over the defaults and
// validating the result.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Options{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Options{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML option data over the defaults.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := toml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
