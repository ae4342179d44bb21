// Package config loads the optional .fmtx.yaml or .fmtx.toml file read by
// the fmtx command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFile = errors.New("unsupported config file")
	ErrInvalid         = errors.New("invalid config")
)

// Names lists the file names Find looks for, in order.
var Names = []string{".fmtx.yaml", ".fmtx.yml", ".fmtx.toml"}

// Config holds the settings of the fmtx command.
type Config struct {
	// Locale is a BCP 47 tag applied to 'L' fields. Empty means classic.
	Locale string `yaml:"locale" toml:"locale" validate:"omitempty,bcp47_language_tag"`
	// Output is the report format of check and locales.
	Output string `yaml:"output" toml:"output" validate:"oneof=plain table json jsonl yaml tsv csv markdown msgpack"`
	// Jobs bounds concurrent file checks. Zero means GOMAXPROCS.
	Jobs int `yaml:"jobs" toml:"jobs" validate:"min=0,max=256"`
	// Color is auto, always or never.
	Color string `yaml:"color" toml:"color" validate:"oneof=auto always never"`
	// Functions are extra call names whose first argument is a template.
	Functions []string `yaml:"functions" toml:"functions" validate:"dive,required"`
	// Exclude holds glob patterns of files check skips.
	Exclude []string `yaml:"exclude" toml:"exclude" validate:"dive,required"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Output: "plain", Color: "auto"}
}

var validate = validator.New()

// Validate checks c against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, p := range c.Exclude {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalid, p, err)
		}
	}
	return nil
}

// Load reads the file at path, decoding it by extension, fills unset fields
// from Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first config file in dir, or "" when there is none.
func Find(dir string) (string, error) {
	for _, name := range Names {
		p := filepath.Join(dir, name)
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// Discover loads the config file found in dir, or Default when there is
// none.
func Discover(dir string) (Config, string, error) {
	path, err := Find(dir)
	if err != nil || path == "" {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Excluded reports whether path matches one of the exclude patterns, tried
// against both the full path and its base name.
func (c Config) Excluded(path string) bool {
	base := filepath.Base(path)
	for _, p := range c.Exclude {
		if ok, _ := filepath.Match(p, path); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
