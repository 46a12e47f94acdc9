// Package config loads named baseplate profiles from TOML or YAML files.
//
// A profile overrides any subset of the physical constants; omitted fields
// keep the gridfinity defaults. The built-in profile "gridfinity" is always
// available.
//
//	default = "snug"
//
//	[profiles.snug]
//	cell_size_mm = 37.4
//
//	[profiles.print-preview]
//	dpi = 300
//	stroke_color = "red"
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/errors"
)

const (
	// appName is used for the config directory.
	appName = "laserfinity"

	// EnvPath overrides the default profile file location.
	EnvPath = "LASERFINITY_CONFIG"

	// BuiltinProfile is the name of the standard gridfinity profile.
	BuiltinProfile = "gridfinity"
)

// Config is the parsed contents of a profile file.
type Config struct {
	Default  string                         `toml:"default" yaml:"default"`
	Profiles map[string]baseplate.Constants `toml:"profiles" yaml:"profiles"`

	// Path is the file the config was loaded from, empty for built-ins.
	Path string `toml:"-" yaml:"-"`
}

// Builtin returns a config holding only the standard profile.
func Builtin() *Config {
	return &Config{}
}

// Load reads a profile file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as TOML. Unknown keys are rejected so typos in
// constant names do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		err = decodeTOML(data, &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	cfg.Path = path

	for _, name := range cfg.Names() {
		if _, err := cfg.Profile(name); err != nil {
			return nil, err
		}
	}
	if cfg.Default != "" && !cfg.Has(cfg.Default) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "default profile %q is not defined in %s", cfg.Default, path)
	}
	return &cfg, nil
}

// LoadDefault loads the file named by $LASERFINITY_CONFIG or the XDG default
// location. A missing file yields the built-in config.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Builtin(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeNotFound) && os.Getenv(EnvPath) == "" {
		return Builtin(), nil
	}
	return cfg, err
}

// DefaultPath returns the profile file location using the XDG standard
// (~/.config/laserfinity/profiles.toml), unless $LASERFINITY_CONFIG is set.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "profiles.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "profiles.toml"), nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Names returns every profile name, built-in first, the rest sorted.
func (c *Config) Names() []string {
	names := []string{BuiltinProfile}
	for name := range c.Profiles {
		if name != BuiltinProfile {
			names = append(names, name)
		}
	}
	slices.Sort(names[1:])
	return names
}

// Has reports whether name is a known profile.
func (c *Config) Has(name string) bool {
	if name == BuiltinProfile {
		return true
	}
	_, ok := c.Profiles[name]
	return ok
}

// DefaultProfile is the profile used when none is requested.
func (c *Config) DefaultProfile() string {
	if c.Default != "" {
		return c.Default
	}
	return BuiltinProfile
}

// Profile resolves name (or the default profile when name is empty) to a
// validated set of constants.
func (c *Config) Profile(name string) (baseplate.Constants, error) {
	if name == "" {
		name = c.DefaultProfile()
	}
	consts, ok := c.Profiles[name]
	if !ok {
		if name != BuiltinProfile {
			return baseplate.Constants{}, errors.New(errors.ErrCodeNotFound, "unknown profile %q (available: %s)",
				name, strings.Join(c.Names(), ", "))
		}
		consts = baseplate.Constants{}
	}
	consts = consts.WithDefaults()
	if err := consts.Validate(); err != nil {
		return baseplate.Constants{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile %q", name)
	}
	return consts, nil
}
