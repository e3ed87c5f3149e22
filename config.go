package esrename

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration file of a rename run.
//
//	basePath: src
//	renameDependencies: true
//	extensions: [.js, .mjs]
//	concurrency: 8
//	paths:
//	  lodash: vendor/lodash
//	  "app/*": src/app/*
//	roots: [node_modules, vendor]
type Config struct {
	// BaseDir anchors every relative path in the file. LoadConfig sets it
	// to the directory holding the file when the file leaves it empty.
	BaseDir            string            `yaml:"baseDir"`
	BasePath           string            `yaml:"basePath"`
	RenameDependencies bool              `yaml:"renameDependencies"`
	Extensions         []string          `yaml:"extensions"`
	StrictExtensions   bool              `yaml:"strictExtensions"`
	Concurrency        int               `yaml:"concurrency"`
	Paths              map[string]string `yaml:"paths"`
	Roots              []string          `yaml:"roots"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	switch {
	case cfg.BaseDir == "":
		cfg.BaseDir = dir
	case !filepath.IsAbs(cfg.BaseDir):
		cfg.BaseDir = filepath.Join(dir, cfg.BaseDir)
	}
	return cfg, nil
}

// ParseConfig parses YAML configuration. Unknown keys are an error.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if err := ValidateExtensions(cfg.Extensions); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateExtensions checks that every entry is a dot followed by at least
// one character, such as ".js".
func ValidateExtensions(exts []string) error {
	for _, ext := range exts {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Options returns the rename options described by the configuration.
func (c *Config) Options() []Option {
	var opts []Option
	if c.BasePath != "" {
		opts = append(opts, WithBasePath(c.path(c.BasePath)))
	}
	if c.RenameDependencies {
		opts = append(opts, WithRenameDependencies(true))
	}
	if len(c.Extensions) > 0 {
		opts = append(opts, WithExtensions(c.Extensions...))
	}
	if c.StrictExtensions {
		opts = append(opts, WithStrictExtensions(true))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	return opts
}

// Resolver returns a PathMap built from the paths and roots of the
// configuration.
func (c *Config) Resolver() *PathMap {
	return &PathMap{
		BaseDir:    c.BaseDir,
		Paths:      c.Paths,
		Roots:      c.Roots,
		Extensions: c.Extensions,
	}
}

func (c *Config) path(p string) string {
	if filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
