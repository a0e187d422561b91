// Package config loads the YAML configuration of the entitystore binary.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/entity"
	"gopkg.in/yaml.v3"
)

// Merge strategy names accepted in collection definitions.
const (
	MergeOverlay = "overlay"
	MergeDeep    = "deep"
	MergeReplace = "replace"
)

// Config is the top-level configuration file.
type Config struct {
	Listen      string       `yaml:"listen"`
	LogLevel    string       `yaml:"log_level"`
	Metrics     bool         `yaml:"metrics"`
	Collections []Collection `yaml:"collections"`
}

// Collection declares a document collection served as map-typed entities.
type Collection struct {
	Path  string `yaml:"path"`
	IDKey string `yaml:"id_key"`
	Merge string `yaml:"merge"`
}

// Document is the entity type of configured collections.
type Document = map[string]any

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Metrics:  true,
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a configuration document over Default and validates it.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks levels, merge names and path uniqueness.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for i, col := range c.Collections {
		if col.Path == "" {
			return fmt.Errorf("collections[%d]: path is required", i)
		}
		if col.IDKey == "" {
			return fmt.Errorf("collections[%d] %s: id_key is required", i, col.Path)
		}
		if _, err := col.mergeFunc(); err != nil {
			return fmt.Errorf("collections[%d] %s: %w", i, col.Path, err)
		}
		if seen[col.Path] {
			return fmt.Errorf("collections[%d]: duplicate path %s", i, col.Path)
		}
		seen[col.Path] = true
	}
	return nil
}

func (c Collection) mergeFunc() (entity.MergeFunc[Document], error) {
	switch c.Merge {
	case "", MergeOverlay:
		return entity.Overlay[Document](), nil
	case MergeDeep:
		return entity.DeepMerge[Document](), nil
	case MergeReplace:
		return entity.Replace[Document](), nil
	default:
		return nil, fmt.Errorf("unknown merge strategy %q", c.Merge)
	}
}

// Build creates the store described by c.
func (c Collection) Build(logger *slog.Logger) (*entity.Store[Document], error) {
	merge, err := c.mergeFunc()
	if err != nil {
		return nil, err
	}
	return entity.New(c.Path, c.IDKey, merge, entity.WithLogger(logger))
}
