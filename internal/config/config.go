/*
File   : cfront/internal/config/config.go
Package config loads the optional .cfront.yaml project file.
*/

// Package config loads a small, optional YAML file from the working
// directory, grounded on the teacher's go.mod, which already carries
// gopkg.in/yaml.v3 as an indirect dependency — promoted to direct here
// since this is the first component in the module to import it.
//
// Nothing in this package is required: a missing .cfront.yaml simply
// yields Default().
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the whole of .cfront.yaml's schema.
type Config struct {
	// Colorize controls whether diagnostics and the repl use fatih/color.
	Colorize bool `yaml:"colorize"`
	// TypeAliases maps an additional source identifier (e.g. "size_t")
	// onto one of the seven built-in type names, so the parser accepts
	// it as a type specifier and the type checker treats it identically
	// to its target.
	TypeAliases map[string]string `yaml:"type_aliases"`
}

// Default is the configuration used when no .cfront.yaml is present.
func Default() *Config {
	return &Config{Colorize: true, TypeAliases: map[string]string{}}
}

// Load reads path and unmarshals it over Default(). A missing file is
// not an error: Load returns Default() unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
