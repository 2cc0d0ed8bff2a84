package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

// Settings of the command line front end
type Config struct {
	// Whether diagnostics are rendered using ANSI colors
	Color ColorMode `yaml:"color"`
	// If false, only errors are printed
	Warnings bool `yaml:"warnings"`
	// Maximum depth of nested calls, 0 means unlimited
	CallStackLimit uint `yaml:"call_stack_limit"`
	// Prompt of the REPL
	Prompt string `yaml:"prompt"`
}

func Default() Config {
	return Config{
		Color:          ColorModeAuto,
		Warnings:       true,
		CallStackLimit: 1024,
		Prompt:         "> ",
	}
}

// Reads the config file at `path`. Fields which are absent from the file keep their default value.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

func Parse(data []byte, path string) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(path); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (self Config) validate(path string) error {
	switch self.Color {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
	default:
		return fmt.Errorf("%s: color must be one of 'auto', 'always' or 'never', got %q", path, self.Color)
	}

	if self.Prompt == "" {
		return fmt.Errorf("%s: prompt must not be empty", path)
	}

	return nil
}

// Decides whether to emit colors, `isTerminal` is only consulted in auto mode
func (self Config) UseColor(isTerminal bool) bool {
	switch self.Color {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		return isTerminal
	}
}
