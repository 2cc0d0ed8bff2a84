package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		Name     string
		Input    string
		Expected Config
	}{
		{
			Name:     "empty file yields defaults",
			Input:    "",
			Expected: Default(),
		},
		{
			Name:  "all fields",
			Input: "color: never\nwarnings: false\ncall_stack_limit: 20\nprompt: 'lox> '\n",
			Expected: Config{
				Color:          ColorModeNever,
				Warnings:       false,
				CallStackLimit: 20,
				Prompt:         "lox> ",
			},
		},
		{
			Name:  "partial file keeps other defaults",
			Input: "color: always\n",
			Expected: Config{
				Color:          ColorModeAlways,
				Warnings:       true,
				CallStackLimit: 1024,
				Prompt:         "> ",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			cfg, err := Parse([]byte(test.Input), "lox.yaml")
			require.NoError(t, err)
			assert.Equal(t, test.Expected, cfg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Message string
	}{
		{
			Name:    "invalid color",
			Input:   "color: rainbow\n",
			Message: "lox.yaml: color must be one of 'auto', 'always' or 'never', got \"rainbow\"",
		},
		{
			Name:    "empty prompt",
			Input:   "prompt: ''\n",
			Message: "lox.yaml: prompt must not be empty",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Parse([]byte(test.Input), "lox.yaml")
			require.Error(t, err)
			assert.Equal(t, test.Message, err.Error())
		})
	}

	_, err := Parse([]byte("call_stack_limit: [1, 2]\n"), "lox.yaml")
	assert.ErrorContains(t, err, "parsing lox.yaml")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("call_stack_limit: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint(5), cfg.CallStackLimit)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestUseColor(t *testing.T) {
	assert.True(t, Config{Color: ColorModeAlways}.UseColor(false))
	assert.False(t, Config{Color: ColorModeNever}.UseColor(true))
	assert.True(t, Config{Color: ColorModeAuto}.UseColor(true))
	assert.False(t, Config{Color: ColorModeAuto}.UseColor(false))
}
