// Package config loads the rc file of the REPL.
//
// The rc file is a YAML document:
//
//	prompt: "> "
//	history: /tmp/history
//	db: ""
//	lua: ~/eval.lua
//	rules:
//	  - name: keyword
//	    color: yellow
//	    pattern: exit
//	    literal: true
//	  - name: number
//	    color: blue
//	    pattern: "[0-9]+"
//
// All fields are optional. A rule is a regular expression unless literal is
// set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/synterm/synterm/pkg/highlight"
	"github.com/synterm/synterm/pkg/ui"
)

// Config keeps the settings of the REPL.
type Config struct {
	Prompt string `yaml:"prompt"`
	// Path of the newline-delimited history file.
	History string `yaml:"history"`
	// Path of a bbolt history database. When set, it is used instead of the
	// history file.
	DB string `yaml:"db"`
	// Path of a Lua script that defines the evaluator.
	Lua   string `yaml:"lua"`
	Rules []Rule `yaml:"rules"`
}

// Rule is a highlighting rule in the rc file.
type Rule struct {
	Name    string   `yaml:"name"`
	Color   ui.Color `yaml:"color"`
	Pattern string   `yaml:"pattern"`
	Literal bool     `yaml:"literal"`
}

// DefaultHistoryPath returns the default path of the history file.
func DefaultHistoryPath() string {
	return filepath.Join(os.TempDir(), "synterm_history")
}

// DefaultRCPath returns the default path of the rc file.
func DefaultRCPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "synterm", "rc.yaml"), nil
}

// Default returns the configuration used when there is no rc file. The prompt
// is left empty so that the user of the configuration can supply its own
// default.
func Default() *Config {
	return &Config{History: DefaultHistoryPath()}
}

// Load reads the rc file at path and applies it on top of Default().
// Unknown fields are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses the content of an rc file and applies it on top of Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	cfg.History = expandHome(cfg.History)
	cfg.DB = expandHome(cfg.DB)
	cfg.Lua = expandHome(cfg.Lua)
	for i, r := range cfg.Rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Name, errNoPattern)
		}
	}
	return cfg, nil
}

var errNoPattern = errors.New("missing pattern")

// HighlightRules converts the rules to highlight.Rule values.
func (c *Config) HighlightRules() []highlight.Rule {
	rules := make([]highlight.Rule, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = highlight.Rule{
			Name: r.Name, Color: r.Color, Pattern: r.Pattern, Literal: r.Literal}
	}
	return rules
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
