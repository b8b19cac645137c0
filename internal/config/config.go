// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads the rich text command's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/richtext"
)

// DefaultMaxDepth is the nesting limit applied when the configuration
// does not set one.
const DefaultMaxDepth = 256

// Config is the rendering configuration.
type Config struct {
	// MaxDepth limits document nesting. Zero disables the limit.
	MaxDepth   int  `yaml:"max_depth"`
	HeadingIDs bool `yaml:"heading_ids"`
	// Components maps default tag names (like "p" or "a")
	// to the element rendered in their place.
	Components map[string]Component `yaml:"components,omitempty"`
}

// Component describes a substitute element.
type Component struct {
	// Tag replaces the default tag name. Empty keeps the default.
	Tag string `yaml:"tag,omitempty"`
	// Attrs are added to the element.
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{MaxDepth: DefaultMaxDepth}
}

// envVarPattern matches ${VAR_NAME} references.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads the configuration file at path.
// An empty path returns [Default].
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses YAML configuration data.
// ${VAR} references are replaced with the value of the environment variable.
// Fields absent from data keep their default values.
func Parse(data []byte) (*Config, error) {
	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(ref string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(ref)[1])
	})
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

var namePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_:.-]*$`)

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, errors.New("max_depth must not be negative"))
	}
	for _, key := range sortedKeys(c.Components) {
		if !richtext.IsSubstitutableTag(atom.Lookup([]byte(key))) {
			errs = append(errs, fmt.Errorf("components: %q is not a substitutable tag", key))
			continue
		}
		comp := c.Components[key]
		if comp.Tag != "" && !namePattern.MatchString(comp.Tag) {
			errs = append(errs, fmt.Errorf("components.%s: invalid tag %q", key, comp.Tag))
		}
		for _, attr := range sortedKeys(comp.Attrs) {
			if !namePattern.MatchString(attr) {
				errs = append(errs, fmt.Errorf("components.%s: invalid attribute name %q", key, attr))
			}
		}
	}
	return errors.Join(errs...)
}

// Renderer returns a renderer configured by c.
func (c *Config) Renderer() (*richtext.Renderer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r := &richtext.Renderer{
		MaxDepth:   c.MaxDepth,
		HeadingIDs: c.HeadingIDs,
	}
	if len(c.Components) > 0 {
		r.Components = make(richtext.Components, len(c.Components))
		for key, comp := range c.Components {
			elem := &richtext.Element{Tag: comp.Tag}
			for _, attr := range sortedKeys(comp.Attrs) {
				elem.Attrs = append(elem.Attrs, html.Attribute{Key: attr, Val: comp.Attrs[attr]})
			}
			r.Components[atom.Lookup([]byte(key))] = elem
		}
	}
	return r, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
