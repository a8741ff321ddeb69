// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/brander/pkg/brand"
	"github.com/walteh/brander/pkg/target"
)

// 📚 Config holds the options of a branding run. Paths are relative to Root.
type Config struct {
	// 📁 Root is the directory paths and globs are resolved against
	Root string `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	// 🎯 Files are target paths or doublestar globs
	Files []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"`
	// 🚫 Exclude are globs removed from the expanded targets
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	// 📝 FromBoilerplate is the boilerplate template path
	FromBoilerplate string `json:"from_boilerplate,omitempty" yaml:"from_boilerplate,omitempty" hcl:"from_boilerplate,optional"`
	// 🔍 SkipWhenHas is the skip regex, blank means the boilerplate itself
	SkipWhenHas string `json:"skip_when_has,omitempty" yaml:"skip_when_has,omitempty" hcl:"skip_when_has,optional"`
	// 📍 InsertAtTheTop defaults to true when unset
	InsertAtTheTop *bool `json:"insert_at_the_top,omitempty" yaml:"insert_at_the_top,omitempty" hcl:"insert_at_the_top,optional"`

	location string
}

// 🏭 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{Root: "."}
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// InsertAtTop reports the insertion position, defaulting to the top.
func (cfg *Config) InsertAtTop() bool {
	return cfg.InsertAtTheTop == nil || *cfg.InsertAtTheTop
}

func (cfg *Config) Position() brand.Position {
	return brand.PositionFor(cfg.InsertAtTop())
}

// 🎯 Targets expands Files and Exclude against Root
func (cfg *Config) Targets(ctx context.Context) ([]string, error) {
	files, err := target.Resolve(ctx, cfg.Root, cfg.Files, cfg.Exclude)
	if err != nil {
		return nil, errors.Errorf("resolving targets: %w", err)
	}
	return files, nil
}

// 🔧 Options builds the brand options for the resolved targets
func (cfg *Config) Options(files []string) brand.Options {
	return brand.Options{
		Files:           files,
		FromBoilerplate: cfg.FromBoilerplate,
		SkipWhenHas:     cfg.SkipWhenHas,
		Position:        cfg.Position(),
	}
}

// 🔍 Validate checks glob syntax and normalizes paths. The skip pattern is
// not compiled here: an invalid pattern fails the run, not the load.
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	for i, pattern := range cfg.Files {
		if target.IsGlob(pattern) && !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return errors.Errorf("files[%d]: invalid glob pattern %q", i, pattern)
		}
	}
	for i, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return errors.Errorf("exclude[%d]: invalid glob pattern %q", i, pattern)
		}
	}

	if cfg.FromBoilerplate != "" {
		cfg.FromBoilerplate = filepath.Clean(cfg.FromBoilerplate)
	}

	logger.Debug().Str("config", cfg.String()).Msg("validated configuration")
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s:%v -> %s (%s)", cfg.Root, cfg.Files, cfg.FromBoilerplate, cfg.Position())
}
