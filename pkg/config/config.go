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
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/stampr/pkg/placement"
	"gitlab.com/tozd/go/errors"
)

// Defaults mirror the directory layout the tool has always used.
const (
	DefaultInput   = "./input_files"
	DefaultOutput  = "./output_files"
	DefaultLogFile = "stampr.log"
)

// 📚 Config represents the complete configuration of a run
type Config struct {
	Input        string   `json:"input,omitempty" yaml:"input,omitempty" hcl:"input,optional"`                         // directory to scan
	File         string   `json:"file,omitempty" yaml:"file,omitempty" hcl:"file,optional"`                            // single file, replaces Input when set
	Destination  string   `json:"destination,omitempty" yaml:"destination,omitempty" hcl:"destination,optional"`       // directory to place files in
	Mode         string   `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`                            // move or copy
	Extensions   []string `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`          // allowed extensions, empty allows all
	Ignore       []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                      // doublestar globs matched against base names
	CollisionCap int      `json:"collision_cap,omitempty" yaml:"collision_cap,omitempty" hcl:"collision_cap,optional"` // highest collision counter
	LogFile      string   `json:"log_file,omitempty" yaml:"log_file,omitempty" hcl:"log_file,optional"`                // persistent log sink
	Debug        bool     `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`                         // enable debug logging
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Input:        DefaultInput,
		Destination:  DefaultOutput,
		Mode:         string(placement.ModeMove),
		CollisionCap: placement.DefaultCollisionCap,
		LogFile:      DefaultLogFile,
	}
}

// Merge copies every non-zero field of other onto cfg.
func (cfg *Config) Merge(other *Config) *Config {
	if other == nil {
		return cfg
	}
	if other.Input != "" {
		cfg.Input = other.Input
	}
	if other.File != "" {
		cfg.File = other.File
	}
	if other.Destination != "" {
		cfg.Destination = other.Destination
	}
	if other.Mode != "" {
		cfg.Mode = other.Mode
	}
	if len(other.Extensions) > 0 {
		cfg.Extensions = append([]string(nil), other.Extensions...)
	}
	if len(other.Ignore) > 0 {
		cfg.Ignore = append([]string(nil), other.Ignore...)
	}
	if other.CollisionCap != 0 {
		cfg.CollisionCap = other.CollisionCap
	}
	if other.LogFile != "" {
		cfg.LogFile = other.LogFile
	}
	if other.Debug {
		cfg.Debug = true
	}
	return cfg
}

// 🔍 Validate checks the configuration and normalizes it in place
func (cfg *Config) Validate() error {
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}
	if cfg.Input == "" && cfg.File == "" {
		return errors.Errorf("either input or file is required")
	}

	mode, err := placement.ParseMode(cfg.Mode)
	if err != nil {
		return errors.Errorf("validating mode: %w", err)
	}
	cfg.Mode = string(mode)

	if cfg.CollisionCap < 0 {
		return errors.Errorf("collision_cap must not be negative, got %d", cfg.CollisionCap)
	}
	if cfg.CollisionCap > placement.MaxCollisionCap {
		return errors.Errorf("collision_cap must not exceed %d, got %d", placement.MaxCollisionCap, cfg.CollisionCap)
	}
	if cfg.CollisionCap == 0 {
		cfg.CollisionCap = placement.DefaultCollisionCap
	}

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	cfg.Destination = filepath.Clean(cfg.Destination)
	if cfg.Input != "" {
		cfg.Input = filepath.Clean(cfg.Input)
	}
	if cfg.File != "" {
		cfg.File = filepath.Clean(cfg.File)
	}
	return nil
}

// TransferMode returns the validated transfer mode.
func (cfg *Config) TransferMode() placement.Mode {
	mode, err := placement.ParseMode(cfg.Mode)
	if err != nil {
		return placement.ModeMove
	}
	return mode
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	src := cfg.Input
	if cfg.File != "" {
		src = cfg.File
	}
	return fmt.Sprintf("%s -> %s (%s)", src, cfg.Destination, cfg.TransferMode())
}

// NormalizeExtensions lower-cases extensions, adds the leading dot and drops
// duplicates and blanks. Entries are split on commas and whitespace.
func NormalizeExtensions(exts []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, raw := range exts {
		fields := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		for _, ext := range fields {
			ext = strings.ToLower(ext)
			if ext == "" || ext == "." {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
