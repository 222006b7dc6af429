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
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/stampr/pkg/placement"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_config",
			filename: "config.yaml",
			config: `
input: ./inbox
destination: /tmp/archive
mode: copy
extensions:
  - .txt
  - PDF
ignore:
  - "*.tmp"
collision_cap: 50
log_file: /tmp/stampr.log
debug: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./inbox", cfg.Input, "input should match")
				assert.Equal(t, "/tmp/archive", cfg.Destination, "destination should match")
				assert.Equal(t, "copy", cfg.Mode, "mode should match")
				assert.Equal(t, []string{".txt", "PDF"}, cfg.Extensions, "extensions are normalized by Validate, not Load")
				assert.Equal(t, []string{"*.tmp"}, cfg.Ignore, "ignore should match")
				assert.Equal(t, 50, cfg.CollisionCap, "collision cap should match")
				assert.Equal(t, "/tmp/stampr.log", cfg.LogFile, "log file should match")
				assert.True(t, cfg.Debug, "debug should be true")
			},
		},
		{
			name:     "yml_minimal_config",
			filename: "config.yml",
			config:   "destination: out\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "out", cfg.Destination)
				assert.Empty(t, cfg.Input, "unset fields stay zero")
				assert.Empty(t, cfg.Mode, "unset fields stay zero")
			},
		},
		{
			name:     "json_config",
			filename: "config.json",
			config:   `{"file": "report.pdf", "destination": "out", "mode": "move", "extensions": ["txt"]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "report.pdf", cfg.File)
				assert.Equal(t, "out", cfg.Destination)
				assert.Equal(t, "move", cfg.Mode)
				assert.Equal(t, []string{"txt"}, cfg.Extensions)
			},
		},
		{
			name:     "hcl_config",
			filename: "config.hcl",
			config: `
input         = "./inbox"
destination   = "${home}/archive"
mode          = "copy"
extensions    = [".jpg", ".png"]
collision_cap = 999
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./inbox", cfg.Input)
				assert.Equal(t, filepath.Join(xdg.Home, "archive"), filepath.Clean(cfg.Destination))
				assert.Equal(t, "copy", cfg.Mode)
				assert.Equal(t, []string{".jpg", ".png"}, cfg.Extensions)
				assert.Equal(t, 999, cfg.CollisionCap)
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    "config.yaml",
			config:      "destination: out\nprovider: github\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "config.json",
			config:      `{"destination": "out", "async": true}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_syntax_error",
			filename:    "config.hcl",
			config:      `destination = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_unknown_attribute",
			filename:    "config.hcl",
			config:      `provider = "github"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.toml",
			config:      `destination = "out"`,
			wantErr:     true,
			errContains: "unsupported config file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			err := os.WriteFile(path, []byte(tt.config), 0o644)
			require.NoError(t, err, "writing config file should succeed")

			logger := zerolog.New(zerolog.NewTestWriter(t))
			ctx := logger.WithContext(context.Background())

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "loading config should fail")
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains, "error message should contain expected text")
				}
				return
			}

			require.NoError(t, err, "loading config should succeed")
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			cfg:  Default(),
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "input_files", cfg.Input)
				assert.Equal(t, "output_files", cfg.Destination)
				assert.Equal(t, "move", cfg.Mode)
				assert.Equal(t, placement.ModeMove, cfg.TransferMode())
				assert.Equal(t, placement.DefaultCollisionCap, cfg.CollisionCap)
				assert.Empty(t, cfg.Extensions)
			},
		},
		{
			name: "normalizes_fields",
			cfg: &Config{
				Input:       "./in/",
				Destination: "out//nested/",
				Mode:        "COPY",
				Extensions:  []string{"TXT", ".pdf,.Jpg", " ", ".txt"},
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "in", cfg.Input)
				assert.Equal(t, filepath.Join("out", "nested"), cfg.Destination)
				assert.Equal(t, "copy", cfg.Mode)
				assert.Equal(t, []string{".txt", ".pdf", ".jpg"}, cfg.Extensions)
				assert.Equal(t, placement.DefaultCollisionCap, cfg.CollisionCap)
			},
		},
		{
			name: "single_file_without_input",
			cfg:  &Config{File: "./report.pdf", Destination: "out"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "report.pdf", cfg.File)
				assert.Equal(t, "report.pdf -> out (move)", cfg.String())
			},
		},
		{
			name:        "missing_destination",
			cfg:         &Config{Input: "in"},
			wantErr:     true,
			errContains: "destination is required",
		},
		{
			name:        "missing_source",
			cfg:         &Config{Destination: "out"},
			wantErr:     true,
			errContains: "either input or file is required",
		},
		{
			name:        "bad_mode",
			cfg:         &Config{Input: "in", Destination: "out", Mode: "symlink"},
			wantErr:     true,
			errContains: "unknown transfer mode",
		},
		{
			name:        "negative_cap",
			cfg:         &Config{Input: "in", Destination: "out", CollisionCap: -5},
			wantErr:     true,
			errContains: "collision_cap must not be negative",
		},
		{
			name:        "cap_above_max",
			cfg:         &Config{Input: "in", Destination: "out", CollisionCap: placement.MaxCollisionCap + 1},
			wantErr:     true,
			errContains: "collision_cap must not exceed",
		},
		{
			name:        "bad_ignore_pattern",
			cfg:         &Config{Input: "in", Destination: "out", Ignore: []string{"[unclosed"}},
			wantErr:     true,
			errContains: "invalid ignore pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, tt.cfg)
		})
	}
}

func TestMerge(t *testing.T) {
	cfg := Default()
	cfg.Merge(&Config{Destination: "file-out", Extensions: []string{".txt"}})
	cfg.Merge(&Config{Destination: "env-out", Mode: "copy"})
	cfg.Merge(nil)

	assert.Equal(t, DefaultInput, cfg.Input, "untouched fields keep defaults")
	assert.Equal(t, "env-out", cfg.Destination, "later layers win")
	assert.Equal(t, "copy", cfg.Mode)
	assert.Equal(t, []string{".txt"}, cfg.Extensions)
	assert.Equal(t, placement.DefaultCollisionCap, cfg.CollisionCap)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Nil(t, NormalizeExtensions(nil))
	assert.Equal(t, []string{".txt"}, NormalizeExtensions([]string{".TXT", "txt", "."}))
	assert.Equal(t, []string{".tar.gz", ".md"}, NormalizeExtensions([]string{"tar.gz, MD"}))
	assert.Equal(t, []string{".txt", ".pdf", ".jpg"}, NormalizeExtensions([]string{".txt .pdf", "\t.JPG\n"}))
	assert.Equal(t, []string{".png", ".gif", ".webp"}, NormalizeExtensions([]string{"png,gif webp"}))
}
