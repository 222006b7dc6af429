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
	"strings"

	env "github.com/Netflix/go-env"
	"gitlab.com/tozd/go/errors"
)

// environment lists the STAMPR_* variables that override file settings.
type environment struct {
	Input        string `env:"STAMPR_INPUT"`
	File         string `env:"STAMPR_FILE"`
	Destination  string `env:"STAMPR_DESTINATION"`
	Mode         string `env:"STAMPR_MODE"`
	Extensions   string `env:"STAMPR_EXTENSIONS"` // comma separated
	Ignore       string `env:"STAMPR_IGNORE"`     // comma separated
	CollisionCap int    `env:"STAMPR_COLLISION_CAP"`
	LogFile      string `env:"STAMPR_LOG_FILE"`
	Debug        bool   `env:"STAMPR_DEBUG"`
}

// FromEnviron builds a partial Config from KEY=VALUE pairs such as
// os.Environ(). Unset variables leave their fields zero.
func FromEnviron(environ []string) (*Config, error) {
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	var e environment
	if err := env.Unmarshal(es, &e); err != nil {
		return nil, errors.Errorf("decoding environment: %w", err)
	}

	return &Config{
		Input:        e.Input,
		File:         e.File,
		Destination:  e.Destination,
		Mode:         e.Mode,
		Extensions:   splitList(e.Extensions),
		Ignore:       splitList(e.Ignore),
		CollisionCap: e.CollisionCap,
		LogFile:      e.LogFile,
		Debug:        e.Debug,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
