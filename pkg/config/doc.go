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

/*
Package config resolves the settings of a renaming run.

🔄 Precedence, lowest first:
 1. Default values (./input_files -> ./output_files, move mode)
 2. A config file: explicit path, or the first stampr/config.{yaml,yml,json,hcl}
    found in the XDG config directories
 3. STAMPR_* environment variables
 4. Command line flags (applied by the caller)

Validate runs last and normalizes what the layers produced: cleaned paths,
lower-case dot-prefixed extensions, a canonical transfer mode and a positive
collision cap.

🔍 Example:

	cfg := config.Default()
	if path := config.Discover(); path != "" {
		fileCfg, err := config.Load(ctx, path)
		if err != nil {
			return err
		}
		cfg.Merge(fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
