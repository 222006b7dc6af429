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

package placement

import (
	"fmt"
	"path/filepath"
	"strings"
)

// splitName splits name at its last dot. The dot stays with the extension.
// Dotfiles such as ".env" and names ending in a dot have no extension.
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// CandidateName returns the n-th destination name for a file called name.
// n == 0 is the plain prefixed name; n > 0 inserts a zero padded _NNN
// counter before the extension, or appends it when there is none.
//
//	CandidateName("250808_143022_", "report.pdf", 0) == "250808_143022_report.pdf"
//	CandidateName("250808_143022_", "report.pdf", 1) == "250808_143022_report_001.pdf"
//	CandidateName("250808_143022_", "README", 2)     == "250808_143022_README_002"
func CandidateName(prefix, name string, n int) string {
	if n == 0 {
		return prefix + name
	}
	stem, ext := splitName(name)
	if ext == "" {
		return fmt.Sprintf("%s%s_%03d", prefix, name, n)
	}
	return fmt.Sprintf("%s%s_%03d%s", prefix, stem, n, ext)
}
