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

package operation

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/stampr/pkg/config"
)

// ErrInputMissing is returned when the input directory does not exist.
var ErrInputMissing = errors.Base("input directory does not exist")

// 🔍 Filter decides which discovered files are processed
type Filter struct {
	// Extensions allowed, matched case-insensitively. Empty allows all.
	Extensions []string
	// Ignore holds doublestar globs matched against base names.
	Ignore []string
}

// 🏭 NewFilter creates a filter with normalized extensions
func NewFilter(extensions, ignore []string) Filter {
	return Filter{
		Extensions: config.NormalizeExtensions(extensions),
		Ignore:     ignore,
	}
}

// Match reports whether the file named name passes the filter.
func (f Filter) Match(name string) bool {
	if len(f.Extensions) > 0 {
		ext := filepath.Ext(name)
		if ext == name {
			ext = ""
		}
		ext = strings.ToLower(ext)
		if ext == "" || !slices.Contains(f.Extensions, ext) {
			return false
		}
	}
	for _, pattern := range f.Ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return false
		}
	}
	return true
}

// 📂 Discover lists the regular files directly inside dir that pass filter,
// sorted by name. Subdirectories are not descended into.
func Discover(fs afero.Fs, dir string, filter Filter) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrInputMissing, dir)
		}
		return nil, errors.Errorf("reading input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("input is not a directory: %s", dir)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Errorf("reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegular(fs, path, entry) || !filter.Match(entry.Name()) {
			continue
		}
		files = append(files, path)
	}

	slices.Sort(files)
	return files, nil
}

// isRegular follows symlinks so a link to a regular file counts as one.
func isRegular(fs afero.Fs, path string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode().IsRegular()
	}
	target, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}
