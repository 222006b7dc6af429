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
	"io"
	"os"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// transfer fills the claimed destination. On failure the destination is
// removed and the source is left where it was.
func (e *Engine) transfer(req Request, info os.FileInfo, dst string, claimed afero.File) error {
	switch req.Mode {
	case ModeCopy:
		return e.copyInto(req.Source, info, dst, claimed)
	case ModeMove:
		return e.move(req.Source, info, dst, claimed)
	default:
		claimed.Close()
		e.discard(dst)
		return errors.Errorf("unknown transfer mode %q", req.Mode)
	}
}

func (e *Engine) move(src string, info os.FileInfo, dst string, claimed afero.File) error {
	if err := claimed.Close(); err != nil {
		e.discard(dst)
		return errors.Errorf("closing claimed destination: %w", err)
	}

	// rename replaces the empty placeholder in one step
	if err := e.fs.Rename(src, dst); err == nil {
		return nil
	}

	// renames across devices fail; fall back to copy then delete
	out, err := e.fs.OpenFile(dst, os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		e.discard(dst)
		return errors.Errorf("reopening destination: %w", err)
	}
	if err := e.copyInto(src, info, dst, out); err != nil {
		return err
	}
	if err := e.fs.Remove(src); err != nil {
		e.discard(dst)
		return errors.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// copyInto writes the content of src into out, closes it and copies mode and
// modification time onto dst. The metadata copy is best effort.
func (e *Engine) copyInto(src string, info os.FileInfo, dst string, out afero.File) (err error) {
	defer func() {
		if err != nil {
			e.discard(dst)
		}
	}()

	in, err := e.fs.Open(src)
	if err != nil {
		out.Close()
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}

	_ = e.fs.Chmod(dst, info.Mode().Perm())
	_ = e.fs.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

func (e *Engine) discard(path string) {
	_ = e.fs.Remove(path)
}
