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

// Package placement moves or copies a single file into a destination
// directory under a timestamp-prefixed name that does not collide with
// anything already there.
//
// 🔄 Flow of Place:
//  1. ensure the destination directory exists
//  2. resolve the creation-time prefix of the source
//  3. build the candidate name: prefix + original base name
//  4. claim the first free candidate, inserting _001, _002, ... on collision
//  5. copy or move the content into the claimed name
//
// Names are claimed with an exclusive create, so two placements in the same
// process never pick the same name. External writers racing on the same
// directory are not guarded against.
package placement

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/walteh/stampr/pkg/timestamp"
	"gitlab.com/tozd/go/errors"
)

// DefaultCollisionCap is the highest collision counter tried before giving up.
const DefaultCollisionCap = 9999

// MaxCollisionCap is the largest collision cap an Engine accepts.
const MaxCollisionCap = 999999

// 🚚 Mode selects how a file reaches its destination
type Mode string

const (
	ModeMove Mode = "move"
	ModeCopy Mode = "copy"
)

// ParseMode parses "move" or "copy", case-insensitively. Empty means move.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMove:
		return ModeMove, nil
	case ModeCopy:
		return ModeCopy, nil
	default:
		return "", errors.Errorf("unknown transfer mode %q", s)
	}
}

// 📊 Outcome is the result state of one placement
type Outcome int

const (
	OutcomeFailure Outcome = iota
	OutcomeSuccess
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// 📦 Request describes one file to place
type Request struct {
	Source      string // file to rename
	Destination string // directory to place it in
	Mode        Mode
}

// 📄 Result is produced exactly once per Request
type Result struct {
	Request  Request
	Outcome  Outcome
	Filename string // resolved destination base name, set on success
	Path     string // full destination path, set on success
	Size     int64  // bytes transferred, set on success
	Err      error  // *Error, set on failure
}

// OK reports whether the placement succeeded.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// 🔧 Options configures an Engine
type Options struct {
	// Fs is the filesystem to operate on. Defaults to the OS filesystem.
	Fs afero.Fs
	// Resolver supplies creation times. Required.
	Resolver timestamp.Resolver
	// CollisionCap bounds the collision counter. Defaults to DefaultCollisionCap.
	CollisionCap int
}

// 🏗️ Engine places files. It holds no per-file state.
type Engine struct {
	fs           afero.Fs
	resolver     timestamp.Resolver
	collisionCap int
}

// 🏭 New creates a new engine
func New(opts Options) (*Engine, error) {
	if opts.Resolver == nil {
		return nil, errors.Errorf("timestamp resolver is required")
	}
	if opts.CollisionCap < 0 || opts.CollisionCap > MaxCollisionCap {
		return nil, errors.Errorf("collision cap must be between 0 and %d, got %d", MaxCollisionCap, opts.CollisionCap)
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.CollisionCap == 0 {
		opts.CollisionCap = DefaultCollisionCap
	}
	return &Engine{
		fs:           opts.Fs,
		resolver:     opts.Resolver,
		collisionCap: opts.CollisionCap,
	}, nil
}

// EnsureDir creates dir and its parents. It is a no-op when dir already exists.
func (e *Engine) EnsureDir(dir string) error {
	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return &Error{Kind: KindDirectoryCreate, Path: dir, Err: err}
	}
	info, err := e.fs.Stat(dir)
	if err != nil {
		return &Error{Kind: KindDirectoryCreate, Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &Error{Kind: KindDirectoryCreate, Path: dir, Err: errors.Errorf("not a directory")}
	}
	return nil
}

// 🎯 Place renames req.Source with its creation-time prefix and transfers it
// into req.Destination. Failures are reported in the Result, never panicked
// or retried.
func (e *Engine) Place(ctx context.Context, req Request) Result {
	res := Result{Request: req, Outcome: OutcomeFailure}

	if err := ctx.Err(); err != nil {
		res.Err = &Error{Kind: KindTransfer, Path: req.Source, Err: err}
		return res
	}

	// a missing source must not leave a destination directory behind
	info, err := e.fs.Stat(req.Source)
	if err != nil {
		res.Err = &Error{Kind: KindResolve, Path: req.Source, Err: err}
		return res
	}
	if !info.Mode().IsRegular() {
		res.Err = &Error{Kind: KindResolve, Path: req.Source, Err: errors.Errorf("not a regular file")}
		return res
	}

	if err := e.EnsureDir(req.Destination); err != nil {
		res.Err = err
		return res
	}

	prefix, err := timestamp.ResolvePrefix(e.resolver, req.Source)
	if err != nil {
		res.Err = &Error{Kind: KindResolve, Path: req.Source, Err: err}
		return res
	}

	dst, claimed, err := e.claim(req.Destination, prefix, filepath.Base(req.Source), info.Mode().Perm())
	if err != nil {
		res.Err = err
		return res
	}

	if err := e.transfer(req, info, dst, claimed); err != nil {
		res.Err = &Error{Kind: KindTransfer, Path: req.Source, Err: err}
		return res
	}

	res.Outcome = OutcomeSuccess
	res.Filename = filepath.Base(dst)
	res.Path = dst
	res.Size = info.Size()
	return res
}

// claim reserves the first free candidate name in dir by creating it
// exclusively. The returned file is open for writing.
func (e *Engine) claim(dir, prefix, name string, perm os.FileMode) (string, afero.File, error) {
	for n := 0; n <= e.collisionCap; n++ {
		candidate := filepath.Join(dir, CandidateName(prefix, name, n))
		f, err := e.fs.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm|0o200)
		if err == nil {
			return candidate, f, nil
		}
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return "", nil, &Error{Kind: KindTransfer, Path: candidate, Err: errors.Errorf("claiming destination: %w", err)}
	}
	return "", nil, &Error{
		Kind: KindCollisionExhausted,
		Path: filepath.Join(dir, CandidateName(prefix, name, 0)),
		Err:  errors.Errorf("all %d collision counters in use", e.collisionCap),
	}
}
