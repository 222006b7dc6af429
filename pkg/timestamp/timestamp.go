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

// Package timestamp resolves the creation time of a file and renders it as the
// yymmdd_hhmmss_ prefix used for renamed files.
//
// Not every platform records a true birth time. Detect checks once which
// variant the host supports; when birth time is unavailable the last
// status-change time is used instead, which reflects the last metadata change
// rather than the original creation of the file.
package timestamp

import (
	"fmt"
	"time"
)

// Layout is the Go time layout for the filename prefix, e.g. 250808_143022_.
const Layout = "060102_150405_"

// 🕰️ Capability describes which metadata field a Resolver reads
type Capability int

const (
	FallbackChangeTime Capability = iota // last status-change time
	HasBirthTime                         // true creation time
)

// String returns a string representation of Capability
func (c Capability) String() string {
	switch c {
	case HasBirthTime:
		return "birth-time"
	case FallbackChangeTime:
		return "change-time"
	default:
		return "unknown"
	}
}

// 🔍 Resolver returns the creation time of a file
type Resolver interface {
	// Resolve reads metadata for path. Results are never cached.
	Resolve(path string) (time.Time, error)
	// Capability reports which metadata field backs Resolve
	Capability() Capability
}

// ResolveError is returned when file metadata cannot be read.
type ResolveError struct {
	Path string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving creation time of %s: %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Prefix formats t in local time as yymmdd_hhmmss_.
func Prefix(t time.Time) string {
	return t.Local().Format(Layout)
}

// ResolvePrefix resolves path with r and returns the formatted prefix.
func ResolvePrefix(r Resolver, path string) (string, error) {
	t, err := r.Resolve(path)
	if err != nil {
		return "", err
	}
	return Prefix(t), nil
}

// 🎯 Detect probes the filesystem holding probe and returns the resolver
// variant it supports. Call it once at startup and reuse the result.
func Detect(probe string) Resolver {
	if birthTimeSupported(probe) {
		return birthTimeResolver{}
	}
	return changeTimeResolver{}
}

// ChangeTime returns a resolver that always reads the status-change time.
func ChangeTime() Resolver {
	return changeTimeResolver{}
}

type birthTimeResolver struct{}

func (birthTimeResolver) Capability() Capability { return HasBirthTime }

func (birthTimeResolver) Resolve(path string) (time.Time, error) {
	t, ok, err := birthTime(path)
	if err != nil {
		return time.Time{}, &ResolveError{Path: path, Err: err}
	}
	if !ok {
		// the filesystem may omit birth time for individual files
		return changeTimeResolver{}.Resolve(path)
	}
	return t, nil
}

type changeTimeResolver struct{}

func (changeTimeResolver) Capability() Capability { return FallbackChangeTime }

func (changeTimeResolver) Resolve(path string) (time.Time, error) {
	t, err := changeTime(path)
	if err != nil {
		return time.Time{}, &ResolveError{Path: path, Err: err}
	}
	return t, nil
}
