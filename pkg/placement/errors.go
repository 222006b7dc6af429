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
)

// 🏷️ Kind classifies placement failures
type Kind int

const (
	KindUnknown            Kind = iota
	KindResolve                 // source metadata could not be read
	KindDirectoryCreate         // destination directory could not be established
	KindTransfer                // copy or move failed
	KindCollisionExhausted      // no free name within the collision cap
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindResolve:
		return "ResolveError"
	case KindDirectoryCreate:
		return "DirectoryCreateError"
	case KindTransfer:
		return "TransferError"
	case KindCollisionExhausted:
		return "CollisionExhausted"
	default:
		return "UnknownError"
	}
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrResolve            = &Error{Kind: KindResolve}
	ErrDirectoryCreate    = &Error{Kind: KindDirectoryCreate}
	ErrTransfer           = &Error{Kind: KindTransfer}
	ErrCollisionExhausted = &Error{Kind: KindCollisionExhausted}
)

// ❌ Error is the failure detail carried by a failed Result
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil && e.Path == "":
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
