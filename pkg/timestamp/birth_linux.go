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

//go:build linux

package timestamp

import (
	"time"

	"golang.org/x/sys/unix"
)

func statx(path string, mask int) (*unix.Statx_t, error) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx); err != nil {
		return nil, err
	}
	return &stx, nil
}

// birthTimeSupported reports whether statx is available and the filesystem
// holding probe fills in STATX_BTIME.
func birthTimeSupported(probe string) bool {
	stx, err := statx(probe, unix.STATX_BTIME)
	if err != nil {
		return false
	}
	return stx.Mask&unix.STATX_BTIME != 0
}

func birthTime(path string) (time.Time, bool, error) {
	stx, err := statx(path, unix.STATX_BTIME)
	if err != nil {
		return time.Time{}, false, err
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true, nil
}

func changeTime(path string) (time.Time, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, err
	}
	sec, nsec := st.Ctim.Unix()
	return time.Unix(sec, nsec), nil
}
