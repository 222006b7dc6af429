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

package status

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/walteh/stampr/pkg/placement"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // base width for the source name
)

// FileFormatter defines how results and progress are formatted
type FileFormatter interface {
	// FormatResult formats one placement result
	FormatResult(res placement.Result) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatSummary formats the totals of a run
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatResult renders "    ✓ source -> destination" or "    ✗ source error"
func (f *DefaultFileFormatter) FormatResult(res placement.Result) string {
	name := filepath.Base(res.Request.Source)
	if !res.OK() {
		return fmt.Sprintf("%s%s %-*s %s",
			strings.Repeat(" ", fileIndent),
			color.RedString("✗"),
			nameWidth, name,
			color.RedString("%v", res.Err))
	}

	verb := "moved"
	if res.Request.Mode == placement.ModeCopy {
		verb = "copied"
	}
	return fmt.Sprintf("%s%s %-*s -> %s %s",
		strings.Repeat(" ", fileIndent),
		color.GreenString("✓"),
		nameWidth, name,
		res.Filename,
		color.HiBlackString("(%s, %s)", verb, humanize.Bytes(uint64(res.Size))))
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatSummary formats the totals of a run
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	line := fmt.Sprintf("%d of %d files placed, %s transferred", s.Succeeded, s.Total, humanize.Bytes(uint64(s.Bytes)))
	if s.Failed > 0 {
		return color.YellowString("⚠️  %s, %d failed", line, s.Failed)
	}
	return color.GreenString("✅ %s", line)
}
