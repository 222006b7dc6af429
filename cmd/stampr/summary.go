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

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/walteh/stampr/pkg/config"
	"github.com/walteh/stampr/pkg/status"
)

// 📊 renderSummary writes the failed files and a table of totals to w. A
// single-file run has no totals; its outcome is already logged.
func renderSummary(w io.Writer, formatter status.FileFormatter, cfg *config.Config, s status.Summary) error {
	if s.Total == 0 || cfg.File != "" {
		return nil
	}

	for _, res := range s.Failures() {
		if _, err := fmt.Fprintln(w, formatter.FormatResult(res)); err != nil {
			return err
		}
	}

	data := pterm.TableData{
		{"Mode", "Destination", "Files", "Succeeded", "Failed", "Transferred"},
		{
			string(cfg.TransferMode()),
			cfg.Destination,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Succeeded),
			strconv.Itoa(s.Failed),
			humanize.Bytes(uint64(s.Bytes)),
		},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).WithWriter(w).Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, formatter.FormatSummary(s))
	return err
}
