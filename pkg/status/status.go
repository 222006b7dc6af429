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
	"sync"

	"github.com/walteh/stampr/pkg/placement"
)

// 📊 Summary aggregates the results of one run
type Summary struct {
	Total     int                // files considered
	Succeeded int                // successful placements
	Failed    int                // failed placements
	Bytes     int64              // bytes moved or copied
	Results   []placement.Result // every result, in processing order
}

// String returns the summary line of a run
func (s Summary) String() string {
	return fmt.Sprintf("Processing complete: %d successful, %d errors", s.Succeeded, s.Failed)
}

// Failures returns the failed results in processing order.
func (s Summary) Failures() []placement.Result {
	var failed []placement.Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// 📈 Tracker records results and progress of a run
type Tracker struct {
	formatter FileFormatter

	mu        sync.Mutex
	total     int
	processed int
	results   []placement.Result
	bytes     int64
}

// 🏭 NewTracker creates a new tracker
func NewTracker(formatter FileFormatter) *Tracker {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Tracker{formatter: formatter}
}

// StartOperation resets the tracker for a run of total files.
func (t *Tracker) StartOperation(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.results = nil
	t.bytes = 0
}

// Track records one result and returns the progress line for it.
func (t *Tracker) Track(res placement.Result) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results = append(t.results, res)
	t.processed++
	if res.OK() {
		t.bytes += res.Size
	}
	return t.formatter.FormatProgress(t.processed, t.total)
}

// Summary returns the counts so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Total:   t.total,
		Bytes:   t.bytes,
		Results: append([]placement.Result(nil), t.results...),
	}
	for _, r := range t.results {
		if r.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	// a run may be cut short by cancellation
	if s.Total < len(t.results) {
		s.Total = len(t.results)
	}
	return s
}
