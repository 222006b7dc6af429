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

/*
Package operation drives a stampr run.

🎯 Purpose:
- Discovers the files of one input directory, or accepts a single file
- Hands each file to the placement engine, one at a time
- Tallies outcomes and writes the per-file and summary log lines

🔄 Flow:
1. Discover lists regular files directly inside the input directory, sorted
2. The extension filter and ignore globs drop what should not be processed
3. Each remaining file becomes one placement.Request
4. Results are tracked by status.Tracker and logged as they arrive

⚡ Failure model:
- A missing or unreadable input directory aborts the run before any file is touched
- Every other failure belongs to one file and is counted, never retried
- The context is checked between files; a cancelled run returns what it has
*/
package operation
