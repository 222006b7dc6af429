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
Package status tracks the outcomes of a batch run and renders them for people.

	+-----------+      +-----------+      +-----------+
	| operation | ---> |  Tracker  | ---> |  Summary  |
	|  (runner) |      | (results) |      | (counts)  |
	+-----------+      +-----------+      +-----------+

🎯 Purpose:
- Count successes and failures, one Result per considered file
- Keep results in processing order for the final report
- Format per-file lines, progress and the summary line

⚡ Invariant:
Summary.Succeeded + Summary.Failed == Summary.Total once every started file has
been tracked.

🔍 Example:

	tracker := status.NewTracker(status.NewDefaultFileFormatter())
	tracker.StartOperation(len(files))
	for _, f := range files {
		tracker.Track(engine.Place(ctx, req(f)))
	}
	fmt.Println(tracker.Summary())
*/
package status
