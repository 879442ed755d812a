// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package gatherer implements the built-in gatherers.
//
//   - http: requests url and returns status, headers and html (the body).
//     Optional method, headers, body and insecure (skip TLS verification).
//   - command: runs command_str and returns result (stdout), stderr and
//     exit_code. A non-zero exit sets error to stderr or the exit status.
//   - grep: returns the lines of filepath matching the search regular
//     expression as result and their number as line_count.
//   - systemd: returns active_state, sub_state, load_state, unit_file_state
//     and description of unit, read over D-Bus.
//
// String inputs that name locations (url, filepath, dir, unit) have ${VAR}
// references expanded from the run's environment overlay. command_str is not
// expanded; the overlay is exported to the child process instead.
//
// Gatherers return an error for failures of their own logic. The pipeline
// turns it into the result's error field so the failure stays visible.
package gatherer
