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

// Package formatter implements the built-in formatters.
//
//   - simple: fixed-width table with a column header, one row per inspected
//     field
//   - json: the complete view as a JSON document (indent setting for
//     multi-line output)
//   - yaml: the complete view as a YAML document
//   - pipe: item|error|expecteds|actuals|matches on a single line
//   - friendly: a short narrative over several lines
//
// Only simple produces a header. The pipeline prints a header once per run
// before any body from a formatter that produced one.
package formatter
