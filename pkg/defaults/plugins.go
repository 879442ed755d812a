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

package defaults

// Type keys used when configuration does not name a plugin.
const (
	// GathererType is used when an item's gather section has no type.
	GathererType = "http"

	// InspectorType is used for string expectations and for explicit
	// expectations without a type.
	InspectorType = "regex"

	// ScalarInspectorType is used for non-string scalar expectations.
	ScalarInspectorType = "equals"

	// FormatterType is the run-wide formatter unless overridden.
	FormatterType = "simple"

	// LoggerType is the run-wide logger unless overridden.
	LoggerType = "console"
)

// Size limits for files read by gatherers and the environment overlay.
const (
	// MaxFileSize is the largest file the grep gatherer or the env loader reads.
	MaxFileSize = 10 << 20

	// MaxResponseBody is the largest HTTP body the http gatherer keeps.
	MaxResponseBody = 10 << 20
)
