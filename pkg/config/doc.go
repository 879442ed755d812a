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

// Package config loads check definitions.
//
// A configuration document maps item names to check definitions:
//
//	web:
//	  gather:
//	    type: http            # optional, run-wide default otherwise
//	    url: https://example.com
//	  inspect:
//	    status: 200           # scalar: equality
//	    html: ".*Example"     # string: regular expression
//	    server:               # explicit inspector
//	      type: semver
//	      value: ">= 1.20"
//	  format: json            # optional per-item formatter
//	  log:                    # optional per-item logger
//	    type: file
//	    path: /var/log/checks.log
//
// Documents may be YAML, JSON or TOML, read from a local path or an http(s)
// URL. Expectations are resolved into the Expectation tagged union at load
// time so no stage has to inspect raw configuration values.
//
// LoadEnv reads the optional environment overlay, a KEY=VALUE file whose
// entries gatherers can reference as ${KEY}.
package config
