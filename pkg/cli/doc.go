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

// Package cli implements the stackcheck command-line interface.
//
// # Commands
//
// run - Run status checks:
//
//	stackcheck run [--env FILE] [--formatter TYPE] [--logger TYPE] <config>
//
// Loads the configuration document (YAML, JSON or TOML from a path or an
// http(s) URL), runs every item through gather, inspect, format and log and
// exits 0 once the run completes. With --fail-on-mismatch the exit code is
// non-zero when any item failed or did not match. --report writes the run
// report in YAML, JSON or table form; --metrics-file writes run metrics in
// Prometheus text format.
//
// info - Describe plugins:
//
//	stackcheck info [gatherers|inspectors|formatters|loggers|all] [--format json|yaml|table]
//
// Lists the registered plugins with their declared inputs and outputs.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	STACKCHECK_LOG_LEVEL     Default for --log-level
//	STACKCHECK_ENV_FILE      Default for run --env
//	STACKCHECK_FORMATTER     Default for run --formatter
//	STACKCHECK_LOGGER        Default for run --logger
//	STACKCHECK_PARALLELISM   Default for run --parallelism
//	STACKCHECK_HTTP_RATE     Default for run --http-rate
//	STACKCHECK_METRICS_FILE  Default for run --metrics-file
package cli
