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

// Package defaults provides centralized configuration constants for stackcheck.
//
// This package defines timeout values, size limits and the plugin type keys
// used when configuration leaves them out. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Timeout Categories
//
//   - HTTP client timeouts: http gatherer, webhook logger, remote configuration
//   - Logger timeouts: webhook and redis emission
//   - Configuration timeouts: fetching a configuration document
//
// The engine itself enforces no timeout on gather calls; a gatherer that can
// hang is bounded only by the timeouts of its own client.
//
// # Usage
//
//	import "github.com/NVIDIA/stackcheck/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigFetchTimeout)
//	defer cancel()
package defaults
