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

// Package engine runs status checks.
//
// Every configured item goes through its own pipeline: gather, inspect,
// format and log. Pipelines run concurrently and share a RunContext holding
// the frozen plugin registry, the environment overlay and the header flag.
// The first formatter header is emitted exactly once per run, before any
// item body.
//
// Failures stay inside an item. A gatherer error becomes the item's error
// field and is inspected like any other field; a missing required input or
// a formatter failure marks the item as failed without affecting others.
//
// Usage:
//
//	reg, err := builtin.NewRegistry()
//	if err != nil {
//	    return err
//	}
//	report, err := engine.New(cfg, engine.WithRegistry(reg)).Start(ctx)
package engine
