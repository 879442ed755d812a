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

// Package plugin defines the contracts of the four plugin categories and the
// Registry that resolves them from type keys found in configuration.
//
// A check runs through four stages, each served by one plugin category:
//
//   - Gatherer: fetches raw data (HTTP response, command output, file
//     matches, unit state) and returns Fields. Every result carries an
//     "error" field that is NoError when gathering succeeded.
//   - Inspector: compares one gathered value against an expected value.
//   - Formatter: renders a View of the gathered and inspected data into an
//     optional header and a body.
//   - Logger: emits rendered text.
//
// # Registry
//
// Plugins are registered as factories keyed by a string type:
//
//	reg := plugin.NewRegistry()
//	_ = reg.RegisterGatherer("http", func(plugin.Settings) (plugin.Gatherer, error) {
//	    return gatherer.NewHTTP(client), nil
//	})
//	g, err := reg.Gatherer("http", nil)
//
// Registration is last-write-wins so defaults can be overridden. Resolving an
// unregistered key yields an errors.StructuredError with code UNKNOWN_PLUGIN
// and the category and type in its context. Freeze makes the registry
// read-only once a run starts.
package plugin
