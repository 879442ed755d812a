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

package plugin

import (
	"context"
)

// Category groups plugins by the pipeline stage that uses them.
type Category string

const (
	CategoryGatherer  Category = "gatherer"
	CategoryInspector Category = "inspector"
	CategoryFormatter Category = "formatter"
	CategoryLogger    Category = "logger"
)

// Categories returns all plugin categories in pipeline order.
func Categories() []Category {
	return []Category{CategoryGatherer, CategoryInspector, CategoryFormatter, CategoryLogger}
}

// Description is the metadata a plugin declares about itself.
// Inputs are required by a gatherer, Optional are consumed when present and
// Outputs bound the keys a gatherer may return.
type Description struct {
	Type     string   `json:"type" yaml:"type"`
	Summary  string   `json:"summary" yaml:"summary"`
	Inputs   []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Optional []string `json:"optional,omitempty" yaml:"optional,omitempty"`
	Outputs  []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Settings holds the configuration keys handed to a plugin factory.
type Settings map[string]any

// String returns the value for key formatted as a string, or def when the
// key is absent or nil.
func (s Settings) String(key, def string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return def
	}
	return Stringify(v)
}

// Gatherer fetches raw data for an item.
type Gatherer interface {
	Describe() Description
	Gather(ctx context.Context, req *GatherRequest) (Fields, error)
}

// Inspector compares a gathered value against an expected value.
type Inspector interface {
	Describe() Description
	Match(ctx context.Context, actual, expected any) (bool, error)
}

// Formatter renders an item's results. An empty header means none.
type Formatter interface {
	Describe() Description
	Render(ctx context.Context, view *View) (header string, body string, err error)
}

// Logger emits rendered text to a destination.
type Logger interface {
	Describe() Description
	Emit(ctx context.Context, text string) error
}

// Factory creates a plugin instance from its settings. Factories must accept
// nil settings so the registry can describe the plugin.
type Factory[T any] func(Settings) (T, error)

// Singleton returns a factory that always yields p.
func Singleton[T any](p T) Factory[T] {
	return func(Settings) (T, error) {
		return p, nil
	}
}
