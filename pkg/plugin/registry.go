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
	"fmt"
	"sync"

	"github.com/NVIDIA/stackcheck/pkg/errors"
)

// Registry maps each plugin category to its type keys and factories.
// Registration is last-write-wins until Freeze is called; after that the
// registry is read-only for the rest of its life.
type Registry struct {
	mu         sync.RWMutex
	frozen     bool
	gatherers  map[string]Factory[Gatherer]
	inspectors map[string]Factory[Inspector]
	formatters map[string]Factory[Formatter]
	loggers    map[string]Factory[Logger]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		gatherers:  make(map[string]Factory[Gatherer]),
		inspectors: make(map[string]Factory[Inspector]),
		formatters: make(map[string]Factory[Formatter]),
		loggers:    make(map[string]Factory[Logger]),
	}
}

// RegisterGatherer binds key to a gatherer factory.
func (r *Registry) RegisterGatherer(key string, f Factory[Gatherer]) error {
	return register(r, CategoryGatherer, r.gatherers, key, f)
}

// RegisterInspector binds key to an inspector factory.
func (r *Registry) RegisterInspector(key string, f Factory[Inspector]) error {
	return register(r, CategoryInspector, r.inspectors, key, f)
}

// RegisterFormatter binds key to a formatter factory.
func (r *Registry) RegisterFormatter(key string, f Factory[Formatter]) error {
	return register(r, CategoryFormatter, r.formatters, key, f)
}

// RegisterLogger binds key to a logger factory.
func (r *Registry) RegisterLogger(key string, f Factory[Logger]) error {
	return register(r, CategoryLogger, r.loggers, key, f)
}

// Gatherer resolves key and creates the gatherer.
func (r *Registry) Gatherer(key string, s Settings) (Gatherer, error) {
	return resolve(r, CategoryGatherer, r.gatherers, key, s)
}

// Inspector resolves key and creates the inspector.
func (r *Registry) Inspector(key string, s Settings) (Inspector, error) {
	return resolve(r, CategoryInspector, r.inspectors, key, s)
}

// Formatter resolves key and creates the formatter.
func (r *Registry) Formatter(key string, s Settings) (Formatter, error) {
	return resolve(r, CategoryFormatter, r.formatters, key, s)
}

// Logger resolves key and creates the logger.
func (r *Registry) Logger(key string, s Settings) (Logger, error) {
	return resolve(r, CategoryLogger, r.loggers, key, s)
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Types returns the registered type keys of a category in sorted order.
func (r *Registry) Types(c Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch c {
	case CategoryGatherer:
		return sortedKeys(r.gatherers)
	case CategoryInspector:
		return sortedKeys(r.inspectors)
	case CategoryFormatter:
		return sortedKeys(r.formatters)
	case CategoryLogger:
		return sortedKeys(r.loggers)
	default:
		return nil
	}
}

// Count returns the number of bindings across all categories.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.gatherers) + len(r.inspectors) + len(r.formatters) + len(r.loggers)
}

// IsEmpty returns true if nothing is registered.
func (r *Registry) IsEmpty() bool {
	return r.Count() == 0
}

// Describe instantiates every plugin of a category with nil settings and
// returns its metadata, keyed by the registered type. A plugin that cannot be
// created is still listed with the failure as its summary.
func (r *Registry) Describe(c Category) []Description {
	keys := r.Types(c)
	out := make([]Description, 0, len(keys))
	for _, key := range keys {
		var (
			d   Description
			err error
		)
		switch c {
		case CategoryGatherer:
			d, err = describe(r.Gatherer(key, nil))
		case CategoryInspector:
			d, err = describe(r.Inspector(key, nil))
		case CategoryFormatter:
			d, err = describe(r.Formatter(key, nil))
		case CategoryLogger:
			d, err = describe(r.Logger(key, nil))
		}
		if err != nil {
			d = Description{Summary: fmt.Sprintf("unavailable: %v", err)}
		}
		d.Type = key
		out = append(out, d)
	}
	return out
}

type describer interface {
	Describe() Description
}

func describe[T describer](p T, err error) (Description, error) {
	if err != nil {
		return Description{}, err
	}
	return p.Describe(), nil
}

func register[T any](r *Registry, c Category, m map[string]Factory[T], key string, f Factory[T]) error {
	if key == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "plugin type key is empty",
			map[string]any{"category": string(c)})
	}
	if f == nil {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "plugin factory is nil",
			map[string]any{"category": string(c), "type": key})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return errors.NewWithContext(errors.ErrCodeRegistryFrozen,
			fmt.Sprintf("cannot register %s %q after the run started", c, key),
			map[string]any{"category": string(c), "type": key})
	}
	m[key] = f
	return nil
}

func resolve[T any](r *Registry, c Category, m map[string]Factory[T], key string, s Settings) (T, error) {
	var zero T

	r.mu.RLock()
	f, ok := m[key]
	r.mu.RUnlock()

	if !ok {
		return zero, errors.NewWithContext(errors.ErrCodeUnknownPlugin,
			fmt.Sprintf("unknown %s type %q", c, key),
			map[string]any{"category": string(c), "type": key})
	}

	p, err := f(s)
	if err != nil {
		return zero, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("failed to create %s %q", c, key), err,
			map[string]any{"category": string(c), "type": key})
	}
	return p, nil
}
