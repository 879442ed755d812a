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

package config

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Config maps item names to their check definitions. It is not modified
// once loaded.
type Config struct {
	Items map[string]*ItemSpec
}

// Names returns the item names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Items))
	for k := range c.Items {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ItemSpec is the check definition of one item.
type ItemSpec struct {
	Gather  GatherSpec
	Inspect map[string]Expectation
	Format  PluginSpec
	Log     PluginSpec
}

// GatherSpec selects a gatherer and holds its inputs. An empty Type means
// the run-wide default.
type GatherSpec struct {
	Type     string
	Settings map[string]any
}

// PluginSpec selects a formatter or logger and holds its settings. An empty
// Type means the run-wide default.
type PluginSpec struct {
	Type     string
	Settings plugin.Settings
}

// Expecteds returns the raw expected values keyed by field.
func (s *ItemSpec) Expecteds() map[string]any {
	out := make(map[string]any, len(s.Inspect))
	for k, e := range s.Inspect {
		out[k] = e.Value
	}
	return out
}

// WithDefaultError returns a copy of the item whose expectations include
// error == NOERROR unless the configuration already set one.
func (s *ItemSpec) WithDefaultError() *ItemSpec {
	c := *s
	c.Inspect = make(map[string]Expectation, len(s.Inspect)+1)
	maps.Copy(c.Inspect, s.Inspect)
	if _, ok := c.Inspect[plugin.ErrorField]; !ok {
		c.Inspect[plugin.ErrorField] = Scalar(plugin.NoError)
	}
	return &c
}

// FromMap builds a Config from a decoded document.
func FromMap(doc map[string]any) (*Config, error) {
	cfg := &Config{Items: make(map[string]*ItemSpec, len(doc))}
	for name, raw := range doc {
		item, err := parseItem(raw)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid item %q", name), err, map[string]any{"item": name})
		}
		cfg.Items[name] = item
	}
	return cfg, nil
}

func parseItem(raw any) (*ItemSpec, error) {
	m, err := toMap(raw)
	if err != nil {
		return nil, err
	}

	rawGather, ok := m["gather"]
	if !ok || rawGather == nil {
		return nil, fmt.Errorf("gather section is required")
	}
	gather, err := toMap(rawGather)
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}

	item := &ItemSpec{
		Inspect: make(map[string]Expectation),
	}
	item.Gather.Type, item.Gather.Settings, err = splitType(gather)
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}

	if rawInspect, ok := m["inspect"]; ok && rawInspect != nil {
		inspect, err := toMap(rawInspect)
		if err != nil {
			return nil, fmt.Errorf("inspect: %w", err)
		}
		for field, v := range inspect {
			e, err := ParseExpectation(v)
			if err != nil {
				return nil, fmt.Errorf("inspect %q: %w", field, err)
			}
			item.Inspect[field] = e
		}
	}

	if item.Format, err = parsePluginSpec(m["format"]); err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	if item.Log, err = parsePluginSpec(m["log"]); err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}

	for k := range m {
		switch k {
		case "gather", "inspect", "format", "log":
		default:
			slog.Warn("ignoring unknown item key", "key", k)
		}
	}

	return item, nil
}

// parsePluginSpec accepts either a bare type name or a mapping with an
// optional type and settings.
func parsePluginSpec(raw any) (PluginSpec, error) {
	switch v := raw.(type) {
	case nil:
		return PluginSpec{}, nil
	case string:
		return PluginSpec{Type: v}, nil
	default:
		m, err := toMap(v)
		if err != nil {
			return PluginSpec{}, err
		}
		t, settings, err := splitType(m)
		if err != nil {
			return PluginSpec{}, err
		}
		return PluginSpec{Type: t, Settings: settings}, nil
	}
}

func splitType(m map[string]any) (string, map[string]any, error) {
	settings := make(map[string]any, len(m))
	var typ string
	for k, v := range m {
		if k != "type" {
			settings[k] = v
			continue
		}
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return "", nil, fmt.Errorf("type must be a string, got %T", v)
		}
		typ = s
	}
	return typ, settings, nil
}

func toMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return m, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}
}
