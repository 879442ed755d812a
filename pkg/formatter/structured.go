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

package formatter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// JSON renders the whole view as one JSON document.
type JSON struct {
	indent bool
}

// NewJSON creates a JSON formatter. With indent the document spans several
// lines.
func NewJSON(indent bool) *JSON {
	return &JSON{indent: indent}
}

// Describe implements plugin.Formatter.
func (*JSON) Describe() plugin.Description {
	return plugin.Description{
		Type:     "json",
		Summary:  "the complete result as a JSON document per item",
		Optional: []string{"indent"},
	}
}

// Render implements plugin.Formatter.
func (f *JSON) Render(_ context.Context, v *plugin.View) (string, string, error) {
	var (
		b   []byte
		err error
	)
	if f.indent {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize %s to JSON: %w", v.Item, err)
	}
	return "", string(b), nil
}

// YAML renders the whole view as one YAML document.
type YAML struct{}

// NewYAML creates a YAML formatter.
func NewYAML() *YAML {
	return &YAML{}
}

// Describe implements plugin.Formatter.
func (*YAML) Describe() plugin.Description {
	return plugin.Description{
		Type:    "yaml",
		Summary: "the complete result as a YAML document per item",
	}
}

// Render implements plugin.Formatter.
func (*YAML) Render(_ context.Context, v *plugin.View) (string, string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", "", fmt.Errorf("failed to serialize %s to YAML: %w", v.Item, err)
	}
	return "", "---\n" + strings.TrimRight(string(b), "\n"), nil
}
