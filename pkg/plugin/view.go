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
	"sort"
)

// Inspection is the outcome of evaluating one expectation.
type Inspection struct {
	Inspector string `json:"inspector" yaml:"inspector"`
	Expected  any    `json:"expected" yaml:"expected"`
	Actual    string `json:"actual" yaml:"actual"`
	Match     bool   `json:"match" yaml:"match"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Inspections maps expectation field names to their outcome. A nil entry
// means the field was not part of the gathered result.
type Inspections map[string]*Inspection

// Names returns the field names in sorted order.
func (in Inspections) Names() []string {
	return sortedKeys(in)
}

// View is what a formatter sees for one item.
type View struct {
	Item         string            `json:"item" yaml:"item"`
	GatherType   string            `json:"gather_type" yaml:"gather_type"`
	Gather       map[string]any    `json:"gather" yaml:"gather"`
	Expecteds    map[string]any    `json:"expecteds" yaml:"expecteds"`
	Gathered     Fields            `json:"gathered" yaml:"gathered"`
	Inspected    Inspections       `json:"inspected" yaml:"inspected"`
	Actuals      map[string]string `json:"actuals" yaml:"actuals"`
	Matches      map[string]bool   `json:"matches" yaml:"matches"`
	InspectCount int               `json:"inspect_count" yaml:"inspect_count"`
	MatchCount   int               `json:"match_count" yaml:"match_count"`
	MatchPercent float64           `json:"match_percent" yaml:"match_percent"`
}

// Fields returns the expectation field names in sorted order.
func (v *View) Fields() []string {
	return sortedKeys(v.Expecteds)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
