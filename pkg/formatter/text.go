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
	"fmt"
	"sort"
	"strings"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Pipe renders item|error|expecteds|actuals|matches on one line.
type Pipe struct{}

// NewPipe creates a pipe formatter.
func NewPipe() *Pipe {
	return &Pipe{}
}

// Describe implements plugin.Formatter.
func (*Pipe) Describe() plugin.Description {
	return plugin.Description{
		Type:    "pipe",
		Summary: "one pipe-delimited line per item",
	}
}

// Render implements plugin.Formatter.
func (*Pipe) Render(_ context.Context, v *plugin.View) (string, string, error) {
	parts := []string{
		v.Item,
		v.Gathered.ErrorText(),
		inline(v.Expecteds),
		inline(v.Actuals),
		inline(v.Matches),
	}
	return "", strings.Join(parts, "|"), nil
}

// Friendly renders a short narrative over several indented lines.
type Friendly struct{}

// NewFriendly creates a friendly formatter.
func NewFriendly() *Friendly {
	return &Friendly{}
}

// Describe implements plugin.Formatter.
func (*Friendly) Describe() plugin.Description {
	return plugin.Description{
		Type:    "friendly",
		Summary: "natural language summary spanning several lines",
	}
}

// Render implements plugin.Formatter.
func (*Friendly) Render(_ context.Context, v *plugin.View) (string, string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "In %s,", v.Item)
	level(&sb, 1, "Overall Status:")
	level(&sb, 2, fmt.Sprintf("Errors: %t", v.Gathered.Failed()))
	level(&sb, 2, fmt.Sprintf("Matches: %d/%d", v.MatchCount, v.InspectCount))

	if v.Gathered.Failed() {
		level(&sb, 1, fmt.Sprintf("Error occurred on attempting to read %s using %s: %s",
			v.Item, v.GatherType, v.Gathered.ErrorText()))
		return "", sb.String(), nil
	}

	level(&sb, 1, "We expected the following:")
	for _, k := range v.Fields() {
		level(&sb, 2, k+"="+plugin.Stringify(v.Expecteds[k]))
	}
	level(&sb, 1, "We actually detected the following:")
	for _, k := range sortedNames(v.Actuals) {
		level(&sb, 2, k+"="+v.Actuals[k])
	}
	return "", sb.String(), nil
}

func level(sb *strings.Builder, n int, msg string) {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", n*2))
	sb.WriteString(msg)
}

// inline renders a map as {k: v, ...} with sorted keys; empty maps render
// as nothing.
func inline[V any](m map[string]V) string {
	if len(m) == 0 {
		return ""
	}
	keys := sortedNames(m)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ": " + plugin.Stringify(m[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func sortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
