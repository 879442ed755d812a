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
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Column is one fixed-width column of the simple layout.
type Column struct {
	Name  string
	Width int
}

// SimpleColumns is the default simple layout.
var SimpleColumns = []Column{
	{"item", 32},
	{"type", 8},
	{"field", 16},
	{"expected", 32},
	{"actual", 32},
	{"match", 6},
	{"error", 6},
}

const (
	ellipsis = ".."
	absent   = "-"
)

// Simple renders one aligned row per expectation and a column header.
type Simple struct {
	columns []Column
}

// NewSimple creates a simple formatter with the default layout.
func NewSimple() *Simple {
	return &Simple{columns: SimpleColumns}
}

// Describe implements plugin.Formatter.
func (*Simple) Describe() plugin.Description {
	return plugin.Description{
		Type:    "simple",
		Summary: "fixed-width table, one row per inspected field",
	}
}

// Render implements plugin.Formatter.
func (s *Simple) Render(_ context.Context, v *plugin.View) (string, string, error) {
	header := make([]string, len(s.columns))
	for i, c := range s.columns {
		header[i] = c.Name
	}

	failed := strconv.FormatBool(v.Gathered.Failed())
	rows := make([]string, 0, len(v.Expecteds))
	for _, field := range v.Fields() {
		actual, ok := v.Actuals[field]
		if !ok {
			actual = absent
		}
		rows = append(rows, s.row([]string{
			v.Item,
			v.GatherType,
			field,
			plugin.Stringify(v.Expecteds[field]),
			actual,
			strconv.FormatBool(v.Matches[field]),
			failed,
		}))
	}

	return s.row(header), strings.Join(rows, "\n"), nil
}

func (s *Simple) row(cells []string) string {
	var sb strings.Builder
	for i, c := range s.columns {
		sb.WriteString(Fit(c.Width, cells[i]))
	}
	return strings.TrimRight(sb.String(), " ")
}

// Fit pads or truncates txt to exactly size display cells. Truncated text
// ends with "..". Wide East Asian characters count as two cells and line
// breaks are shown as spaces.
func Fit(size int, txt string) string {
	txt = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(txt)

	if cells(txt) <= size {
		return txt + strings.Repeat(" ", size-cells(txt))
	}

	limit := size - len(ellipsis)
	var sb strings.Builder
	used := 0
	for _, r := range txt {
		w := runeCells(r)
		if used+w > limit {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	if limit >= 0 {
		sb.WriteString(ellipsis)
		used += len(ellipsis)
	}
	return sb.String() + strings.Repeat(" ", max(size-used, 0))
}

func cells(s string) int {
	n := 0
	for _, r := range s {
		n += runeCells(r)
	}
	return n
}

func runeCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
