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

package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// State is the position of an item in its pipeline.
type State string

const (
	StatePending    State = "pending"
	StateGathering  State = "gathering"
	StateInspecting State = "inspecting"
	StateFormatting State = "formatting"
	StateLogging    State = "logging"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// ItemResult is the outcome of one item.
type ItemResult struct {
	Name         string             `json:"name" yaml:"name"`
	State        State              `json:"state" yaml:"state"`
	Error        string             `json:"error,omitempty" yaml:"error,omitempty"`
	Gathered     plugin.Fields      `json:"gathered,omitempty" yaml:"gathered,omitempty"`
	Inspected    plugin.Inspections `json:"inspected,omitempty" yaml:"inspected,omitempty"`
	InspectCount int                `json:"inspect_count" yaml:"inspect_count"`
	MatchCount   int                `json:"match_count" yaml:"match_count"`
	MatchPercent float64            `json:"match_percent" yaml:"match_percent"`
	Logged       bool               `json:"logged" yaml:"logged"`
	Duration     time.Duration      `json:"duration" yaml:"duration"`
}

// Matched reports whether the item completed and every inspected field
// matched.
func (r *ItemResult) Matched() bool {
	return r.State == StateDone && r.MatchCount == r.InspectCount
}

// Outcome classifies the result as matched, mismatched or failed.
func (r *ItemResult) Outcome() string {
	switch {
	case r.State != StateDone:
		return "failed"
	case r.Matched():
		return "matched"
	default:
		return "mismatched"
	}
}

// Summary counts item outcomes.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Done       int `json:"done" yaml:"done"`
	Failed     int `json:"failed" yaml:"failed"`
	Matched    int `json:"matched" yaml:"matched"`
	Mismatched int `json:"mismatched" yaml:"mismatched"`
}

// Report is the outcome of one run. Items are sorted by name.
type Report struct {
	RunID    string        `json:"run_id" yaml:"run_id"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Items    []ItemResult  `json:"items" yaml:"items"`
	Summary  Summary       `json:"summary" yaml:"summary"`
}

func newReport(runID string, start time.Time, items []ItemResult) *Report {
	r := &Report{
		RunID:    runID,
		Started:  start,
		Duration: time.Since(start),
		Items:    items,
	}
	r.Summary.Total = len(items)
	for i := range items {
		switch items[i].Outcome() {
		case "failed":
			r.Summary.Failed++
		case "matched":
			r.Summary.Done++
			r.Summary.Matched++
		default:
			r.Summary.Done++
			r.Summary.Mismatched++
		}
	}
	return r
}

// Item returns the result for name.
func (r *Report) Item(name string) (*ItemResult, bool) {
	for i := range r.Items {
		if r.Items[i].Name == name {
			return &r.Items[i], true
		}
	}
	return nil, false
}

// Passed reports whether every item completed and matched.
func (r *Report) Passed() bool {
	return r.Summary.Failed == 0 && r.Summary.Mismatched == 0
}

// TableHeader implements serializer.Table.
func (r *Report) TableHeader() []string {
	return []string{"ITEM", "OUTCOME", "MATCHES", "LOGGED", "ERROR"}
}

// TableRows implements serializer.Table.
func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		errText := it.Error
		if errText == "" && it.Gathered.Failed() {
			errText = it.Gathered.ErrorText()
		}
		rows = append(rows, []string{
			it.Name,
			it.Outcome(),
			fmt.Sprintf("%d/%d", it.MatchCount, it.InspectCount),
			strconv.FormatBool(it.Logged),
			errText,
		})
	}
	return rows
}
