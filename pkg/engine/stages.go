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
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/NVIDIA/stackcheck/pkg/config"
	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Formatted is the rendered output of one item together with the view it
// was rendered from. An empty Header means the formatter produced none.
type Formatted struct {
	Header string
	Body   string
	View   *plugin.View
}

// Gather runs the gatherer selected by spec. Failures of the gatherer,
// including an unknown type, end up in the error field of the result. The
// only error returned is a missing required input, which ends the item.
func Gather(ctx context.Context, rc *RunContext, spec config.GatherSpec) (plugin.Fields, error) {
	defer observe("gather", time.Now())

	typ := spec.Type
	if typ == "" {
		typ = rc.DefaultGatherer
	}

	g, err := rc.Registry.Gatherer(typ, spec.Settings)
	if err != nil {
		slog.Warn("gatherer unavailable", "type", typ, "error", err)
		gatherErrors.WithLabelValues(typ).Inc()
		return plugin.ErrorFields(err.Error()), nil
	}

	desc := g.Describe()
	inputs := make(map[string]any, len(desc.Inputs)+len(desc.Optional))
	for _, name := range desc.Inputs {
		v, ok := spec.Settings[name]
		if !ok || v == nil {
			return nil, errors.NewWithContext(errors.ErrCodeMissingInput,
				fmt.Sprintf("gatherer %q requires input %q", typ, name),
				map[string]any{"type": typ, "input": name})
		}
		inputs[name] = v
	}
	for _, name := range desc.Optional {
		if v, ok := spec.Settings[name]; ok {
			inputs[name] = v
		}
	}

	req := &plugin.GatherRequest{Inputs: inputs, Env: rc.Env}

	var raw plugin.Fields
	err = guard(func() error {
		var gerr error
		raw, gerr = g.Gather(ctx, req)
		return gerr
	})

	out := declaredOutputs(typ, desc, raw)
	if err != nil {
		out[plugin.ErrorField] = err.Error()
	}
	if out.Failed() {
		gatherErrors.WithLabelValues(typ).Inc()
	} else {
		out[plugin.ErrorField] = plugin.NoError
	}
	return out, nil
}

// declaredOutputs keeps only the keys the gatherer declares.
func declaredOutputs(typ string, desc plugin.Description, raw plugin.Fields) plugin.Fields {
	allowed := make(map[string]bool, len(desc.Outputs)+1)
	for _, k := range desc.Outputs {
		allowed[k] = true
	}
	allowed[plugin.ErrorField] = true

	out := make(plugin.Fields, len(raw)+1)
	for k, v := range raw {
		if !allowed[k] {
			slog.Warn("dropping undeclared gatherer output", "type", typ, "field", k)
			continue
		}
		out[k] = v
	}
	return out
}

// Inspect evaluates every expectation against the gathered result. A field
// the result does not contain gets a nil entry. Inspector failures are
// recorded on the entry and do not affect other fields.
func Inspect(ctx context.Context, rc *RunContext, gathered plugin.Fields, expectations map[string]config.Expectation) plugin.Inspections {
	defer observe("inspect", time.Now())

	out := make(plugin.Inspections, len(expectations))
	for field, exp := range expectations {
		actual, ok := gathered[field]
		if !ok {
			out[field] = nil
			inspectionsTotal.WithLabelValues("absent").Inc()
			continue
		}

		in := &plugin.Inspection{
			Inspector: exp.Type,
			Expected:  exp.Value,
			Actual:    DisplayActual(actual),
		}
		out[field] = in

		insp, err := rc.Registry.Inspector(exp.Type, nil)
		if err != nil {
			in.Error = err.Error()
			inspectionsTotal.WithLabelValues("error").Inc()
			continue
		}

		err = guard(func() error {
			var merr error
			in.Match, merr = insp.Match(ctx, actual, exp.Value)
			return merr
		})
		switch {
		case err != nil:
			in.Match = false
			in.Error = err.Error()
			inspectionsTotal.WithLabelValues("error").Inc()
		case in.Match:
			inspectionsTotal.WithLabelValues("match").Inc()
		default:
			inspectionsTotal.WithLabelValues("mismatch").Inc()
		}
	}
	return out
}

// DisplayActual renders a gathered value for display with surrounding quote
// characters removed.
func DisplayActual(v any) string {
	return strings.Trim(plugin.Stringify(v), "\"'")
}

// Format builds the item's view and renders it with the formatter selected
// by spec or the run default.
func Format(ctx context.Context, rc *RunContext, item string, spec *config.ItemSpec, gathered plugin.Fields, inspected plugin.Inspections) (Formatted, error) {
	defer observe("format", time.Now())

	gatherType := spec.Gather.Type
	if gatherType == "" {
		gatherType = rc.DefaultGatherer
	}
	view := BuildView(item, gatherType, spec, gathered, inspected)

	fs := spec.Format
	if fs.Type == "" {
		fs = rc.DefaultFormatter
	}
	f, err := rc.Registry.Formatter(fs.Type, fs.Settings)
	if err != nil {
		return Formatted{}, err
	}

	out := Formatted{View: view}
	err = guard(func() error {
		var rerr error
		out.Header, out.Body, rerr = f.Render(ctx, view)
		return rerr
	})
	if err != nil {
		return Formatted{}, errors.WrapWithContext(errors.ErrCodeInternal,
			"formatter failed", err, map[string]any{"type": fs.Type})
	}
	return out, nil
}

// BuildView derives the formatter input. MatchPercent is the share of
// inspected fields that matched, rounded to two decimals, and 0 when no
// field was inspected.
func BuildView(item, gatherType string, spec *config.ItemSpec, gathered plugin.Fields, inspected plugin.Inspections) *plugin.View {
	v := &plugin.View{
		Item:       item,
		GatherType: gatherType,
		Gather:     spec.Gather.Settings,
		Expecteds:  spec.Expecteds(),
		Gathered:   gathered,
		Inspected:  inspected,
		Actuals:    make(map[string]string, len(inspected)),
		Matches:    make(map[string]bool, len(inspected)),
	}
	for field, in := range inspected {
		if in == nil {
			continue
		}
		v.Actuals[field] = in.Actual
		v.Matches[field] = in.Match
		v.InspectCount++
		if in.Match {
			v.MatchCount++
		}
	}
	if v.InspectCount > 0 {
		v.MatchPercent = math.Round(float64(v.MatchCount)/float64(v.InspectCount)*100) / 100
	}
	return v
}

// Log emits text through the logger selected by spec or the run default.
// Failures are reported through slog and yield false.
func Log(ctx context.Context, rc *RunContext, spec config.PluginSpec, text string) bool {
	defer observe("log", time.Now())

	if spec.Type == "" {
		spec = rc.DefaultLogger
	}

	l, err := rc.Registry.Logger(spec.Type, spec.Settings)
	if err != nil {
		slog.Error("logger unavailable", "type", spec.Type, "error", err)
		logFailures.WithLabelValues(spec.Type).Inc()
		return false
	}

	if err := guard(func() error { return l.Emit(ctx, text) }); err != nil {
		slog.Error("failed to emit", "type", spec.Type, "error", err)
		logFailures.WithLabelValues(spec.Type).Inc()
		return false
	}
	return true
}

// guard runs fn and turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func observe(stage string, start time.Time) {
	stageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
