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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/stackcheck/pkg/config"
	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry sets the plugin registry. It is frozen when the run starts.
func WithRegistry(r *plugin.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithEnv sets the environment overlay handed to gatherers.
func WithEnv(env map[string]string) Option {
	return func(e *Engine) {
		e.env = env
	}
}

// WithParallelism bounds how many items run at once. 0 means unbounded.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// WithDefaultGatherer sets the gatherer type used when an item names none.
func WithDefaultGatherer(typ string) Option {
	return func(e *Engine) {
		e.defaultGatherer = typ
	}
}

// WithDefaultFormatter sets the formatter used when an item names none.
func WithDefaultFormatter(spec config.PluginSpec) Option {
	return func(e *Engine) {
		e.defaultFormatter = spec
	}
}

// WithDefaultLogger sets the logger used when an item names none.
func WithDefaultLogger(spec config.PluginSpec) Option {
	return func(e *Engine) {
		e.defaultLogger = spec
	}
}

// Engine runs the gather, inspect, format and log pipeline for every
// configured item concurrently.
type Engine struct {
	cfg         *config.Config
	registry    *plugin.Registry
	env         map[string]string
	parallelism int

	defaultGatherer  string
	defaultFormatter config.PluginSpec
	defaultLogger    config.PluginSpec
}

// New creates an Engine for cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start runs every item to completion and reports the outcome. Item
// failures never stop other items and are part of the report; an error is
// returned only when the run cannot start.
func (e *Engine) Start(ctx context.Context) (*Report, error) {
	if e.cfg == nil {
		return nil, errors.New(errors.ErrCodeRunFailed, "configuration is nil")
	}
	if e.registry == nil || e.registry.IsEmpty() {
		return nil, errors.New(errors.ErrCodeRunFailed, "plugin registry is empty")
	}
	if e.parallelism < 0 {
		return nil, errors.New(errors.ErrCodeRunFailed, fmt.Sprintf("invalid parallelism %d", e.parallelism))
	}

	e.registry.Freeze()
	rc := e.newRunContext()

	start := time.Now()
	defer func() {
		runDuration.Observe(time.Since(start).Seconds())
	}()

	// Default expectations are added before any pipeline starts.
	names := e.cfg.Names()
	specs := make([]*config.ItemSpec, len(names))
	for i, name := range names {
		spec := e.cfg.Items[name]
		if spec == nil {
			spec = &config.ItemSpec{}
		}
		specs[i] = spec.WithDefaultError()
	}

	slog.Info("starting run", "run", rc.ID, "items", len(names), "parallelism", e.parallelism)

	results := make([]ItemResult, len(names))

	var g errgroup.Group
	if e.parallelism > 0 {
		g.SetLimit(e.parallelism)
	}
	for i, name := range names {
		g.Go(func() error {
			results[i] = runItem(ctx, rc, name, specs[i])
			return nil
		})
	}
	_ = g.Wait()

	report := newReport(rc.ID, start, results)
	slog.Info("run complete",
		"run", rc.ID,
		"total", report.Summary.Total,
		"matched", report.Summary.Matched,
		"mismatched", report.Summary.Mismatched,
		"failed", report.Summary.Failed,
		"duration", report.Duration.String())
	return report, nil
}

func (e *Engine) newRunContext() *RunContext {
	rc := NewRunContext(e.registry, e.env)
	if e.defaultGatherer != "" {
		rc.DefaultGatherer = e.defaultGatherer
	}
	if e.defaultFormatter.Type != "" {
		rc.DefaultFormatter = e.defaultFormatter
	}
	if e.defaultLogger.Type != "" {
		rc.DefaultLogger = e.defaultLogger
	}
	return rc
}

// runItem moves one item through its stages. Errors flow forward as data;
// only a missing gather input or a formatter failure end the item early.
func runItem(ctx context.Context, rc *RunContext, name string, spec *config.ItemSpec) (res ItemResult) {
	start := time.Now()
	res = ItemResult{Name: name, State: StatePending}
	log := slog.With("run", rc.ID, "item", name)

	defer func() {
		if r := recover(); r != nil {
			res.State = StateFailed
			res.Error = fmt.Sprintf("panic: %v", r)
			log.Error("item pipeline panicked", "panic", r)
		}
		res.Duration = time.Since(start)
		itemsTotal.WithLabelValues(res.Outcome()).Inc()
	}()

	res.State = StateGathering
	gathered, err := Gather(ctx, rc, spec.Gather)
	if err != nil {
		log.Error("item failed", "state", res.State, "error", err)
		res.State = StateFailed
		res.Error = err.Error()
		return res
	}
	res.Gathered = gathered
	if gathered.Failed() {
		log.Warn("gather reported an error", "error", gathered.ErrorText())
	}

	res.State = StateInspecting
	inspected := Inspect(ctx, rc, gathered, spec.Inspect)
	res.Inspected = inspected

	res.State = StateFormatting
	out, err := Format(ctx, rc, name, spec, gathered, inspected)
	if err != nil {
		log.Error("item failed", "state", res.State, "error", err)
		res.State = StateFailed
		res.Error = err.Error()
		return res
	}
	res.InspectCount, res.MatchCount, res.MatchPercent = out.View.InspectCount, out.View.MatchCount, out.View.MatchPercent

	res.State = StateLogging
	rc.LogHeader(ctx, spec.Log, out.Header)
	res.Logged = Log(ctx, rc, spec.Log, out.Body)

	res.State = StateDone
	log.Debug("item done", "matched", res.MatchCount, "inspected", res.InspectCount, "logged", res.Logged)
	return res
}
