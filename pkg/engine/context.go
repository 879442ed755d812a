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
	"sync"

	"github.com/google/uuid"

	"github.com/NVIDIA/stackcheck/pkg/config"
	"github.com/NVIDIA/stackcheck/pkg/defaults"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// RunContext is the state shared by every item pipeline of one run.
// Everything but the header flag is read-only once the run starts.
type RunContext struct {
	ID       string
	Registry *plugin.Registry
	Env      map[string]string

	DefaultGatherer  string
	DefaultFormatter config.PluginSpec
	DefaultLogger    config.PluginSpec

	headerMu     sync.Mutex
	headerLogged bool
}

// NewRunContext creates a run context with a fresh run ID and the built-in
// default plugin types.
func NewRunContext(reg *plugin.Registry, env map[string]string) *RunContext {
	if env == nil {
		env = map[string]string{}
	}
	return &RunContext{
		ID:               uuid.NewString(),
		Registry:         reg,
		Env:              env,
		DefaultGatherer:  defaults.GathererType,
		DefaultFormatter: config.PluginSpec{Type: defaults.FormatterType},
		DefaultLogger:    config.PluginSpec{Type: defaults.LoggerType},
	}
}

// LogHeader emits header through the logger selected by spec unless a
// header was already emitted during this run. Callers block until the
// header has been handled, so a body logged afterwards always follows it.
// The flag is only set once a header was actually emitted, so a failing
// logger does not suppress it for other items.
func (rc *RunContext) LogHeader(ctx context.Context, spec config.PluginSpec, header string) {
	if header == "" {
		return
	}

	rc.headerMu.Lock()
	defer rc.headerMu.Unlock()

	if rc.headerLogged {
		return
	}
	if Log(ctx, rc, spec, header) {
		rc.headerLogged = true
	}
}

// HeaderLogged reports whether a header has been emitted.
func (rc *RunContext) HeaderLogged() bool {
	rc.headerMu.Lock()
	defer rc.headerMu.Unlock()
	return rc.headerLogged
}
