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

package builtin

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/NVIDIA/stackcheck/pkg/formatter"
	"github.com/NVIDIA/stackcheck/pkg/gatherer"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/inspector"
	"github.com/NVIDIA/stackcheck/pkg/logger"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Override changes or extends a registry after the defaults are registered.
type Override func(*plugin.Registry) error

// Option configures the built-in plugin set.
type Option func(*Plugins)

// Plugins owns the resources the built-in plugins share during a run:
// the console writer, the HTTP client, open log files and Redis clients.
type Plugins struct {
	stdout io.Writer
	client *httpclient.Client
	dial   gatherer.Dialer
	files  *logger.Files
	redis  *logger.RedisClients
}

// WithStdout sets the console logger's writer.
func WithStdout(w io.Writer) Option {
	return func(p *Plugins) {
		p.stdout = w
	}
}

// WithHTTPClient sets the client used by the http gatherer and the webhook
// logger.
func WithHTTPClient(c *httpclient.Client) Option {
	return func(p *Plugins) {
		p.client = c
	}
}

// WithSystemdDialer sets how the systemd gatherer connects to systemd.
func WithSystemdDialer(d gatherer.Dialer) Option {
	return func(p *Plugins) {
		p.dial = d
	}
}

// New creates the built-in plugin set.
func New(opts ...Option) *Plugins {
	p := &Plugins{
		stdout: os.Stdout,
		files:  logger.NewFiles(),
		redis:  logger.NewRedisClients(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = httpclient.New()
	}
	return p
}

// Registry returns a registry holding every built-in plugin with the
// overrides applied in order.
func (p *Plugins) Registry(overrides ...Override) (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	if err := p.Register(r); err != nil {
		return nil, err
	}
	for i, o := range overrides {
		if o == nil {
			continue
		}
		if err := o(r); err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
	}
	return r, nil
}

// Register adds the built-in plugins to r.
func (p *Plugins) Register(r *plugin.Registry) error {
	regs := []error{
		r.RegisterGatherer("http", plugin.Singleton[plugin.Gatherer](gatherer.NewHTTP(p.client))),
		r.RegisterGatherer("command", plugin.Singleton[plugin.Gatherer](gatherer.NewCommand())),
		r.RegisterGatherer("grep", plugin.Singleton[plugin.Gatherer](gatherer.NewGrep())),
		r.RegisterGatherer("systemd", plugin.Singleton[plugin.Gatherer](gatherer.NewSystemd(p.dial))),

		r.RegisterInspector("equals", plugin.Singleton[plugin.Inspector](inspector.NewEquals())),
		r.RegisterInspector("regex", plugin.Singleton[plugin.Inspector](inspector.NewRegex())),
		r.RegisterInspector("semver", plugin.Singleton[plugin.Inspector](inspector.NewSemver())),

		r.RegisterFormatter("simple", plugin.Singleton[plugin.Formatter](formatter.NewSimple())),
		r.RegisterFormatter("json", jsonFormatter),
		r.RegisterFormatter("yaml", plugin.Singleton[plugin.Formatter](formatter.NewYAML())),
		r.RegisterFormatter("pipe", plugin.Singleton[plugin.Formatter](formatter.NewPipe())),
		r.RegisterFormatter("friendly", plugin.Singleton[plugin.Formatter](formatter.NewFriendly())),

		r.RegisterLogger("console", plugin.Singleton[plugin.Logger](logger.NewConsole(p.stdout))),
		r.RegisterLogger("file", p.files.Factory),
		r.RegisterLogger("webhook", logger.WebhookFactory(p.client)),
		r.RegisterLogger("redis", p.redis.Factory),
	}
	return stderrors.Join(regs...)
}

// Close releases open log files and Redis clients.
func (p *Plugins) Close() error {
	return stderrors.Join(p.files.Close(), p.redis.Close())
}

// NewRegistry returns a registry with the default built-in plugin set and
// the overrides applied. Resources opened by file or redis loggers live until
// the process exits; use New and Plugins.Close to release them earlier.
func NewRegistry(overrides ...Override) (*plugin.Registry, error) {
	return New().Registry(overrides...)
}

func jsonFormatter(s plugin.Settings) (plugin.Formatter, error) {
	indent, err := strconv.ParseBool(s.String("indent", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid indent setting: %w", err)
	}
	return formatter.NewJSON(indent), nil
}
