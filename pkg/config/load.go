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
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/NVIDIA/stackcheck/pkg/defaults"
	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/file"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/serializer"
)

// LoadOption configures Load.
type LoadOption func(*loader)

type loader struct {
	client *httpclient.Client
}

// WithHTTPClient sets the client used for http(s) configuration URLs.
func WithHTTPClient(c *httpclient.Client) LoadOption {
	return func(l *loader) {
		l.client = c
	}
}

// Load reads a configuration document from a local path or an http(s) URL.
// The format (YAML, JSON or TOML) follows the extension; YAML is assumed
// otherwise.
func Load(ctx context.Context, path string, opts ...LoadOption) (*Config, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	data, err := l.read(ctx, path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to read configuration", err, map[string]any{"path": path})
	}

	cfg, err := Parse(serializer.FormatFromPath(path), data)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to parse configuration", err, map[string]any{"path": path})
	}
	return cfg, nil
}

// Parse decodes data in the given format into a Config.
func Parse(format serializer.Format, data []byte) (*Config, error) {
	r, err := serializer.NewReader(format, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var doc map[string]any
	if len(bytes.TrimSpace(data)) > 0 {
		if err := r.Deserialize(&doc); err != nil {
			return nil, err
		}
	}
	return FromMap(doc)
}

func (l *loader) read(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration path is empty")
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		client := l.client
		if client == nil {
			client = httpclient.New(
				httpclient.WithTotalTimeout(defaults.ConfigFetchTimeout),
				httpclient.WithMaxBodySize(defaults.MaxFileSize),
			)
		}
		return client.Read(ctx, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if info.Size() > defaults.MaxFileSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, defaults.MaxFileSize)
	}
	return os.ReadFile(path)
}

// LoadEnv reads an environment overlay file of KEY=VALUE lines. Comments
// start with '#', an optional "export " prefix is ignored and values may be
// wrapped in single or double quotes.
func LoadEnv(path string) (map[string]string, error) {
	parser := file.NewParser(file.WithVTrimChars("\"'"))
	raw, err := parser.GetMap(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to read environment file", err, map[string]any{"path": path})
	}

	env := make(map[string]string, len(raw))
	for k, v := range raw {
		k = strings.TrimSpace(strings.TrimPrefix(k, "export "))
		if k == "" {
			continue
		}
		env[k] = v
	}
	return env, nil
}
