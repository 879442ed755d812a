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

package gatherer

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// HTTP requests a URL and reports the status, headers and body.
type HTTP struct {
	client   *httpclient.Client
	insecure *httpclient.Client
}

// NewHTTP creates an HTTP gatherer using client, or a default client when
// client is nil.
func NewHTTP(client *httpclient.Client) *HTTP {
	if client == nil {
		client = httpclient.New()
	}
	return &HTTP{
		client:   client,
		insecure: client.Insecure(),
	}
}

// Describe implements plugin.Gatherer.
func (*HTTP) Describe() plugin.Description {
	return plugin.Description{
		Type:     "http",
		Summary:  "request a URL and capture status, headers and body",
		Inputs:   []string{"url"},
		Optional: []string{"method", "headers", "body", "insecure"},
		Outputs:  []string{"status", "headers", "html", plugin.ErrorField},
	}
}

// Gather implements plugin.Gatherer.
func (g *HTTP) Gather(ctx context.Context, req *plugin.GatherRequest) (plugin.Fields, error) {
	url := req.Expanded("url")

	method := strings.ToUpper(req.String("method"))
	if method == "" {
		method = http.MethodGet
	}

	header, err := requestHeaders(req)
	if err != nil {
		return nil, err
	}

	var body []byte
	if req.Has("body") {
		body = []byte(req.Expanded("body"))
	}

	client := g.client
	if req.Bool("insecure", false) {
		client = g.insecure
	}

	resp, err := client.Do(ctx, method, url, header, body)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeGatherFailed, "http request failed", err,
			map[string]any{"url": url, "method": method})
	}

	return plugin.Fields{
		"status":  resp.StatusCode,
		"headers": formatHeaders(resp.Header),
		"html":    string(resp.Body),
	}, nil
}

func requestHeaders(req *plugin.GatherRequest) (http.Header, error) {
	header := http.Header{}
	raw, ok := req.Inputs["headers"]
	if !ok || raw == nil {
		return header, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("headers must be a mapping, got %T", raw)
	}
	for k, v := range m {
		header.Set(k, req.Expand(plugin.Stringify(v)))
	}
	return header, nil
}

// formatHeaders renders headers as sorted "Key: value" lines.
func formatHeaders(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(h[k], ", "))
	}
	return sb.String()
}
