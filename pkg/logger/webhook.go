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

package logger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NVIDIA/stackcheck/pkg/defaults"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

const defaultWebhookField = "text"

// Webhook posts each text as a JSON object {"<field>": text} to a URL, the
// shape chat incoming webhooks accept.
type Webhook struct {
	client *httpclient.Client
	url    string
	field  string
}

// WebhookFactory returns a factory building webhook loggers that share
// client. A nil client gets a default one with the webhook timeout.
func WebhookFactory(client *httpclient.Client) plugin.Factory[plugin.Logger] {
	if client == nil {
		client = httpclient.New(httpclient.WithTotalTimeout(defaults.WebhookTimeout))
	}
	return func(s plugin.Settings) (plugin.Logger, error) {
		return &Webhook{
			client: client,
			url:    s.String("url", ""),
			field:  s.String("field", defaultWebhookField),
		}, nil
	}
}

// Describe implements plugin.Logger.
func (*Webhook) Describe() plugin.Description {
	return plugin.Description{
		Type:     "webhook",
		Summary:  "POST each message as JSON to a URL",
		Optional: []string{"url", "field"},
	}
}

// Emit implements plugin.Logger.
func (w *Webhook) Emit(ctx context.Context, text string) error {
	if w.url == "" {
		return fmt.Errorf("webhook logger requires a url setting")
	}
	payload, err := json.Marshal(map[string]string{w.field: text})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}
	resp, err := w.client.Post(ctx, w.url, "application/json", payload)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook %s returned status %d", w.url, resp.StatusCode)
	}
	return nil
}
