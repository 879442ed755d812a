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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPTLSHandshakeTimeout", HTTPTLSHandshakeTimeout, 1 * time.Second, 15 * time.Second},
		{"HTTPResponseHeaderTimeout", HTTPResponseHeaderTimeout, 1 * time.Second, 30 * time.Second},

		// Logger timeouts
		{"WebhookTimeout", WebhookTimeout, 1 * time.Second, 30 * time.Second},
		{"RedisDialTimeout", RedisDialTimeout, 1 * time.Second, 15 * time.Second},
		{"RedisWriteTimeout", RedisWriteTimeout, 1 * time.Second, 15 * time.Second},

		// Configuration timeouts
		{"ConfigFetchTimeout", ConfigFetchTimeout, 5 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestHTTPTimeoutRelationships(t *testing.T) {
	// Phases of a request must fit inside the total budget
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}
	if HTTPResponseHeaderTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPResponseHeaderTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPResponseHeaderTimeout, HTTPClientTimeout)
	}
}

func TestDefaultTypeKeys(t *testing.T) {
	keys := map[string]string{
		"GathererType":        GathererType,
		"InspectorType":       InspectorType,
		"ScalarInspectorType": ScalarInspectorType,
		"FormatterType":       FormatterType,
		"LoggerType":          LoggerType,
	}
	for name, v := range keys {
		if v == "" {
			t.Errorf("%s should not be empty", name)
		}
	}
	if InspectorType == ScalarInspectorType {
		t.Errorf("string and scalar expectations should resolve to different inspectors")
	}
}
