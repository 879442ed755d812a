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

// Package httpclient provides the outbound HTTP client shared by the http
// gatherer, the webhook logger and remote configuration loading.
//
// The client sets conservative transport timeouts from pkg/defaults, reads
// whole response bodies up to a size cap and can apply a client side rate
// limit (golang.org/x/time/rate) so that many concurrently running checks do
// not flood a single endpoint.
//
//	c := httpclient.New(
//	    httpclient.WithTotalTimeout(10*time.Second),
//	    httpclient.WithRateLimit(5, 1),
//	)
//	resp, err := c.Do(ctx, http.MethodGet, "https://example.com/healthz", nil, nil)
package httpclient
