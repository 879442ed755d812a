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

// Package builtin assembles the default plugin registry.
//
// Defaults are registered first and overrides second, so an embedder can
// replace a built-in type key or add new ones:
//
//	plugins := builtin.New(builtin.WithStdout(os.Stdout))
//	defer plugins.Close()
//	reg, err := plugins.Registry(func(r *plugin.Registry) error {
//	    return r.RegisterLogger("syslog", mySyslogFactory)
//	})
package builtin
