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

// Package logger implements the built-in loggers.
//
//   - console: prints to standard output
//   - file: appends to the file named by the path setting
//   - webhook: POSTs {"text": message} to the url setting
//   - redis: RPUSHes to (mode list) or PUBLISHes on (mode publish) the key
//     setting of the Redis server at addr
//
// Loggers are created per item, so the shared resources (writers, open files,
// HTTP and Redis clients) live in the factories. Writers are guarded so lines
// from concurrently running items never interleave.
package logger
