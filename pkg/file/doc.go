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

// Package file reads line oriented text files.
//
// The Parser splits a file into lines or key-value pairs with configurable
// delimiters, comment handling and value trimming. The environment overlay
// loader uses GetMap to read KEY=VALUE files and the grep gatherer uses
// GetLines to scan a file for matching lines.
//
//	parser := file.NewParser(
//	    file.WithVTrimChars(`"'`),
//	    file.WithSkipEmptyValues(true),
//	)
//	env, err := parser.GetMap(".env")
package file
