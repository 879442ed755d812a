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

// Package serializer reads and writes structured documents.
//
// Output formats (Writer):
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - Table: Column layout for values implementing Table, flattened
//     key/value pairs for everything else
//
// Input formats (Reader): JSON, YAML and TOML. FormatFromPath picks the
// format from a file extension or URL path.
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatTable, os.Stdout)
//	defer writer.Close()
//	if err := writer.Serialize(ctx, data); err != nil {
//		return err
//	}
//
//	reader, err := serializer.NewReader(serializer.FormatFromPath(path), f)
//	if err != nil {
//		return err
//	}
//	var doc map[string]any
//	err = reader.Deserialize(&doc)
package serializer
