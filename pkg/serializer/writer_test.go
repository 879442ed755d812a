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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testConfig struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type testTable struct {
	rows [][]string
}

func (t testTable) TableHeader() []string { return []string{"TYPE", "SUMMARY"} }
func (t testTable) TableRows() [][]string { return t.rows }

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{{Name: "a", Value: 1}, {Name: "b", Value: 2}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[1].Name != "b" {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), testConfig{Name: "a", Value: 7}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testConfig
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result.Value != 7 {
		t.Errorf("Unexpected data: %+v", result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{
			name:     "flattened struct",
			data:     testConfig{Name: "a", Value: 1},
			contains: []string{"FIELD", "VALUE", "Name", "Value"},
		},
		{
			name:     "nested map",
			data:     map[string]any{"outer": map[string]any{"inner": 1}},
			contains: []string{"outer.inner"},
		},
		{
			name:     "scalar",
			data:     42,
			contains: []string{"value", "42"},
		},
		{
			name:     "nil pointer in map",
			data:     map[string]*testConfig{"missing": nil},
			contains: []string{"missing", "<nil>"},
		},
		{
			name: "table interface",
			data: testTable{rows: [][]string{
				{"http", "fetch a url"},
				{"command", "run a shell command"},
			}},
			contains: []string{"TYPE", "----", "command", "run a shell command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), tt.data); err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestNewWriter_FormatFallback(t *testing.T) {
	tests := []struct {
		format Format
		want   Format
	}{
		{FormatJSON, FormatJSON},
		{FormatYAML, FormatYAML},
		{FormatTable, FormatTable},
		{FormatTOML, FormatJSON},
		{Format("xml"), FormatJSON},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w := NewWriter(tt.format, &bytes.Buffer{})
			if w.format != tt.want {
				t.Errorf("got %s, want %s", w.format, tt.want)
			}
		})
	}
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	w := NewWriter(FormatJSON, nil)
	if w.output != os.Stdout {
		t.Error("expected stdout when output is nil")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "  ")
		if w.output != os.Stdout {
			t.Error("expected stdout for empty path")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		w := NewFileWriterOrStdout(FormatJSON, path)
		if err := w.Serialize(context.Background(), testConfig{Name: "x"}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("second Close should be a no-op: %v", err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !strings.Contains(string(content), "\"name\": \"x\"") {
			t.Errorf("unexpected content %s", content)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json"))
		if w.output != os.Stdout {
			t.Error("expected stdout fallback")
		}
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatTable, FormatTOML} {
		if f.IsUnknown() {
			t.Errorf("%s should be known", f)
		}
	}
	if !Format("csv").IsUnknown() {
		t.Error("csv should be unknown")
	}
	if len(SupportedFormats()) != 3 {
		t.Errorf("expected 3 output formats, got %v", SupportedFormats())
	}
}
