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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/stackcheck/pkg/errors"
)

const yamlDoc = `
python:
  gather:
    type: command
    command_str: python3 --version
  inspect:
    result: ^Python 3\.\d+\.\d+$
    exit_code: 0
`

const jsonDoc = `{
  "python": {
    "gather": {"type": "command", "command_str": "python3 --version"},
    "inspect": {"result": "^Python 3\\.\\d+\\.\\d+$", "exit_code": 0}
  }
}`

const tomlDoc = `
[python.gather]
type = "command"
command_str = "python3 --version"

[python.inspect]
result = '^Python 3\.\d+\.\d+$'
exit_code = 0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "checks.yaml", yamlDoc},
		{"json", "checks.json", jsonDoc},
		{"toml", "checks.toml", tomlDoc},
		{"no extension is yaml", "checks", yamlDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(context.Background(), writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.Contains(t, cfg.Items, "python")

			item := cfg.Items["python"]
			assert.Equal(t, "command", item.Gather.Type)
			assert.Equal(t, "python3 --version", item.Gather.Settings["command_str"])
			assert.Equal(t, Pattern(`^Python 3\.\d+\.\d+$`), item.Inspect["result"])
			assert.Equal(t, KindScalar, item.Inspect["exit_code"].Kind)
		})
	}
}

func TestLoad_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checks.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(yamlDoc))
	}))
	defer server.Close()

	cfg, err := Load(context.Background(), server.URL+"/checks.yaml")
	require.NoError(t, err)
	assert.Contains(t, cfg.Items, "python")

	_, err = Load(context.Background(), server.URL+"/missing.yaml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"empty path", func(*testing.T) string { return "" }},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }},
		{"directory", func(t *testing.T) string { return t.TempDir() }},
		{"invalid yaml", func(t *testing.T) string { return writeFile(t, "bad.yaml", "a: [unclosed") }},
		{"not a mapping", func(t *testing.T) string { return writeFile(t, "list.yaml", "- a\n- b\n") }},
		{"missing gather", func(t *testing.T) string { return writeFile(t, "nogather.yaml", "a:\n  inspect: {}\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(context.Background(), writeFile(t, "empty.yaml", "\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Items)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", `
# service endpoints
HOST=example.com
export PORT=8443
TOKEN="quoted value"
SINGLE='x'
EMPTY=
`)

	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"HOST":   "example.com",
		"PORT":   "8443",
		"TOKEN":  "quoted value",
		"SINGLE": "x",
		"EMPTY":  "",
	}, env)

	_, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}
