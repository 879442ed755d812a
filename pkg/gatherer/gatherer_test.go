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
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/httpclient"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

func request(inputs map[string]any) *plugin.GatherRequest {
	return &plugin.GatherRequest{Inputs: inputs, Env: map[string]string{}}
}

func TestHTTP_Gather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Probe", r.Header.Get("X-Probe"))
		w.Header().Set("X-Method", r.Method)
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
		_, _ = fmt.Fprintf(w, "<html>%s</html>", body)
	}))
	defer server.Close()

	g := NewHTTP(httpclient.New())
	req := &plugin.GatherRequest{
		Inputs: map[string]any{
			"url":     "${BASE}/path",
			"method":  "post",
			"headers": map[string]any{"X-Probe": "${TOKEN}"},
			"body":    "ping",
		},
		Env: map[string]string{"BASE": server.URL, "TOKEN": "abc"},
	}

	fields, err := g.Gather(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, fields["status"])
	assert.Equal(t, "<html>ping</html>", fields["html"])
	assert.Contains(t, fields["headers"], "X-Probe: abc")
	assert.Contains(t, fields["headers"], "X-Method: POST")
	assert.NotContains(t, fields, plugin.ErrorField)
}

func TestHTTP_GatherErrors(t *testing.T) {
	g := NewHTTP(nil)

	_, err := g.Gather(context.Background(), request(map[string]any{"url": "http://127.0.0.1:1"}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGatherFailed, errors.CodeOf(err))

	_, err = g.Gather(context.Background(), request(map[string]any{
		"url":     "http://127.0.0.1:1",
		"headers": "not-a-map",
	}))
	assert.Error(t, err)
}

func TestHTTP_Insecure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer server.Close()

	g := NewHTTP(httpclient.New())

	_, err := g.Gather(context.Background(), request(map[string]any{"url": server.URL}))
	assert.Error(t, err, "self-signed certificate must be rejected by default")

	fields, err := g.Gather(context.Background(), request(map[string]any{"url": server.URL, "insecure": true}))
	require.NoError(t, err)
	assert.Equal(t, "secure", fields["html"])
}

func TestFormatHeaders(t *testing.T) {
	h := http.Header{}
	h.Add("B", "2")
	h.Add("A", "1")
	h.Add("A", "one")
	assert.Equal(t, "A: 1, one\nB: 2", formatHeaders(h))
}

func TestCommand_Gather(t *testing.T) {
	tests := []struct {
		name      string
		inputs    map[string]any
		env       map[string]string
		result    string
		exitCode  int
		errorText string
	}{
		{
			name:     "echo",
			inputs:   map[string]any{"command_str": "echo Hello, World!"},
			result:   "Hello, World!",
			exitCode: 0,
		},
		{
			name:     "overlay is exported",
			inputs:   map[string]any{"command_str": "echo $GREETING"},
			env:      map[string]string{"GREETING": "hi there"},
			result:   "hi there",
			exitCode: 0,
		},
		{
			name:      "non-zero exit with stderr",
			inputs:    map[string]any{"command_str": "echo oops >&2; exit 3"},
			exitCode:  3,
			errorText: "oops",
		},
		{
			name:      "non-zero exit without stderr",
			inputs:    map[string]any{"command_str": "exit 2"},
			exitCode:  2,
			errorText: "command exited with code 2",
		},
		{
			name:     "exec mode keeps quoted args",
			inputs:   map[string]any{"command_str": `echo "a  b" c`, "shell": false},
			result:   "a  b c",
			exitCode: 0,
		},
		{
			name:     "working directory",
			inputs:   map[string]any{"command_str": "pwd", "dir": "/"},
			result:   "/",
			exitCode: 0,
		},
	}

	g := NewCommand()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &plugin.GatherRequest{Inputs: tt.inputs, Env: tt.env}
			fields, err := g.Gather(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.result, fields["result"])
			assert.Equal(t, tt.exitCode, fields["exit_code"])
			if tt.errorText == "" {
				assert.False(t, fields.Failed(), "unexpected error %v", fields[plugin.ErrorField])
			} else {
				assert.Equal(t, tt.errorText, fields.ErrorText())
			}
		})
	}
}

func TestCommand_GatherErrors(t *testing.T) {
	g := NewCommand()
	tests := []struct {
		name   string
		inputs map[string]any
	}{
		{"empty", map[string]any{"command_str": "  "}},
		{"unbalanced quotes", map[string]any{"command_str": `echo "open`, "shell": false}},
		{"binary not found", map[string]any{"command_str": "definitely-not-a-binary-xyz", "shell": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Gather(context.Background(), request(tt.inputs))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeGatherFailed, errors.CodeOf(err))
		})
	}
}

func TestGrep_Gather(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	content := "INFO start\n# comment ERROR kept\nERROR disk full\n\n  ERROR indented\nerror lower\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	tests := []struct {
		name   string
		inputs map[string]any
		result string
		count  int
	}{
		{
			name:   "matches anywhere in line",
			inputs: map[string]any{"filepath": path, "search": "ERROR"},
			result: "# comment ERROR kept\nERROR disk full\n  ERROR indented",
			count:  3,
		},
		{
			name:   "ignore case",
			inputs: map[string]any{"filepath": path, "search": "^error", "ignore_case": true},
			result: "ERROR disk full\nerror lower",
			count:  2,
		},
		{
			name:   "no match",
			inputs: map[string]any{"filepath": path, "search": "WARN"},
			result: "",
			count:  0,
		},
		{
			name:   "expanded path",
			inputs: map[string]any{"filepath": "${LOGDIR}/app.log", "search": "INFO"},
			result: "INFO start",
			count:  1,
		},
	}

	g := NewGrep()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &plugin.GatherRequest{Inputs: tt.inputs, Env: map[string]string{"LOGDIR": dir}}
			fields, err := g.Gather(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.result, fields["result"])
			assert.Equal(t, tt.count, fields["line_count"])
		})
	}
}

func TestGrep_GatherErrors(t *testing.T) {
	g := NewGrep()

	_, err := g.Gather(context.Background(), request(map[string]any{
		"filepath": filepath.Join(t.TempDir(), "missing"), "search": "x",
	}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGatherFailed, errors.CodeOf(err))

	_, err = g.Gather(context.Background(), request(map[string]any{"filepath": "/etc/hostname", "search": "(["}))
	assert.Error(t, err)
}

type fakeUnitConn struct {
	props  map[string]map[string]any
	closed bool
}

func (f *fakeUnitConn) GetUnitPropertiesContext(_ context.Context, unit string) (map[string]any, error) {
	p, ok := f.props[unit]
	if !ok {
		return nil, fmt.Errorf("unit %s not found", unit)
	}
	return p, nil
}

func (f *fakeUnitConn) Close() { f.closed = true }

func TestSystemd_Gather(t *testing.T) {
	conn := &fakeUnitConn{props: map[string]map[string]any{
		"containerd.service": {
			"ActiveState":   "active",
			"SubState":      "running",
			"LoadState":     "loaded",
			"UnitFileState": "enabled",
			"Description":   "containerd container runtime",
			"MainPID":       uint32(1234),
		},
	}}
	g := NewSystemd(func(context.Context) (UnitConn, error) { return conn, nil })

	fields, err := g.Gather(context.Background(), request(map[string]any{"unit": "containerd"}))
	require.NoError(t, err)
	assert.Equal(t, "active", fields["active_state"])
	assert.Equal(t, "running", fields["sub_state"])
	assert.Equal(t, "enabled", fields["unit_file_state"])
	assert.NotContains(t, fields, "MainPID")
	assert.True(t, conn.closed)

	_, err = g.Gather(context.Background(), request(map[string]any{"unit": "missing.service"}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGatherFailed, errors.CodeOf(err))
}

func TestSystemd_DialError(t *testing.T) {
	g := NewSystemd(func(context.Context) (UnitConn, error) { return nil, fmt.Errorf("no bus") })
	_, err := g.Gather(context.Background(), request(map[string]any{"unit": "x.service"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bus")
}

func TestDescribe_OutputsIncludeError(t *testing.T) {
	for _, g := range []plugin.Gatherer{NewHTTP(nil), NewCommand(), NewGrep(), NewSystemd(nil)} {
		d := g.Describe()
		assert.Contains(t, d.Outputs, plugin.ErrorField, d.Type)
		assert.NotEmpty(t, d.Inputs, d.Type)
	}
}
