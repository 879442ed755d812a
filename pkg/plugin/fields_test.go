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

package plugin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_ErrorText(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
		failed bool
	}{
		{"unset", Fields{}, NoError, false},
		{"nil", Fields{ErrorField: nil}, NoError, false},
		{"empty", Fields{ErrorField: ""}, NoError, false},
		{"sentinel", Fields{ErrorField: NoError}, NoError, false},
		{"description", Fields{ErrorField: "connection refused"}, "connection refused", true},
		{"error value", Fields{ErrorField: fmt.Errorf("boom")}, "boom", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fields.ErrorText())
			assert.Equal(t, tt.failed, tt.fields.Failed())
		})
	}
	assert.True(t, ErrorFields("x").Failed())
}

func TestGatherRequest_Inputs(t *testing.T) {
	t.Setenv("STACKCHECK_TEST_HOST", "from-process")

	req := &GatherRequest{
		Inputs: map[string]any{
			"url":      "https://${HOST}/${STACKCHECK_TEST_HOST}",
			"port":     8080,
			"insecure": "true",
			"shell":    false,
			"bad":      "maybe",
			"nothing":  nil,
		},
		Env: map[string]string{"HOST": "example.com"},
	}

	assert.True(t, req.Has("url"))
	assert.False(t, req.Has("nothing"))
	assert.False(t, req.Has("missing"))

	assert.Equal(t, "https://${HOST}/${STACKCHECK_TEST_HOST}", req.String("url"))
	assert.Equal(t, "https://example.com/from-process", req.Expanded("url"))
	assert.Equal(t, "8080", req.String("port"))
	assert.Equal(t, "", req.String("missing"))

	assert.True(t, req.Bool("insecure", false))
	assert.False(t, req.Bool("shell", true))
	assert.True(t, req.Bool("bad", true))
	assert.False(t, req.Bool("missing", false))
	assert.True(t, req.Bool("port", true))

	assert.Contains(t, req.Environ(), "HOST=example.com")
}

func TestSettings_String(t *testing.T) {
	s := Settings{"path": "/tmp/out.log", "db": 2}
	assert.Equal(t, "/tmp/out.log", s.String("path", ""))
	assert.Equal(t, "2", s.String("db", "0"))
	assert.Equal(t, "fallback", s.String("missing", "fallback"))

	var none Settings
	assert.Equal(t, "d", none.String("x", "d"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "abc", Stringify("abc"))
	assert.Equal(t, "abc", Stringify([]byte("abc")))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "[1 2]", Stringify([]int{1, 2}))
}

func TestView_Fields(t *testing.T) {
	v := &View{Expecteds: map[string]any{"status": 200, "error": NoError, "html": "ok"}}
	assert.Equal(t, []string{"error", "html", "status"}, v.Fields())

	in := Inspections{"b": nil, "a": &Inspection{}}
	assert.Equal(t, []string{"a", "b"}, in.Names())
}
