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
	"os"
	"strconv"
	"strings"
)

// NoError is the value of the error field when gathering succeeded.
const NoError = "NOERROR"

// ErrorField is the output key every gathered result carries.
const ErrorField = "error"

// Fields is the result of one gather call keyed by output field name.
type Fields map[string]any

// ErrorText returns the error field as a string, NoError when unset.
func (f Fields) ErrorText() string {
	v, ok := f[ErrorField]
	if !ok || v == nil {
		return NoError
	}
	s := Stringify(v)
	if s == "" {
		return NoError
	}
	return s
}

// Failed reports whether the error field holds a failure description.
func (f Fields) Failed() bool {
	return f.ErrorText() != NoError
}

// ErrorFields returns a result holding only the given failure description.
func ErrorFields(desc string) Fields {
	return Fields{ErrorField: desc}
}

// GatherRequest carries the inputs extracted for one gather call together
// with the run's environment overlay.
type GatherRequest struct {
	Inputs map[string]any
	Env    map[string]string
}

// Has reports whether key was supplied.
func (r *GatherRequest) Has(key string) bool {
	v, ok := r.Inputs[key]
	return ok && v != nil
}

// String returns the raw input as a string without variable expansion.
func (r *GatherRequest) String(key string) string {
	v, ok := r.Inputs[key]
	if !ok || v == nil {
		return ""
	}
	return Stringify(v)
}

// Expanded returns the input as a string with ${VAR} references resolved.
func (r *GatherRequest) Expanded(key string) string {
	return r.Expand(r.String(key))
}

// Bool returns the input interpreted as a boolean, def when absent or
// unparsable.
func (r *GatherRequest) Bool(key string, def bool) bool {
	v, ok := r.Inputs[key]
	if !ok || v == nil {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Expand replaces ${VAR} and $VAR in s using the overlay first and the
// process environment second.
func (r *GatherRequest) Expand(s string) string {
	return os.Expand(s, r.lookup)
}

func (r *GatherRequest) lookup(key string) string {
	if v, ok := r.Env[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// Environ returns the process environment with the overlay applied on top,
// in os/exec form.
func (r *GatherRequest) Environ() []string {
	env := os.Environ()
	for k, v := range r.Env {
		env = append(env, k+"="+v)
	}
	return env
}

// Stringify renders a value the way it is displayed and matched: strings
// as-is, everything else with fmt's default verb.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
