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
	"fmt"

	"github.com/NVIDIA/stackcheck/pkg/defaults"
)

// ExpectationKind tells how an expectation was written in configuration.
type ExpectationKind int

const (
	// KindScalar is any non-string value; it is checked for equality.
	KindScalar ExpectationKind = iota
	// KindPattern is a string; it is matched as a regular expression.
	KindPattern
	// KindExplicit is a mapping naming the inspector and its value.
	KindExplicit
)

// String implements fmt.Stringer.
func (k ExpectationKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindPattern:
		return "pattern"
	case KindExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Expectation is one expected value for a gathered field. The inspector type
// is fixed when the expectation is parsed.
type Expectation struct {
	Kind  ExpectationKind
	Type  string
	Value any
}

// Scalar returns an equality expectation.
func Scalar(v any) Expectation {
	return Expectation{Kind: KindScalar, Type: defaults.ScalarInspectorType, Value: v}
}

// Pattern returns a regular expression expectation.
func Pattern(expr string) Expectation {
	return Expectation{Kind: KindPattern, Type: defaults.InspectorType, Value: expr}
}

// Explicit returns an expectation for the named inspector. An empty type
// selects the default inspector.
func Explicit(inspector string, v any) Expectation {
	if inspector == "" {
		inspector = defaults.InspectorType
	}
	return Expectation{Kind: KindExplicit, Type: inspector, Value: v}
}

// ParseExpectation resolves a raw configuration value:
// a string is a pattern, a mapping with "type" and "value" is explicit and
// anything else (numbers, booleans, lists, null) is a scalar.
func ParseExpectation(raw any) (Expectation, error) {
	switch v := raw.(type) {
	case string:
		return Pattern(v), nil
	case map[string]any:
		return parseExplicit(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return parseExplicit(m)
	default:
		return Scalar(v), nil
	}
}

func parseExplicit(m map[string]any) (Expectation, error) {
	value, ok := m["value"]
	if !ok {
		return Expectation{}, fmt.Errorf("expectation mapping requires a value")
	}
	var inspector string
	if t, ok := m["type"]; ok && t != nil {
		s, isString := t.(string)
		if !isString {
			return Expectation{}, fmt.Errorf("expectation type must be a string, got %T", t)
		}
		inspector = s
	}
	for k := range m {
		if k != "type" && k != "value" {
			return Expectation{}, fmt.Errorf("unknown expectation key %q", k)
		}
	}
	return Explicit(inspector, value), nil
}
