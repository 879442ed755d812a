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

package inspector

import (
	"context"
	"reflect"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Equals matches when the gathered value equals the expected value.
// Numbers compare by value regardless of their Go type so that 200 from a
// YAML document equals a gathered int status.
type Equals struct{}

// NewEquals returns the equality inspector.
func NewEquals() *Equals {
	return &Equals{}
}

// Describe implements plugin.Inspector.
func (*Equals) Describe() plugin.Description {
	return plugin.Description{
		Type:    "equals",
		Summary: "exact value equality; numbers compare by value",
	}
}

// Match implements plugin.Inspector.
func (*Equals) Match(_ context.Context, actual, expected any) (bool, error) {
	a, aok := toNumber(actual)
	e, eok := toNumber(expected)
	switch {
	case aok && eok:
		return a.equal(e), nil
	case aok || eok:
		return false, nil
	default:
		return reflect.DeepEqual(actual, expected), nil
	}
}

// number holds a numeric value in the widest form of its kind.
type number struct {
	kind reflect.Kind // Int64, Uint64 or Float64
	i    int64
	u    uint64
	f    float64
}

// equal compares integers exactly and falls back to float64 only when
// either side is a float.
func (n number) equal(o number) bool {
	switch {
	case n.kind == reflect.Float64 || o.kind == reflect.Float64:
		return n.float() == o.float()
	case n.kind == o.kind && n.kind == reflect.Int64:
		return n.i == o.i
	case n.kind == o.kind:
		return n.u == o.u
	case n.kind == reflect.Int64:
		return n.i >= 0 && uint64(n.i) == o.u
	default:
		return o.i >= 0 && uint64(o.i) == n.u
	}
}

func (n number) float() float64 {
	//nolint:exhaustive // number only holds these kinds
	switch n.kind {
	case reflect.Int64:
		return float64(n.i)
	case reflect.Uint64:
		return float64(n.u)
	default:
		return n.f
	}
}

func toNumber(v any) (number, bool) {
	rv := reflect.ValueOf(v)
	//nolint:exhaustive // only numeric kinds convert
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: reflect.Int64, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: reflect.Uint64, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: reflect.Float64, f: rv.Float()}, true
	default:
		return number{}, false
	}
}
