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
	"fmt"
	"regexp"
	"sync"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Regex matches when the expected pattern matches the start of the gathered
// value's string form. The end is only anchored if the pattern says so.
type Regex struct {
	cache sync.Map // pattern -> *regexp.Regexp
}

// NewRegex returns a regex inspector with an empty pattern cache.
func NewRegex() *Regex {
	return &Regex{}
}

// Describe implements plugin.Inspector.
func (*Regex) Describe() plugin.Description {
	return plugin.Description{
		Type:    "regex",
		Summary: "regular expression anchored at the start of the value",
	}
}

// Match implements plugin.Inspector.
func (r *Regex) Match(_ context.Context, actual, expected any) (bool, error) {
	expr, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("regex expectation must be a string, got %T", expected)
	}
	re, err := r.compile(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(plugin.Stringify(actual)), nil
}

func (r *Regex) compile(expr string) (*regexp.Regexp, error) {
	if v, ok := r.cache.Load(expr); ok {
		return v.(*regexp.Regexp), nil
	}
	// The pattern must compile alone so it cannot close the anchoring group.
	if _, err := regexp.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	r.cache.Store(expr, re)
	return re, nil
}
