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

	"github.com/Masterminds/semver/v3"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

var versionToken = regexp.MustCompile(`v?\d+(\.\d+){0,2}(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// Semver matches when the first version found in the gathered value
// satisfies the expected constraint, e.g. ">= 1.20, < 2".
type Semver struct{}

// NewSemver returns the semantic version inspector.
func NewSemver() *Semver {
	return &Semver{}
}

// Describe implements plugin.Inspector.
func (*Semver) Describe() plugin.Description {
	return plugin.Description{
		Type:    "semver",
		Summary: "first version in the value satisfies a semantic version constraint",
	}
}

// Match implements plugin.Inspector.
func (*Semver) Match(_ context.Context, actual, expected any) (bool, error) {
	expr, ok := expected.(string)
	if !ok {
		return false, fmt.Errorf("semver constraint must be a string, got %T", expected)
	}
	constraint, err := semver.NewConstraint(expr)
	if err != nil {
		return false, fmt.Errorf("invalid constraint %q: %w", expr, err)
	}

	v, err := ExtractVersion(plugin.Stringify(actual))
	if err != nil {
		return false, err
	}
	return constraint.Check(v), nil
}

// ExtractVersion parses the first version-like token in s, so that
// "Python 3.8.10" yields 3.8.10.
func ExtractVersion(s string) (*semver.Version, error) {
	token := versionToken.FindString(s)
	if token == "" {
		return nil, fmt.Errorf("no version found in %q", s)
	}
	v, err := semver.NewVersion(token)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", token, err)
	}
	return v, nil
}
