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
	"regexp"
	"strings"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/file"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Grep searches a file for lines matching a regular expression.
type Grep struct {
	parser *file.Parser
}

// NewGrep creates a grep gatherer. Files larger than the parser's maximum
// size are rejected.
func NewGrep(opts ...file.Option) *Grep {
	base := []file.Option{file.WithSkipComments(false), file.WithTrimSpace(false)}
	return &Grep{parser: file.NewParser(append(base, opts...)...)}
}

// Describe implements plugin.Gatherer.
func (*Grep) Describe() plugin.Description {
	return plugin.Description{
		Type:     "grep",
		Summary:  "search a file and count matching lines",
		Inputs:   []string{"filepath", "search"},
		Optional: []string{"ignore_case"},
		Outputs:  []string{"result", "line_count", plugin.ErrorField},
	}
}

// Gather implements plugin.Gatherer.
func (g *Grep) Gather(_ context.Context, req *plugin.GatherRequest) (plugin.Fields, error) {
	path := req.Expanded("filepath")
	search := req.String("search")
	if req.Bool("ignore_case", false) {
		search = "(?i)" + search
	}

	re, err := regexp.Compile(search)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeGatherFailed,
			fmt.Sprintf("invalid search pattern %q", search), err, map[string]any{"filepath": path})
	}

	lines, err := g.parser.GetLines(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeGatherFailed,
			"failed to read file", err, map[string]any{"filepath": path})
	}

	matched := make([]string, 0)
	for _, line := range lines {
		if re.MatchString(line) {
			matched = append(matched, line)
		}
	}

	return plugin.Fields{
		"result":     strings.Join(matched, "\n"),
		"line_count": len(matched),
	}, nil
}
