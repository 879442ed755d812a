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

package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Console writes each text as one or more lines to a writer, stdout by
// default. Writes from concurrent items never interleave.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console logger writing to w, or stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Describe implements plugin.Logger.
func (*Console) Describe() plugin.Description {
	return plugin.Description{
		Type:    "console",
		Summary: "print to standard output",
	}
}

// Emit implements plugin.Logger.
func (c *Console) Emit(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeLine(c.w, text)
}

func writeLine(w io.Writer, text string) error {
	buf := make([]byte, 0, len(text)+1)
	buf = append(buf, text...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
