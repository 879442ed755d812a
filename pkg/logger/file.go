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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// Files keeps one append-mode handle per path so that every item logging to
// the same file shares its lock.
type Files struct {
	mu   sync.Mutex
	open map[string]*lockedFile
}

type lockedFile struct {
	mu sync.Mutex
	f  *os.File
}

// NewFiles creates an empty file set.
func NewFiles() *Files {
	return &Files{open: make(map[string]*lockedFile)}
}

// Factory creates file loggers from the "path" setting.
func (fs *Files) Factory(s plugin.Settings) (plugin.Logger, error) {
	return &File{path: s.String("path", ""), files: fs}, nil
}

// Close closes every file opened through the set.
func (fs *Files) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	paths := make([]string, 0, len(fs.open))
	for p := range fs.open {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var first error
	for _, p := range paths {
		lf := fs.open[p]
		lf.mu.Lock()
		if err := lf.f.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close %s: %w", p, err)
		}
		lf.mu.Unlock()
		delete(fs.open, p)
	}
	return first
}

func (fs *Files) get(path string) (*lockedFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if lf, ok := fs.open[abs]; ok {
		return lf, nil
	}
	f, err := os.OpenFile(abs, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path comes from the check configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	lf := &lockedFile{f: f}
	fs.open[abs] = lf
	return lf, nil
}

// File appends text to a file.
type File struct {
	path  string
	files *Files
}

// Describe implements plugin.Logger.
func (*File) Describe() plugin.Description {
	return plugin.Description{
		Type:     "file",
		Summary:  "append to a file",
		Optional: []string{"path"},
	}
}

// Emit implements plugin.Logger.
func (l *File) Emit(_ context.Context, text string) error {
	if l.path == "" {
		return fmt.Errorf("file logger requires a path setting")
	}
	lf, err := l.files.get(l.path)
	if err != nil {
		return err
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	return writeLine(lf.f, text)
}
