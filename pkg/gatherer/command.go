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
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/NVIDIA/stackcheck/pkg/errors"
	"github.com/NVIDIA/stackcheck/pkg/plugin"
)

// DefaultShell runs command strings when shell mode is on.
const DefaultShell = "/bin/sh"

// Command runs a command and reports its output.
//
// By default command_str runs through /bin/sh -c. With shell: false it is
// split with POSIX shell quoting rules and executed directly. The run's
// environment overlay is added to the child process environment.
type Command struct {
	shell string
}

// NewCommand creates a command gatherer.
func NewCommand() *Command {
	return &Command{shell: DefaultShell}
}

// Describe implements plugin.Gatherer.
func (*Command) Describe() plugin.Description {
	return plugin.Description{
		Type:     "command",
		Summary:  "run a command and capture stdout, stderr and exit code",
		Inputs:   []string{"command_str"},
		Optional: []string{"shell", "dir"},
		Outputs:  []string{"result", "stderr", "exit_code", plugin.ErrorField},
	}
}

// Gather implements plugin.Gatherer.
func (c *Command) Gather(ctx context.Context, req *plugin.GatherRequest) (plugin.Fields, error) {
	line := req.String("command_str")
	if strings.TrimSpace(line) == "" {
		return nil, errors.New(errors.ErrCodeGatherFailed, "command_str is empty")
	}

	var cmd *exec.Cmd
	if req.Bool("shell", true) {
		cmd = exec.CommandContext(ctx, c.shell, "-c", line)
	} else {
		args, err := shellquote.Split(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeGatherFailed, "failed to split command", err)
		}
		if len(args) == 0 {
			return nil, errors.New(errors.ErrCodeGatherFailed, "command_str is empty")
		}
		cmd = exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // commands come from the check configuration
	}
	cmd.Env = req.Environ()
	if req.Has("dir") {
		cmd.Dir = req.Expanded("dir")
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	fields := plugin.Fields{}
	err := cmd.Run()
	fields["result"] = strings.TrimSpace(stdout.String())
	fields["stderr"] = strings.TrimSpace(stderr.String())

	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return fields, errors.Wrap(errors.ErrCodeGatherFailed, "failed to run command", err)
		}
		fields["exit_code"] = exitErr.ExitCode()
		if msg := fields["stderr"].(string); msg != "" {
			fields[plugin.ErrorField] = msg
		} else {
			fields[plugin.ErrorField] = fmt.Sprintf("command exited with code %d", exitErr.ExitCode())
		}
		return fields, nil
	}

	fields["exit_code"] = 0
	return fields, nil
}
