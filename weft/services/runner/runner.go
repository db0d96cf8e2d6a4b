/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/hashicorp/go-uuid"
	"github.com/hyperledgendary/weft/weft/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("weft.runner")

// Command is one shell command to be executed on behalf of the conversion
// engine. SessionName identifies the command in logs and errors.
type Command interface {
	SessionName() string
	Shell() string
}

// Output is the combined result of one batch execution.
type Output struct {
	// RunID identifies the batch across log records.
	RunID string
	// Combined is the interleaved stdout/stderr of every executed command,
	// in execution order.
	Combined string
}

// Runner executes an ordered batch of commands. The engine does not
// interpret the output beyond reporting it.
type Runner interface {
	Run(ctx context.Context, commands []Command) (*Output, error)
}

// ShellRunner executes each command sequentially through a shell. The first
// failing command aborts the batch; output collected so far is still
// returned alongside the error.
type ShellRunner struct {
	// Shell is the interpreter binary, "sh" when empty.
	Shell string
}

func NewShellRunner(shell string) *ShellRunner {
	return &ShellRunner{Shell: shell}
}

// DryRunner renders each command instead of executing it; used by dry runs
// where the runtime container is not reachable from this process.
type DryRunner struct {
	W io.Writer
}

func (r DryRunner) Run(_ context.Context, commands []Command) (*Output, error) {
	runID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate run id")
	}
	var buf bytes.Buffer
	for _, command := range commands {
		fmt.Fprintf(&buf, "[%s] %s\n", command.SessionName(), command.Shell())
	}
	if r.W != nil {
		if _, err := r.W.Write(buf.Bytes()); err != nil {
			return nil, errors.Wrap(err, "failed to write rendered commands")
		}
	}
	return &Output{RunID: runID, Combined: buf.String()}, nil
}

func (r *ShellRunner) Run(ctx context.Context, commands []Command) (*Output, error) {
	runID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate run id")
	}

	shell := r.Shell
	if len(shell) == 0 {
		shell = "sh"
	}

	out := &Output{RunID: runID}
	var buf bytes.Buffer
	for _, command := range commands {
		logger.Debugf("run [%s] session [%s]: %s", runID, command.SessionName(), command.Shell())
		cmd := exec.CommandContext(ctx, shell, "-c", command.Shell())
		raw, err := cmd.CombinedOutput()
		fmt.Fprintf(&buf, "[%s] %s", command.SessionName(), raw)
		if len(raw) > 0 && raw[len(raw)-1] != '\n' {
			buf.WriteByte('\n')
		}
		if err != nil {
			out.Combined = buf.String()
			return out, errors.Wrapf(err, "command [%s] failed", command.SessionName())
		}
	}
	out.Combined = buf.String()
	return out, nil
}
