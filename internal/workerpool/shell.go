// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/teereader"
)

const (
	// EnvChunkName and friends are set for every chunk command.
	EnvChunkName   = "CHUNK_NAME"
	EnvChunkIndex  = "CHUNK_INDEX"
	EnvChunkStart  = "CHUNK_START"
	EnvChunkEnd    = "CHUNK_END"
	EnvChunkFrames = "CHUNK_FRAMES"

	statusMaxLength = 200
	stderrTailLines = 5
	waitDelay       = 5 * time.Second
)

// ErrCommandFailed is returned when a chunk command exits unsuccessfully.
var ErrCommandFailed = errors.New("chunk command failed")

// frameRe matches encoder progress such as "frame=  120" or "frame=120 fps=24".
var frameRe = regexp.MustCompile(`(?:^|\s)frame=\s*(\d+)`)

var _ Encoder = (*ShellEncoder)(nil)

// ShellEncoder runs Command through Shell once per chunk.
// Each completed stdout or stderr line becomes the worker status, and
// "frame=N" progress in either stream advances the chunk.
type ShellEncoder struct {
	Shell   string
	Command string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is added to the process environment.
	Env []string
}

// Encode implements Encoder.
func (e *ShellEncoder) Encode(ctx context.Context, a *Attempt) error {
	c := a.Chunk

	cmd := exec.CommandContext(ctx, e.Shell, shellFlag(e.Shell), e.Command) //nolint:gosec
	cmd.Dir = e.Dir
	cmd.WaitDelay = waitDelay
	detach(cmd)
	cmd.Env = append(append(os.Environ(), e.Env...),
		EnvChunkName+"="+c.Name,
		EnvChunkIndex+"="+strconv.Itoa(c.Index),
		EnvChunkStart+"="+strconv.FormatUint(c.Start, 10),
		EnvChunkEnd+"="+strconv.FormatUint(c.End, 10),
		EnvChunkFrames+"="+strconv.FormatUint(c.Frames(), 10),
	)

	onLine := func(line string) {
		if m := frameRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
				a.FramesDone(n)
			}
		}

		a.Status(teereader.Truncate(line, statusMaxLength))
	}

	stdout := teereader.NewLastLineWriter(onLine)
	stderr := teereader.NewLastLineWriter(onLine)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	ctxlog.Debug(ctx, "running chunk command",
		"chunk", c.Name,
		"try", a.Try,
		"shell", e.Shell,
		"command", e.Command,
	)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err() //nolint:wrapcheck
		}

		return fmt.Errorf("%w: %s: %w\n%s", ErrCommandFailed, c.Name, err, stderr.Tail(stderrTailLines))
	}

	return nil
}

// shellFlag returns the flag that makes shell run a command string.
func shellFlag(shell string) string {
	if runtime.GOOS == "windows" && (shell == "cmd" || shell == "cmd.exe") {
		return "/C"
	}

	return "-c"
}
