// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func runCmd(t *testing.T, args ...string) result {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	root := &cli.Command{
		Name:           "chunkmeter",
		Writer:         stdout,
		ErrWriter:      stderr,
		Commands:       []*cli.Command{NewRunCmd()},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"chunkmeter", "run"}, args...))

	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeJob(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func requireExit(t *testing.T, err error) {
	t.Helper()

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}

func TestRun_NoFile(t *testing.T) {
	res := runCmd(t)
	requireExit(t, res.err)
}

func TestRun_BadProgressMode(t *testing.T) {
	job := writeJob(t, "total_frames: 10\nchunk_frames: 5\n")

	res := runCmd(t, "-f", job, "--progress", "fancy")
	requireExit(t, res.err)
	assert.Contains(t, res.err.Error(), "fancy")
}

func TestRun_InvalidJob(t *testing.T) {
	job := writeJob(t, "total_frames: 0\nchunk_frames: 5\n")

	res := runCmd(t, "-f", job, "--progress", "plain")
	requireExit(t, res.err)
}

func TestRun_MissingJobFile(t *testing.T) {
	res := runCmd(t, "-f", filepath.Join(t.TempDir(), "nope.yaml"), "--progress", "plain")
	requireExit(t, res.err)
}

func TestRun_SingleWorker(t *testing.T) {
	temp := filepath.Join(t.TempDir(), "state")
	job := writeJob(t, "name: demo\nworkers: 4\ntotal_frames: 50\nchunk_frames: 20\n")

	res := runCmd(t, "-f", job, "--workers", "1", "--temp", temp, "--progress", "plain")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "demo: 3 chunks completed, 0 failed, 0 not started")
	assert.Contains(t, res.stderr, "50/50")

	snap, ok := progress.ProgressSnapshot()
	require.True(t, ok)
	assert.Equal(t, uint64(50), snap.Position)
	assert.True(t, snap.Finished)

	done, err := chunk.ReadDone(temp)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), done.Frames)
	assert.Len(t, done.Done, 3)

	queue, err := chunk.LoadQueue(temp)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, "00000", queue[0].Name)
	assert.Equal(t, "00002", queue[2].Name)
}

func TestRun_MultiWorkerThenResume(t *testing.T) {
	temp := filepath.Join(t.TempDir(), "state")
	job := writeJob(t, "name: multi\nworkers: 3\ntotal_frames: 90\nchunk_frames: 10\n")

	res := runCmd(t, "-f", job, "--temp", temp, "--progress", "plain")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "multi: 9 chunks completed, 0 failed, 0 not started")

	snaps, ok := progress.MultiProgressSnapshot()
	require.True(t, ok)
	require.Len(t, snaps, 4)
	assert.Equal(t, uint64(90), snaps[3].Position)
	assert.True(t, snaps[3].Finished)

	res = runCmd(t, "-f", job, "--temp", temp, "--progress", "plain", "--resume")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "multi: 0 chunks completed, 0 failed, 0 not started")
}

func TestRun_ShellFailure(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	temp := filepath.Join(t.TempDir(), "state")
	job := writeJob(t, "name: broken\nworkers: 2\nmax_tries: 1\ntotal_frames: 4\nchunk_frames: 2\ncommand: exit 3\n")

	res := runCmd(t, "-f", job, "--temp", temp, "--progress", "plain")
	requireExit(t, res.err)
	assert.Contains(t, res.stdout, "broken: 0 chunks completed, 2 failed, 0 not started")
}

func TestRunCmd_Help(t *testing.T) {
	res := runCmd(t, "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "--metrics-addr")
	assert.Contains(t, res.stdout, "--resume")
}
