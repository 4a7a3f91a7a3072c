// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package chunk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// QueueFileName is the name of the saved queue in the temp directory.
	QueueFileName = "chunks.json"
	// DoneFileName is the name of the resume file in the temp directory.
	DoneFileName = "done.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNoQueue is returned when resuming and no saved queue exists.
var ErrNoQueue = errors.New("no saved chunk queue")

// SaveQueue writes the queue to chunks.json in dir, creating dir if needed.
func SaveQueue(dir string, chunks []Chunk) error {
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("marshal chunk queue: %w", err)
	}

	return writeFile(FsFactory(), filepath.Join(dir, QueueFileName), data)
}

// LoadQueue reads chunks.json from dir.
// It returns an error wrapping ErrNoQueue if the file does not exist.
func LoadQueue(dir string) ([]Chunk, error) {
	path := filepath.Join(dir, QueueFileName)

	data, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoQueue, path)
	}

	if err != nil {
		return nil, fmt.Errorf("read chunk queue %s: %w", path, err)
	}

	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse chunk queue %s: %w", path, err)
	}

	return chunks, nil
}

// LoadOrGenerate returns the work still to do.
// When resuming it loads the saved queue and drops the chunks already listed
// in done.json. Otherwise, or if no queue was saved, it sorts generated
// largest first and saves it for a later resume.
// The returned bool reports whether a saved queue was used.
func LoadOrGenerate(ctx context.Context, dir string, resuming bool, generated []Chunk) ([]Chunk, bool, error) {
	if resuming {
		queue, err := LoadQueue(dir)

		switch {
		case err == nil:
			done, err := ReadDone(dir)
			if err != nil {
				return nil, false, err
			}

			remaining := make([]Chunk, 0, len(queue))

			for _, c := range queue {
				if _, ok := done.Done[c.Name]; ok {
					continue
				}

				remaining = append(remaining, c)
			}

			ctxlog.Info(ctx, "resuming chunk queue",
				"dir", dir,
				"chunks", len(queue),
				"remaining", len(remaining),
			)

			return remaining, true, nil

		case errors.Is(err, ErrNoQueue):
			ctxlog.Warn(ctx, "nothing to resume, starting a new queue", "dir", dir)

		default:
			return nil, false, err
		}
	}

	queue := append([]Chunk(nil), generated...)
	Sort(queue)

	if err := SaveQueue(dir, queue); err != nil {
		return nil, false, err
	}

	ctxlog.Debug(ctx, "saved chunk queue", "dir", dir, "chunks", len(queue))

	return queue, false, nil
}

// writeFile writes data next to path and renames it into place so a
// reader never sees a partial file.
func writeFile(afs afero.Fs, path string, data []byte) error {
	if err := afs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	tmp := path + ".tmp"

	if err := afero.WriteFile(afs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := afs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}
