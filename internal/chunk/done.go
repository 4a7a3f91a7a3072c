// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package chunk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// DoneData is the content of done.json.
type DoneData struct {
	// Frames is the total number of frames in the job.
	Frames uint64 `json:"frames"`
	// Done maps finished chunk names to their frame counts.
	Done map[string]uint64 `json:"done"`
}

// DoneFrames sums the frames of all finished chunks.
func (d DoneData) DoneFrames() uint64 {
	var n uint64

	for _, f := range d.Done {
		n += f
	}

	return n
}

// ReadDone reads done.json from dir. A missing file yields empty data.
func ReadDone(dir string) (DoneData, error) {
	path := filepath.Join(dir, DoneFileName)
	data := DoneData{Done: map[string]uint64{}}

	b, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}

	if err != nil {
		return data, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(b, &data); err != nil {
		return DoneData{Done: map[string]uint64{}}, fmt.Errorf("parse %s: %w", path, err)
	}

	if data.Done == nil {
		data.Done = map[string]uint64{}
	}

	return data, nil
}

// DoneTracker records finished chunks in done.json.
// It is safe for concurrent use.
type DoneTracker struct {
	dir  string
	mu   sync.Mutex
	data DoneData
}

// NewDoneTracker creates a tracker for a job of totalFrames frames.
// When resuming, previously finished chunks are kept; otherwise done.json is reset.
func NewDoneTracker(dir string, totalFrames uint64, resuming bool) (*DoneTracker, error) {
	data := DoneData{Done: map[string]uint64{}}

	if resuming {
		var err error
		if data, err = ReadDone(dir); err != nil {
			return nil, err
		}
	}

	data.Frames = totalFrames

	t := &DoneTracker{dir: dir, data: data}
	if err := t.save(); err != nil {
		return nil, err
	}

	return t, nil
}

// MarkDone records c as finished and persists done.json.
func (t *DoneTracker) MarkDone(c Chunk) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.data.Done[c.Name] = c.Frames()

	return t.save()
}

// IsDone reports whether the named chunk has finished.
func (t *DoneTracker) IsDone(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.data.Done[name]

	return ok
}

// DoneFrames returns the number of frames in finished chunks.
func (t *DoneTracker) DoneFrames() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.data.DoneFrames()
}

// save must be called with the lock held, or before the tracker is shared.
func (t *DoneTracker) save() error {
	b, err := json.Marshal(t.data)
	if err != nil {
		return fmt.Errorf("marshal done data: %w", err)
	}

	return writeFile(FsFactory(), filepath.Join(t.dir, DoneFileName), b)
}
