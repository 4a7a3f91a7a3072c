// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics exports the process-wide progress trackers to Prometheus.
package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "chunkmeter"

	trackerSingle = "single"
	trackerMulti  = "multi"
)

var _ prometheus.Collector = (*Collector)(nil)

// Collector reads the global trackers on every scrape.
// Trackers that have not been initialised are not exported.
type Collector struct {
	position *prometheus.Desc
	total    *prometheus.Desc
	rate     *prometheus.Desc
	finished *prometheus.Desc
	worker   *prometheus.Desc

	single func() (progress.Snapshot, bool)
	multi  func() ([]progress.Snapshot, bool)
}

// NewCollector creates a collector over the global trackers.
func NewCollector() *Collector {
	return &Collector{
		position: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "progress", "position"),
			"Frames done so far.",
			[]string{"tracker"}, nil,
		),
		total: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "progress", "total"),
			"Frames in the job.",
			[]string{"tracker"}, nil,
		),
		rate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "progress", "rate"),
			"Average frames per second since the tracker started.",
			[]string{"tracker"}, nil,
		),
		finished: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "progress", "finished"),
			"1 once the tracker has finished.",
			[]string{"tracker"}, nil,
		),
		worker: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "worker", "info"),
			"Current status message of each worker.",
			[]string{"worker", "message"}, nil,
		),
		single: progress.ProgressSnapshot,
		multi:  progress.MultiProgressSnapshot,
	}
}

// Register creates a collector and registers it with reg.
// A nil reg means the default registerer.
func Register(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := NewCollector()
	if err := reg.Register(c); err != nil {
		return nil, fmt.Errorf("register progress collector: %w", err)
	}

	return c, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.position
	ch <- c.total
	ch <- c.rate
	ch <- c.finished
	ch <- c.worker
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if snap, ok := c.single(); ok {
		c.collectBar(ch, trackerSingle, snap)
	}

	snaps, ok := c.multi()
	if !ok || len(snaps) == 0 {
		return
	}

	for _, s := range snaps[:len(snaps)-1] {
		// Label values must be valid UTF-8; messages are raw encoder output.
		msg := strings.ToValidUTF8(s.Message, string(utf8.RuneError))
		ch <- prometheus.MustNewConstMetric(c.worker, prometheus.GaugeValue, 1, s.Label, msg)
	}

	c.collectBar(ch, trackerMulti, snaps[len(snaps)-1])
}

func (c *Collector) collectBar(ch chan<- prometheus.Metric, tracker string, s progress.Snapshot) {
	finished := 0.0
	if s.Finished {
		finished = 1
	}

	ch <- prometheus.MustNewConstMetric(c.position, prometheus.GaugeValue, float64(s.Position), tracker)
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.Total), tracker)
	ch <- prometheus.MustNewConstMetric(c.rate, prometheus.GaugeValue, s.Rate(), tracker)
	ch <- prometheus.MustNewConstMetric(c.finished, prometheus.GaugeValue, finished, tracker)
}

// NewRegistry returns a registry holding the progress collector plus the
// standard Go runtime and process collectors.
func NewRegistry() (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	if _, err := Register(reg); err != nil {
		return nil, err
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register runtime collector: %w", err)
		}
	}

	return reg, nil
}
